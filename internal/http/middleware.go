package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sujalbistaa/folio/internal/auth"
	"github.com/sujalbistaa/folio/internal/models"
)

const (
	sessionCookie = "folio_session"
	userKey       = "currentUser"
)

// LoadSession resolves the session cookie once per request and stores the admin user, if any,
// in the context.
func (e *Env) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := e.Auth.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(userKey, user)
		case errors.Is(err, auth.ErrSessionInvalid):
			e.clearSessionCookie(c)
		default:
			e.Log.Error("resolve session", zap.Error(err))
		}
		c.Next()
	}
}

// RequireAdmin sends visitors without a valid session to the login page. No handler behind it runs.
func (e *Env) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		c.Header("Pragma", "no-cache")

		if currentUser(c) == nil {
			e.flash(c, "Please log in to access this page.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func (e *Env) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(e.Auth.TTL().Seconds()), "/", "", e.Config.IsProduction(), true)
}

func (e *Env) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", e.Config.IsProduction(), true)
}

// SecurityHeadersMiddleware adds basic, sensible security headers.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevents clickjacking
		c.Header("X-Frame-Options", "DENY")
		// Prevents MIME-type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Icons come from the Font Awesome CDN; post images may live on any host.
		csp := "default-src 'self';"
		csp += " script-src 'self' 'unsafe-inline';"
		csp += " style-src 'self' 'unsafe-inline' cdnjs.cloudflare.com;"
		csp += " font-src 'self' cdnjs.cloudflare.com;"
		csp += " img-src * data:;"
		c.Header("Content-Security-Policy", csp)

		c.Next()
	}
}

// --- Rate Limiter ---

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
}

// NewIPRateLimiter returns nil when perMinute is zero, which disables limiting.
func NewIPRateLimiter(perMinute float64, burst int) *IPRateLimiter {
	if perMinute <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(perMinute / 60),
		burst:    burst,
	}
}

func (rl *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Prune forgets visitors idle for longer than idle.
func (rl *IPRateLimiter) Prune(idle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := time.Now().Add(-idle)
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

// PruneEvery runs Prune on an interval until ctx is done.
func (rl *IPRateLimiter) PruneEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Prune(interval)
		}
	}
}

// RateLimitMiddleware rejects requests over the per-IP budget. A nil limiter lets everything through.
func (e *Env) RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			e.renderStatus(c, http.StatusTooManyRequests, "Too many comments. Please wait a moment and try again.")
			c.Abort()
			return
		}
		c.Next()
	}
}
