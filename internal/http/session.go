package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sujalbistaa/folio/internal/auth"
)

const loginFailed = "Login failed. Please check your username and password."

func (e *Env) LoginForm(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	e.render(c, http.StatusOK, "login.html", &page{Title: "Login"})
}

func (e *Env) Login(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	ctx := c.Request.Context()
	username := c.PostForm("username")
	user, err := e.Auth.Login(ctx, username, c.PostForm("password"))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		e.Metrics.Logins.WithLabelValues("failure").Inc()
		e.Log.Info("login failed", zap.String("username", username), zap.String("ip", c.ClientIP()))
		e.render(c, http.StatusOK, "login.html", &page{Title: "Login", Flashes: []string{loginFailed}})
		return
	}
	if err != nil {
		e.serverError(c, err)
		return
	}

	token, _, err := e.Auth.IssueSession(ctx, user)
	if err != nil {
		e.serverError(c, err)
		return
	}
	e.setSessionCookie(c, token)
	e.Metrics.Logins.WithLabelValues("success").Inc()
	e.Log.Info("login succeeded", zap.Uint("user_id", user.ID))

	c.Redirect(http.StatusFound, "/admin")
}

func (e *Env) Logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		if err := e.Auth.Destroy(c.Request.Context(), token); err != nil {
			e.Log.Error("failed to delete session", zap.Error(err))
		}
	}
	e.clearSessionCookie(c)
	e.flash(c, "You have been logged out.")
	c.Redirect(http.StatusFound, "/")
}

// CreateAdmin bootstraps the default admin account. It is reachable without a session.
func (e *Env) CreateAdmin(c *gin.Context) {
	created, err := e.Auth.EnsureAdmin(c.Request.Context())
	if err != nil {
		e.serverError(c, err)
		return
	}
	if !created {
		c.String(http.StatusOK, "Admin already exists.")
		return
	}
	e.Log.Warn("default admin account created", zap.String("username", auth.DefaultAdminUsername))
	c.String(http.StatusOK, "Admin user created! (username: %s, password: %s)",
		auth.DefaultAdminUsername, auth.DefaultAdminPassword)
}
