package http

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/sujalbistaa/folio/internal/logger"
)

// SetupRoutes configures all application routes and middleware.
func SetupRoutes(router *gin.Engine, env *Env) error {

	// Client IPs key the comment limiter; forwarded headers count only from configured proxies.
	var proxies []string
	if len(env.Config.TrustedProxies) > 0 {
		proxies = env.Config.TrustedProxies
	}
	if err := router.SetTrustedProxies(proxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}

	// --- Middleware ---

	router.Use(gin.Recovery())
	router.Use(logger.Requests(env.Log))
	router.Use(env.Metrics.Middleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{"^/ws/", "^/metrics$"})))
	router.Use(env.LoadSession())

	router.SetHTMLTemplate(Templates())
	router.Static("/static", env.Config.StaticDir)

	// --- Public pages ---

	router.GET("/", env.Home)
	router.GET("/blog", env.Blog)
	router.GET("/post/:id", env.ShowPost)
	router.POST("/post/:id", env.RateLimitMiddleware(env.CommentLimiter), env.AddComment)
	router.GET("/login", env.LoginForm)
	router.POST("/login", env.Login)
	router.GET("/create_admin", env.CreateAdmin)

	// --- WebSocket Route ---

	router.GET("/ws/post/:id", env.LiveComments)

	router.GET("/metrics", gin.WrapH(env.Metrics.Handler()))

	// --- API Routes ---

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if env.Config.CORSOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{env.Config.CORSOrigin}
	}

	api := router.Group("/api", cors.New(corsConfig))
	{
		api.GET("/posts", env.GetPosts)
		api.GET("/projects", env.GetProjects)
		api.GET("/skills", env.GetSkills)
	}

	// --- Admin ---

	admin := router.Group("/", env.RequireAdmin())
	{
		admin.GET("/logout", env.Logout)
		admin.GET("/admin", env.Dashboard)
		admin.POST("/admin", env.CreatePost)
		admin.GET("/delete/:id", env.DeletePost)
		admin.POST("/admin/project", env.CreateProject)
		admin.GET("/admin/project/delete/:id", env.DeleteProject)
		admin.POST("/admin/skill", env.CreateSkill)
		admin.GET("/admin/skill/delete/:id", env.DeleteSkill)
		admin.GET("/admin/comment/delete/:id", env.DeleteComment)
	}

	router.NoRoute(env.NotFound)
	return nil
}
