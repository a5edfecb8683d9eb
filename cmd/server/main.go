package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sujalbistaa/folio/internal/auth"
	"github.com/sujalbistaa/folio/internal/config"
	"github.com/sujalbistaa/folio/internal/db"
	routes "github.com/sujalbistaa/folio/internal/http"
	"github.com/sujalbistaa/folio/internal/logger"
	"github.com/sujalbistaa/folio/internal/metrics"
	"github.com/sujalbistaa/folio/internal/repository"
	"github.com/sujalbistaa/folio/internal/upload"
	"github.com/sujalbistaa/folio/internal/ws"
)

func main() {
	// 1. Load configuration (.env, config.yml, environment)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.SecretKey == config.DefaultSecretKey {
		zlog.Warn("SECRET_KEY is the development default; sessions can be forged")
	}

	// 2. Initialize Database (runs migrations)
	database, err := db.Init(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("Failed to initialize database", zap.Error(err))
	}

	store := repository.New(database)
	authSvc := auth.New(store, cfg.SecretKey, cfg.SessionTTL)
	if n, err := authSvc.PurgeExpired(context.Background()); err != nil {
		zlog.Warn("failed to purge expired sessions", zap.Error(err))
	} else if n > 0 {
		zlog.Info("purged expired sessions", zap.Int64("count", n))
	}

	// 3. Background workers
	bg, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	hub := ws.NewHub(zlog)
	limiter := routes.NewIPRateLimiter(cfg.CommentRatePerMin, cfg.CommentRateBurst)
	if limiter != nil {
		go limiter.PruneEvery(bg, 10*time.Minute)
	}

	// 4. Initialize Gin Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 5. Setup Routes
	err = routes.SetupRoutes(router, &routes.Env{
		Config:         cfg,
		Store:          store,
		Auth:           authSvc,
		Uploads:        upload.New(cfg.UploadDir()),
		Hub:            hub,
		Metrics:        metrics.New(),
		CommentLimiter: limiter,
		Log:            zlog,
	})
	if err != nil {
		zlog.Fatal("Failed to set up routes", zap.Error(err))
	}

	// 6. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zlog.Info("Server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-quit
	zlog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown.
	hub.Close()
	stopBackground()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exiting")
}
