// Command seed replaces the skills and projects tables with the sample portfolio content.
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/sujalbistaa/folio/internal/config"
	"github.com/sujalbistaa/folio/internal/db"
	"github.com/sujalbistaa/folio/internal/logger"
	"github.com/sujalbistaa/folio/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	database, err := db.Init(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	res, err := seed.Run(context.Background(), database)
	if err != nil {
		zlog.Fatal("seeding failed", zap.Error(err))
	}
	if res.Wiped {
		zlog.Info("cleared existing skills and projects")
	}
	zlog.Info("seed data written", zap.Int("skills", res.Skills), zap.Int("projects", res.Projects))
}
