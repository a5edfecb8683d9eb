package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sujalbistaa/folio/internal/logger"
	"github.com/sujalbistaa/folio/internal/models"
)

// Dialector picks the gorm driver for a DATABASE_URL.
//
//	sqlite:///blog.db, sqlite://blog.db -> file-backed SQLite
//	postgres://..., postgresql://...    -> PostgreSQL (URL passed through)
func Dialector(dbURL string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return postgres.Open(dbURL), nil
	case strings.HasPrefix(dbURL, "sqlite:///"):
		return sqlite.Open(strings.TrimPrefix(dbURL, "sqlite:///")), nil
	case strings.HasPrefix(dbURL, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(dbURL, "sqlite://")), nil
	default:
		return nil, fmt.Errorf("invalid DATABASE_URL %q: must start with sqlite:// or postgres://", dbURL)
	}
}

// Init opens the database named by dbURL and migrates the schema.
func Init(dbURL string, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(dbURL)
	if err != nil {
		return nil, err
	}
	log.Info("connecting to database", zap.String("driver", dialector.Name()))

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.NewGorm(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if dialector.Name() == "sqlite" {
		// SQLite allows one writer; serialising connections avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database connection established")
	return db, nil
}

// Migrate creates or updates every table. It is safe to call repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
