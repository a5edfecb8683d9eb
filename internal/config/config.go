// Package config loads application settings from the environment, an optional .env file and an
// optional config.yml.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSecretKey is only suitable for local development.
const DefaultSecretKey = "dev-secret-key-change-me"

// Config holds application configuration values.
type Config struct {
	SecretKey         string        `mapstructure:"SECRET_KEY"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	Port              string        `mapstructure:"PORT"`
	Env               string        `mapstructure:"APP_ENV"`
	StaticDir         string        `mapstructure:"STATIC_DIR"`
	CORSOrigin        string        `mapstructure:"CORS_ORIGIN"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL"`
	CommentRatePerMin float64       `mapstructure:"COMMENT_RATE_PER_MIN"`
	CommentRateBurst  int           `mapstructure:"COMMENT_RATE_BURST"`
	// TrustedProxies lists the peers (IPs or CIDRs) whose X-Forwarded-For is believed. Empty trusts none.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`
}

// Load reads .env (if present), config.yml (if present) and the process environment, in
// increasing order of precedence.
func Load() (*Config, error) {
	// A missing .env is normal in production where variables are set directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetDefault("SECRET_KEY", DefaultSecretKey)
	v.SetDefault("DATABASE_URL", "sqlite:///blog.db")
	v.SetDefault("PORT", "5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("STATIC_DIR", "static")
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("COMMENT_RATE_PER_MIN", 6)
	v.SetDefault("COMMENT_RATE_BURST", 3)
	v.SetDefault("TRUSTED_PROXIES", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate checks required values.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY is required")
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.CommentRatePerMin < 0 || c.CommentRateBurst < 0 {
		return errors.New("COMMENT_RATE_PER_MIN and COMMENT_RATE_BURST must not be negative")
	}
	if c.IsProduction() && c.SecretKey == DefaultSecretKey {
		return errors.New("SECRET_KEY must be changed from the default value in production")
	}
	return nil
}

// UploadDir is where post images are written; it is served under /static/uploads.
func (c *Config) UploadDir() string {
	return c.StaticDir + "/uploads"
}
