package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		SecretKey:         "a-long-and-unique-secret-value",
		DatabaseURL:       "sqlite:///blog.db",
		Port:              "5000",
		Env:               "development",
		StaticDir:         "static",
		SessionTTL:        24 * time.Hour,
		CommentRatePerMin: 6,
		CommentRateBurst:  3,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"empty secret", func(c *Config) { c.SecretKey = "" }, true},
		{"empty database url", func(c *Config) { c.DatabaseURL = "" }, true},
		{"empty port", func(c *Config) { c.Port = "" }, true},
		{"zero session ttl", func(c *Config) { c.SessionTTL = 0 }, true},
		{"negative comment rate", func(c *Config) { c.CommentRatePerMin = -1 }, true},
		{"default secret in development", func(c *Config) { c.SecretKey = DefaultSecretKey }, false},
		{"default secret in production", func(c *Config) {
			c.Env = "production"
			c.SecretKey = DefaultSecretKey
		}, true},
		{"custom secret in prod", func(c *Config) { c.Env = "prod" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"SECRET_KEY", "DATABASE_URL", "PORT", "APP_ENV", "STATIC_DIR", "SESSION_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultSecretKey, cfg.SecretKey)
	assert.Equal(t, "sqlite:///blog.db", cfg.DatabaseURL)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "static/uploads", cfg.UploadDir())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SECRET_KEY", "from-environment")
	t.Setenv("DATABASE_URL", "postgres://user:pw@localhost:5432/blog")
	t.Setenv("SESSION_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-environment", cfg.SecretKey)
	assert.Equal(t, "postgres://user:pw@localhost:5432/blog", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestLoad_TrustedProxies(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("TRUSTED_PROXIES", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,127.0.0.1")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
}

func TestLoad_IgnoresParentConfigFile(t *testing.T) {
	parent := t.TempDir()
	child := filepath.Join(parent, "app")
	require.NoError(t, os.Mkdir(child, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "config.yml"), []byte("PORT: \"9999\"\n"), 0o644))
	chdir(t, child)
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
}

func TestLoad_ReadsLocalConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("PORT: \"9999\"\n"), 0o644))
	chdir(t, dir)
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (unavailable before Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
