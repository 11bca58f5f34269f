package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this-is-a-very-long-jwt-secret-for-testing-32+"

// isolate points CONFIG_PATH away from any config.yaml in the working
// directory.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "./data/splitledger.db", cfg.Database.SQLitePath)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, CacheMemory, cfg.Cache.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "en", cfg.Directory.Locale)
	assert.Equal(t, 30, cfg.Insights.LookbackDays)
	assert.Equal(t, 4, cfg.Insights.Concurrency)
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	isolate(t)
	path := writeYAML(t, `
server:
  port: 9090
database:
  driver: postgres
  postgres:
    dsn: "postgres://u:p@localhost:5432/ledger"
    max_conns: 20
auth:
  jwt_secret: "`+testSecret+`"
cache:
  driver: redis
  ttl: 1m
  redis:
    addr: "redis:6379"
log:
  format: json
directory:
  locale: de
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, int32(20), cfg.Database.Postgres.MaxConns)
	assert.Equal(t, CacheRedis, cfg.Cache.Driver)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "de", cfg.Directory.Locale)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Database:  DatabaseConfig{Driver: DriverSQLite, SQLitePath: "x.db"},
			Auth:      AuthConfig{JWTSecret: testSecret},
			Cache:     CacheConfig{Driver: CacheMemory, TTL: time.Minute},
			Log:       LogConfig{Level: "info", Format: "text"},
			Directory: DirectoryConfig{Locale: "en"},
			Insights:  InsightsConfig{LookbackDays: 30, Concurrency: 2},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = DriverPostgres }},
		{"unknown cache", func(c *Config) { c.Cache.Driver = "memcached" }},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"bad locale", func(c *Config) { c.Directory.Locale = "not a locale!" }},
		{"zero lookback", func(c *Config) { c.Insights.LookbackDays = 0 }},
		{"zero concurrency", func(c *Config) { c.Insights.Concurrency = 0 }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("no cache needs no ttl", func(t *testing.T) {
		cfg := valid()
		cfg.Cache = CacheConfig{Driver: CacheNone}
		assert.NoError(t, cfg.Validate())
	})
}
