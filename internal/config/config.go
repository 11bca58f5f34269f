// Package config loads server and job configuration from YAML and the
// environment.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
	Directory DirectoryConfig `yaml:"directory"`
	Insights  InsightsConfig  `yaml:"insights"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	AllowedOrigin   string        `yaml:"allowed_origin"   env:"CORS_ALLOWED_ORIGIN"     env-default:"*"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig selects and configures the storage backend.
type DatabaseConfig struct {
	Driver     string         `yaml:"driver"      env:"DATABASE_DRIVER" env-default:"sqlite"`
	SQLitePath string         `yaml:"sqlite_path" env:"DB_PATH"         env-default:"./data/splitledger.db"`
	Postgres   PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds token settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET"    env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"JWT_TOKEN_TTL" env-default:"24h"`
}

// Cache drivers.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// CacheConfig configures the balance cache.
type CacheConfig struct {
	Driver string        `yaml:"driver" env:"CACHE_DRIVER" env-default:"memory"`
	TTL    time.Duration `yaml:"ttl"    env:"CACHE_TTL"    env-default:"5m"`
	Redis  RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"     env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// DirectoryConfig controls contact and group listing.
type DirectoryConfig struct {
	// Locale is a BCP 47 tag used to collate display names.
	Locale string `yaml:"locale" env:"DIRECTORY_LOCALE" env-default:"en"`
}

// InsightsConfig configures the monthly insight job.
type InsightsConfig struct {
	LookbackDays int           `yaml:"lookback_days" env:"INSIGHTS_LOOKBACK_DAYS" env-default:"30"`
	Concurrency  int           `yaml:"concurrency"   env:"INSIGHTS_CONCURRENCY"   env-default:"4"`
	Currency     string        `yaml:"currency"      env:"INSIGHTS_CURRENCY"      env-default:"$"`
	MailEndpoint string        `yaml:"mail_endpoint" env:"INSIGHTS_MAIL_ENDPOINT"`
	MailAPIKey   string        `yaml:"mail_api_key"  env:"INSIGHTS_MAIL_API_KEY"`
	Sender       string        `yaml:"sender"        env:"INSIGHTS_SENDER"        env-default:"Split Ledger <insights@splitledger.local>"`
	MailTimeout  time.Duration `yaml:"mail_timeout"  env:"INSIGHTS_MAIL_TIMEOUT"  env-default:"10s"`
}
