package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Validate checks cross-field constraints that tags cannot express.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("database.sqlite_path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.Postgres.DSN == "" {
			return fmt.Errorf("database.postgres.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("database.driver must be %q or %q (got %q)", DriverSQLite, DriverPostgres, c.Database.Driver)
	}

	switch c.Cache.Driver {
	case CacheMemory, CacheNone:
	case CacheRedis:
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("cache.driver must be one of memory, redis, none (got %q)", c.Cache.Driver)
	}
	if c.Cache.Driver != CacheNone && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 (got %s)", c.Cache.TTL)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	if _, err := language.Parse(c.Directory.Locale); err != nil {
		return fmt.Errorf("directory.locale: %w", err)
	}

	if c.Insights.LookbackDays <= 0 {
		return fmt.Errorf("insights.lookback_days must be > 0 (got %d)", c.Insights.LookbackDays)
	}
	if c.Insights.Concurrency <= 0 {
		return fmt.Errorf("insights.concurrency must be > 0 (got %d)", c.Insights.Concurrency)
	}

	return nil
}
