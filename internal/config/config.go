package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDatabaseURLMissing is returned by Load when DATABASE_URL is not set.
var ErrDatabaseURLMissing = errors.New("config: DATABASE_URL is required")

type Config struct {
	AppEnv             string
	AppAddr            string
	CORSAllowedOrigins []string

	DatabaseURL    string
	MigrateOnStart bool

	// RedisAddr is optional; when empty the rate limiter stays in-process.
	RedisAddr string
	RedisDB   int

	RateLimitWrite  int
	RateLimitWindow time.Duration
}

func Load() (Config, error) {
	c := Config{}

	c.AppEnv = getEnv("APP_ENV", "development")
	c.AppAddr = getEnv("APP_ADDR", ":8080")
	c.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	c.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", ""))
	if c.DatabaseURL == "" {
		return c, ErrDatabaseURLMissing
	}
	c.MigrateOnStart = getBool("MIGRATE_ON_START", true)

	c.RedisAddr = getEnv("REDIS_ADDR", "")
	c.RedisDB = getInt("REDIS_DB", 0)

	c.RateLimitWrite = getInt("RATE_LIMIT_WRITE", 60)
	c.RateLimitWindow = getDuration("RATE_LIMIT_WINDOW", time.Minute)

	return c, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	if len(res) == 0 {
		return []string{"*"}
	}
	return res
}

// String renders the config for startup logs with the database password masked.
func (c Config) String() string {
	redis := c.RedisAddr
	if redis == "" {
		redis = "off"
	}
	return fmt.Sprintf("env=%s addr=%s db=%s redis=%s/%d", c.AppEnv, c.AppAddr, maskDSN(c.DatabaseURL), redis, c.RedisDB)
}

// maskDSN renders where the DSN points without its password. Both URL and
// keyword/value forms are parsed the way pgx will parse them.
func maskDSN(dsn string) string {
	pc, err := pgconn.ParseConfig(dsn)
	if err != nil {
		return "<unparseable>"
	}
	return fmt.Sprintf("postgres://%s@%s:%d/%s", pc.User, pc.Host, pc.Port, pc.Database)
}
