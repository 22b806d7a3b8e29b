// Package config loads the server configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything cmd/server needs to wire the process.
type Config struct {
	HTTPPort string
	MongoURI string
	MongoDB  string
	// RedisAddr is host:port; a redis:// prefix in REDIS_URI is stripped.
	RedisAddr string

	Backend BackendConfig
	Session SessionConfig
	Query   QueryConfig

	CORSAllowedOrigins string
	LogLevel           slog.Level
	LogFormat          string
	ShutdownTimeout    time.Duration
}

// SessionConfig controls the browser session cookie and token cache.
type SessionConfig struct {
	Secret       string `json:"-"`
	CookieName   string
	CookieSecure bool
	// TokenTTL bounds how long a cached token envelope survives in Redis.
	TokenTTL time.Duration
}

// QueryConfig holds the query cache timings. StaleTime is how long a cached
// response is served without refetching; GCTime is how long it is kept at all.
type QueryConfig struct {
	StaleTime time.Duration
	GCTime    time.Duration
}

// Load reads the configuration, falling back to defaults for unset variables.
func Load() *Config {
	return &Config{
		HTTPPort:  getEnv("PORT", "8080"),
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "bimillog"),
		RedisAddr: strings.TrimPrefix(getEnv("REDIS_URI", "redis:6379"), "redis://"),
		Backend:   DefaultBackendConfig(),
		Session: SessionConfig{
			Secret:       getEnv("SESSION_SECRET", "bimillog-dev-secret"),
			CookieName:   getEnv("SESSION_COOKIE", "bimillog_sid"),
			CookieSecure: getBool("COOKIE_SECURE", false),
			TokenTTL:     getDuration("TOKEN_TTL", 24*time.Hour),
		},
		Query: QueryConfig{
			StaleTime: getDuration("QUERY_STALE_TIME", time.Minute),
			GCTime:    getDuration("QUERY_GC_TIME", 5*time.Minute),
		},
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		LogLevel:           getLevel("LOG_LEVEL", slog.LevelInfo),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
		ShutdownTimeout:    getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getDuration accepts Go durations ("90s") or a bare number of seconds.
func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	slog.Warn("invalid duration, using default", "key", key, "value", val, "default", defaultVal)
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		slog.Warn("invalid bool, using default", "key", key, "value", val, "default", defaultVal)
		return defaultVal
	}
	return b
}

func getLevel(key string, defaultVal slog.Level) slog.Level {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(val)); err != nil {
		slog.Warn("invalid log level, using default", "key", key, "value", val)
		return defaultVal
	}
	return level
}
