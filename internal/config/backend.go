package config

import (
	"strconv"
	"strings"
	"time"
)

// BackendConfig holds the upstream API settings
type BackendConfig struct {
	BaseURL string        `json:"baseUrl"`
	Timeout time.Duration `json:"timeout"`
	// MaxRetries applies to queries only; mutations are never retried.
	MaxRetries int `json:"maxRetries"`
}

// DefaultBackendConfig returns the backend configuration from the environment
func DefaultBackendConfig() BackendConfig {
	return BackendConfig{
		BaseURL:    strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:8081"), "/"),
		Timeout:    getDuration("BACKEND_TIMEOUT", 10*time.Second),
		MaxRetries: getInt("BACKEND_MAX_RETRIES", 2),
	}
}

func getInt(key string, defaultVal int) int {
	val := getEnv(key, "")
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
