package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	// CommerceAPIURL is the base URL of the remote commerce backend that
	// owns products, carts, favorites, orders and auth.
	CommerceAPIURL string

	// LocalStorePath is the sqlite file backing anonymous session
	// collections. ":memory:" is accepted for tests and local runs.
	LocalStorePath string

	SessionTTL time.Duration

	CORSAllowedOrigins []string
}

func Load() Config {
	return Config{
		AppEnv:             getEnv("APP_ENV", "dev"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		HTTPPort:           getEnvInt("HTTP_PORT", 8080),
		CommerceAPIURL:     getEnv("COMMERCE_API_URL", "http://localhost:3333"),
		LocalStorePath:     getEnv("LOCAL_STORE_PATH", "storefront.db"),
		SessionTTL:         getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}

	return d
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
