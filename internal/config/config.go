package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const DefaultBackendURL = "http://127.0.0.1:5000"

type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Logger    LoggerConfig
	Metrics   MetricsConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	FetchOnStart bool
}

type BackendConfig struct {
	URL string
	// Timeout of zero means requests never time out.
	Timeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MetricsConfig struct {
	Enabled bool
	Token   string
}

type RateLimitConfig struct {
	PerMinute int
	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For is believed.
	TrustedProxies []string
}

// LoadEnv reads the process environment. Call godotenv.Load first to pick up a .env file.
func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			FetchOnStart: getEnvBool("FETCH_ON_START", false),
		},
		Backend: BackendConfig{
			URL:     strings.TrimRight(getEnv("BACKEND_URL", DefaultBackendURL), "/"),
			Timeout: getEnvDuration("BACKEND_TIMEOUT", 0),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Token:   getEnv("METRICS_TOKEN", ""),
		},
		RateLimit: RateLimitConfig{
			PerMinute:      getEnvInt("RATE_LIMIT_PER_MIN", 120),
			TrustedProxies: getEnvSlice("TRUSTED_PROXIES"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil && d >= 0 {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
