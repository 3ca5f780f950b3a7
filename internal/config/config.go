// Package config handles configuration loading for the content service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

const minJWTSecretLength = 32

// Config holds all configuration for the content service.
type Config struct {
	DBDriver         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSSLMode        string
	SQLitePath       string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	Port             string
	Environment      string
	AppVersion       string
	AllowedOrigins   []string
	SwaggerHost      string
	KafkaBrokers     []string
	KafkaTopic       string
	RateLimitRPS     float64
	RateLimitBurst   int
	CookieDomain     string
	CookieSecure     bool
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs error
	required := func(key string) string {
		value, err := GetEnvRequired(key)
		errs = multierr.Append(errs, err)
		return value
	}

	cfg := &Config{
		DBDriver:         strings.ToLower(GetEnv("DB_DRIVER", "postgres")),
		SQLitePath:       GetEnv("SQLITE_PATH", "content.db"),
		RedisHost:        GetEnv("REDIS_HOST", "localhost"),
		RedisPort:        GetEnv("REDIS_PORT", "6379"),
		RedisPassword:    GetEnv("REDIS_PASSWORD", ""),
		JWTSecret:        required("JWT_SECRET"),
		JWTAccessExpiry:  parseDuration(GetEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(GetEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),
		Port:             GetEnv("PORT", "8080"),
		Environment:      GetEnv("ENVIRONMENT", "development"),
		AppVersion:       GetEnv("APP_VERSION", "1.0.0"),
		AllowedOrigins:   splitList(GetEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		SwaggerHost:      GetEnv("SWAGGER_HOST", ""),
		KafkaBrokers:     splitList(GetEnv("KAFKA_BROKERS", "")),
		KafkaTopic:       GetEnv("KAFKA_TOPIC", "content-events"),
		RateLimitRPS:     parseFloat(GetEnv("RATE_LIMIT_RPS", "1"), 1),
		RateLimitBurst:   parseInt(GetEnv("RATE_LIMIT_BURST", "5"), 5),
		CookieDomain:     GetEnv("COOKIE_DOMAIN", ""),
		CookieSecure:     parseBool(GetEnv("COOKIE_SECURE", "false")),
	}

	switch cfg.DBDriver {
	case "postgres":
		cfg.DBHost = required("DB_HOST")
		cfg.DBPort = GetEnv("DB_PORT", "5432")
		cfg.DBUser = required("DB_USER")
		cfg.DBPassword = required("DB_PASSWORD")
		cfg.DBName = required("DB_NAME")
		cfg.DBSSLMode = GetEnv("DB_SSLMODE", "disable")
	case "sqlite":
	default:
		errs = multierr.Append(errs, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver))
	}

	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < minJWTSecretLength {
		errs = multierr.Append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", minJWTSecretLength))
	}

	if errs != nil {
		return nil, errs
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetEnv returns the value of key or defaultValue when it is unset or empty.
func GetEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvRequired returns the value of key or an error when it is unset.
func GetEnvRequired(key string) (string, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return value, nil
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func parseFloat(value string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		return defaultValue
	}
	return f
}

func parseInt(value string, defaultValue int) int {
	i, err := strconv.Atoi(value)
	if err != nil || i <= 0 {
		return defaultValue
	}
	return i
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(value)
	return err == nil && b
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
