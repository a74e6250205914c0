package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the full runtime configuration, read from the environment once
// at startup and passed explicitly into the components that need it.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string
	TokenTTL  time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	SMTPAddr     string
	SMTPUsername string
	SMTPPassword string
	OwnerEmail   string

	MediaPageSize int
	MediaMaxPages int
	// MediaRefreshInterval enables the background re-sync job when > 0.
	MediaRefreshInterval time.Duration
}

// Load reads configuration from environment variables with development
// defaults. DATABASE_URL and JWT_SECRET are required.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 envOr("PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		TokenTTL:             envDuration("JWT_EXPIRE", 24*time.Hour),
		RedisAddr:            envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              envInt("REDIS_DB", 0),
		MinioEndpoint:        envOr("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:       envOr("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:       envOr("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:          envOr("MINIO_BUCKET", "portfolio"),
		MinioUseSSL:          os.Getenv("MINIO_USE_SSL") == "true",
		SMTPAddr:             envOr("SMTP_ADDR", "localhost:587"),
		SMTPUsername:         os.Getenv("SMTP_USERNAME"),
		SMTPPassword:         os.Getenv("SMTP_PASSWORD"),
		OwnerEmail:           os.Getenv("OWNER_EMAIL"),
		MediaPageSize:        envInt("MEDIA_PAGE_SIZE", 500),
		MediaMaxPages:        envInt("MEDIA_MAX_PAGES", 50),
		MediaRefreshInterval: envDuration("MEDIA_REFRESH_INTERVAL", 0),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
