package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv       string
	HTTPPort     int
	DBPath       string
	DBDriver     string
	RedisAddr    string
	CacheEnabled bool
	CacheTTL     time.Duration
	StagingDir   string
	PreviewRows  int
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	portStr := getEnv("HTTP_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 8080
	}

	cacheStr := getEnv("CACHE_ENABLED", "true")
	cacheEnabled, err := strconv.ParseBool(cacheStr)
	if err != nil {
		cacheEnabled = true
	}

	ttlStr := getEnv("CACHE_TTL_MINUTES", "10")
	ttlMinutes, err := strconv.Atoi(ttlStr)
	if err != nil || ttlMinutes <= 0 {
		ttlMinutes = 10
	}

	previewStr := getEnv("PREVIEW_ROWS", "20")
	previewRows, err := strconv.Atoi(previewStr)
	if err != nil || previewRows <= 0 {
		previewRows = 20
	}

	return &Config{
		AppEnv:       getEnv("APP_ENV", "development"),
		HTTPPort:     port,
		DBPath:       getEnv("DB_PATH", "./data/reports.db"),
		DBDriver:     getEnv("DB_DRIVER", "sqlite3"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		CacheEnabled: cacheEnabled,
		CacheTTL:     time.Duration(ttlMinutes) * time.Minute,
		StagingDir:   getEnv("STAGING_DIR", "./uploads"),
		PreviewRows:  previewRows,
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
