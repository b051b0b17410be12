package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string

	JWTSecret     string
	ServiceAPIKey string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	CORSOrigins string

	ResendAPIKey string
	FromName     string
	FromEmail    string

	QueueBatchSize    int
	QueueMaxAttempts  int
	QueuePollInterval time.Duration
	SweepHour         int
	TemplateSeedPath  string
	SettingsCacheTTL  time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		ServiceAPIKey: getEnv("SERVICE_API_KEY", ""),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "church-attachments"),
		MinIOUseSSL:    getBoolEnv("MINIO_USE_SSL", false),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromName:     getEnv("FROM_NAME", "DOCM Church"),
		FromEmail:    getEnv("FROM_EMAIL", "admin@docmchurch.org"),

		QueueBatchSize:    getIntEnv("EMAIL_BATCH_SIZE", 20),
		QueueMaxAttempts:  getIntEnv("EMAIL_MAX_ATTEMPTS", 3),
		QueuePollInterval: getDurationEnv("EMAIL_POLL_INTERVAL", time.Minute),
		SweepHour:         getIntEnv("WORKFLOW_SWEEP_HOUR", 8),
		TemplateSeedPath:  getEnv("TEMPLATE_SEED_PATH", "internal/service/comms/seeds/templates.yaml"),
		SettingsCacheTTL:  getDurationEnv("SETTINGS_CACHE_TTL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
