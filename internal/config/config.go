package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string

	// SessionTTL is the inactivity window before a session expires.
	SessionTTL time.Duration

	S3EndpointURL string
	S3Region      string
	S3Bucket      string
	S3Username    string
	S3Password    string
}

func Load() Config {
	// A missing .env is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg := Config{
		AppPort: getenv("APP_PORT", "3000"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SessionTTL: ttlFromEnv("SESSION_TTL", 3600),

		S3EndpointURL: os.Getenv("S3_ENDPOINT_URL"),
		S3Region:      os.Getenv("S3_REGION"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Username:    os.Getenv("S3_USERNAME"),
		S3Password:    os.Getenv("S3_PASSWORD"),
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func ttlFromEnv(key string, fallbackSeconds int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(fallbackSeconds) * time.Second
}
