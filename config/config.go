package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort      string
	Environment     string
	MongoURI        string
	MongoDatabase   string
	MinIOEndpoint   string
	MinIOAccessKey  string
	MinIOSecretKey  string
	MinIOBucket     string
	MinIOUseSSL     bool
	CacheTTL        time.Duration
	PresignedURLTTL time.Duration
	SnapshotRefresh string // cron spec for the schedule snapshot refresh
}

func Load() *Config {
	cacheMinutes, _ := strconv.Atoi(getEnv("CACHE_TTL_MINUTES", "10"))
	presignedMinutes, _ := strconv.Atoi(getEnv("PRESIGNED_URL_TTL_MINUTES", "15"))
	useSSL, _ := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DB", "dept-portal"),
		MinIOEndpoint:   getEnv("MINIO_ENDPOINT", "minio:9000"),
		MinIOAccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:     getEnv("MINIO_BUCKET", "dept-portal"),
		MinIOUseSSL:     useSSL,
		CacheTTL:        time.Duration(cacheMinutes) * time.Minute,
		PresignedURLTTL: time.Duration(presignedMinutes) * time.Minute,
		SnapshotRefresh: getEnv("SNAPSHOT_REFRESH_CRON", "*/10 * * * *"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
