// Package config loads process configuration from the environment. A .env
// file in the working directory is honored when present.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string
	MySQLDSN   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioPublicURL string
	MinioUseSSL    bool

	JWTSecret    []byte
	SyncInterval time.Duration
}

func Load() Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		ListenAddr: getenv("LISTEN_ADDR", ":8080"),
		MySQLDSN: getenv("MYSQL_DSN",
			"root:123456@tcp(127.0.0.1:3306)/reelfeed?charset=utf8mb4&parseTime=True&loc=Local"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),

		MinioEndpoint:  getenv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", "admin"),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", "password123"),
		MinioBucket:    getenv("MINIO_BUCKET", "reelfeed"),
		MinioPublicURL: getenv("MINIO_PUBLIC_URL", "http://127.0.0.1:9000"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",

		JWTSecret:    []byte(getenv("JWT_SECRET", "dev_only_secret")),
		SyncInterval: getduration("SYNC_INTERVAL", time.Minute),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
