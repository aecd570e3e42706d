package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	URLExpiry  time.Duration
}

// Feed controls pagination and the index page cache.
type Feed struct {
	PostsPerPage      int
	IndexCacheTTL     time.Duration
	InvalidateOnWrite bool
}

type Session struct {
	JWTSecretKey string
	Duration     time.Duration
	CookieName   string
	SecureCookie bool
}

type Config struct {
	Env            string
	ServerPort     int
	DB             DB
	MinIO          MinIO
	RedisURL       string
	Session        Session
	Feed           Feed
	MaxUploadSize  int64
	MigrationsPath string
	LogLevel       string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "yatube"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "posts"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		URLExpiry:  parseDuration(getEnv("MINIO_URL_EXPIRY", "24h"), 24*time.Hour),
	}
}

func LoadSession() Session {
	return Session{
		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
		Duration:     parseDuration(getEnv("SESSION_DURATION", "336h"), 14*24*time.Hour),
		CookieName:   getEnv("SESSION_COOKIE_NAME", "yatube_session"),
		SecureCookie: getEnvBool("SESSION_COOKIE_SECURE", false),
	}
}

func LoadFeed() Feed {
	return Feed{
		PostsPerPage:      getEnvAsInt("POSTS_PER_PAGE", 10),
		IndexCacheTTL:     parseDuration(getEnv("INDEX_CACHE_TTL", "20s"), 20*time.Second),
		InvalidateOnWrite: getEnvBool("CACHE_INVALIDATE_ON_WRITE", false),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		Env:            getEnv("APP_ENV", "development"),
		ServerPort:     getEnvAsInt("SERVER_PORT", 8080),
		DB:             LoadDB(),
		MinIO:          LoadMinIO(),
		RedisURL:       getEnv("REDIS_URL", ""),
		Session:        LoadSession(),
		Feed:           LoadFeed(),
		MaxUploadSize:  parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations/001_create_tables.sql"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}
