package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	JWTResetSecret   string
	JWTResetExpiry   time.Duration

	// Admin bootstrap (comma separated)
	AdminEmails string

	// Server
	Port        string
	CORSOrigins string
	AppEnv      string
	SentryDSN   string

	// Storage
	StorageType   string
	UploadDir     string
	PublicURL     string
	AWSRegion     string
	AWSAccessKey  string
	AWSSecretKey  string
	AWSBucketName string

	// Mail
	MailDriver  string
	MailFrom    string
	FrontendURL string

	// Cache
	RedisURL string
	CacheTTL time.Duration

	// Maintenance
	LogRetention time.Duration
}

func Load() *Config {
	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "patinhas"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m")),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),
		JWTResetSecret:   getEnv("JWT_RESET_SECRET", ""),
		JWTResetExpiry:   parseDuration(getEnv("JWT_RESET_EXPIRY", "1h")),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		AppEnv:      getEnv("APP_ENV", "development"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),

		StorageType:   strings.ToLower(getEnv("STORAGE_TYPE", "local")),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		PublicURL:     strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:8080"), "/"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKey:  getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSBucketName: getEnv("AWS_S3_BUCKET", ""),

		MailDriver:  strings.ToLower(getEnv("MAIL_DRIVER", "log")),
		MailFrom:    getEnv("MAIL_FROM", "no-reply@patinhas.local"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		RedisURL: getEnv("REDIS_URL", ""),
		CacheTTL: parseDuration(getEnv("CACHE_TTL", "5m")),

		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h")),
	}

	// Reset links fall back to the access secret so a single-secret setup still works.
	if cfg.JWTResetSecret == "" {
		cfg.JWTResetSecret = cfg.JWTSecret
	}
	return cfg
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AdminEmailList returns the bootstrap admin emails, lowercased.
func (c *Config) AdminEmailList() []string {
	if c.AdminEmails == "" {
		return nil
	}
	parts := strings.Split(c.AdminEmails, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.ToLower(strings.TrimSpace(p)); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}
