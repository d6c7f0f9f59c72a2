// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTTTL is the session token lifetime when JWT_TTL_HOURS is unset
// (~90 days).
const DefaultJWTTTL = 2160 * time.Hour

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port    string
	BaseURL string

	// Relaxed bypasses verification gating and selects the dev identity
	// provider. Never enable in production.
	Relaxed bool

	CORSOrigin string

	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	RunMigrations bool

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr     string
	RedisPassword string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string

	IdentityKitAPIKey  string
	IdentityKitBaseURL string
}

// Load reads configuration from the environment (and an optional .env file)
// and performs minimal validation.
func Load() (Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := Config{
		Port:       fallback(os.Getenv("PORT"), "8080"),
		BaseURL:    fallback(os.Getenv("APP_BASE_URL"), "http://localhost:8080"),
		Relaxed:    parseBool(os.Getenv("RELAXED_MODE")),
		CORSOrigin: strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGIN")),

		DBHost:        fallback(os.Getenv("DB_HOST"), "localhost"),
		DBPort:        fallback(os.Getenv("DB_PORT"), "5432"),
		DBUser:        strings.TrimSpace(os.Getenv("DB_USER")),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        strings.TrimSpace(os.Getenv("DB_NAME")),
		DBSSLMode:     fallback(os.Getenv("DB_SSLMODE"), "disable"),
		RunMigrations: parseBool(os.Getenv("RUN_MIGRATIONS")),

		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTTTL:    DefaultJWTTTL,

		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		S3Endpoint:  strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		S3Region:    fallback(os.Getenv("S3_REGION"), "us-east-1"),
		S3Bucket:    strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),

		SMTPHost: strings.TrimSpace(os.Getenv("SMTP_HOST")),
		SMTPPort: fallback(os.Getenv("SMTP_PORT"), "587"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: fallback(os.Getenv("MAIL_FROM"), "no-reply@localhost"),

		IdentityKitAPIKey:  strings.TrimSpace(os.Getenv("IDENTITYKIT_API_KEY")),
		IdentityKitBaseURL: fallback(os.Getenv("IDENTITYKIT_BASE_URL"), "https://identitytoolkit.googleapis.com/v1"),
	}

	if hours := strings.TrimSpace(os.Getenv("JWT_TTL_HOURS")); hours != "" {
		if h, err := strconv.Atoi(hours); err == nil && h > 0 {
			cfg.JWTTTL = time.Duration(h) * time.Hour
		}
	}

	if cfg.DBUser == "" || cfg.DBName == "" {
		return Config{}, errors.New("DB_USER and DB_NAME are required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if !cfg.Relaxed && cfg.IdentityKitAPIKey == "" {
		return Config{}, errors.New("IDENTITYKIT_API_KEY is required outside relaxed mode")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseBool(value string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(value))
	return b
}
