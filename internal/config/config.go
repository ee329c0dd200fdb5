// Package config loads environment-driven settings, with an optional .env
// file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	MongoURI string
	MongoDB  string

	JWTSecret string
	TokenTTL  time.Duration

	// AuthMode selects the bearer-token verifier for /api routes:
	// "local" (signed JWTs) or "oidc" (managed identity provider).
	AuthMode     string
	OIDCIssuer   string
	OIDCClientID string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	ResetBaseURL string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getenv("PORT", "8080"),

		MongoURI: getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getenv("MONGO_DB", "shopstack"),

		JWTSecret: getenv("JWT_SECRET", ""),
		TokenTTL:  getduration("TOKEN_TTL", 4*time.Hour),

		AuthMode:     getenv("AUTH_MODE", "local"),
		OIDCIssuer:   getenv("OIDC_ISSUER", ""),
		OIDCClientID: getenv("OIDC_CLIENT_ID", ""),

		SMTPHost:     getenv("SMTP_HOST", "localhost"),
		SMTPPort:     getint("SMTP_PORT", 587),
		SMTPUser:     getenv("SMTP_USER", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		MailFrom:     getenv("MAIL_FROM", "noreply@shopstack.local"),
		ResetBaseURL: getenv("RESET_BASE_URL", "http://localhost:8080/auth/set-password"),

		MinioEndpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getenv("MINIO_BUCKET", "product-images"),
		MinioUseSSL:    getbool("MINIO_USE_SSL", false),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
