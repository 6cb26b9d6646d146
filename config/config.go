package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	UploadDir   string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	// Inbound mail routing
	InboundDomain string // Domain used for the card-<slug>@<domain> reply addresses
	// Other
	AllowedOrigins []string
	AppURL         string
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
	// Trash
	TrashRetentionDays int
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DBPath:             getEnv("DB_PATH", "db/app.db"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		UploadDir:          getEnv("UPLOAD_DIR", "static/uploads"),
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "noreply@caseflow.example.com"),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "Case Flow"),
		EmailTestMode:      getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		InboundDomain:      getEnv("INBOUND_DOMAIN", "mail.caseflow.example.com"),
		AllowedOrigins:     strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		AppURL:             getEnv("APP_URL", "http://localhost:8080"),
		R2AccountID:        getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:      getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:  getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:       getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:        getEnv("R2_PUBLIC_URL", ""),
		TrashRetentionDays: getEnvInt("TRASH_RETENTION_DAYS", 30),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("[WARNING] Invalid boolean for %s: %q, using default", key, value)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[WARNING] Invalid integer for %s: %q, using default", key, value)
		return defaultValue
	}
	return parsed
}
