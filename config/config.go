package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	DB DatabaseConfig

	EmailSender    string
	Password       string // SMTP Password
	SMTPHost       string
	SMTPPort       string
	SendGridAPIKey string

	SMSApiURL  string
	SMSApiKey  string
	SMSTimeout time.Duration

	RedisURL           string
	NotificationStream string

	SupportPageSize    int
	SupportDigestCron  string
	SupportDigestEmail string
}

// DatabaseConfig selects the gorm dialector and its connection settings.
type DatabaseConfig struct {
	Driver   string // postgres, mysql or sqlite
	DSN      string // overrides the host/user/... fields when set
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		DB: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "support"),
			Port:     getEnv("DB_PORT", "5432"),
		},

		EmailSender:    getEnv("EMAIL_SENDER", ""),
		Password:       getEnv("PASSWORD", ""),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		SMSApiURL:  getEnv("SMS_API_URL", ""),
		SMSApiKey:  getEnv("SMS_API_KEY", ""),
		SMSTimeout: time.Duration(getEnvInt("SMS_TIMEOUT_SECONDS", 10)) * time.Second,

		RedisURL:           getEnv("REDIS_URL", ""),
		NotificationStream: getEnv("NOTIFICATION_STREAM", "support.notifications"),

		SupportPageSize:    getEnvInt("SUPPORT_PAGE_SIZE", 20),
		SupportDigestCron:  getEnv("SUPPORT_DIGEST_CRON", "0 9 * * *"),
		SupportDigestEmail: getEnv("SUPPORT_DIGEST_EMAIL", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.EmailSender == "" {
		log.Println("Warning: EMAIL_SENDER not set. Email notifications are disabled.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
