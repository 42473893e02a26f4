package config

import (
	"fmt"
	"os"
)

// AppConfig carries the process-wide settings. It is resolved once at
// startup so handlers and workers do not reach into the environment.
type AppConfig struct {
	APIEnv         string
	FromEmail      string
	FromName       string
	JWTSecret      string
	ChapaSecretKey string
	ChapaBaseURL   string
	CallbackURL    string
	KafkaBroker    string
	RedisHost      string
	EmailQueue     string
}

var appConfig *AppConfig

func Get() *AppConfig {
	if appConfig != nil {
		return appConfig
	}
	cfg := &AppConfig{
		APIEnv:         os.Getenv("API_ENV"),
		FromEmail:      os.Getenv("FROM_EMAIL"),
		FromName:       os.Getenv("FROM_NAME"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		ChapaSecretKey: os.Getenv("CHAPA_SECRET_KEY"),
		ChapaBaseURL:   os.Getenv("CHAPA_BASE_URL"),
		CallbackURL:    os.Getenv("PAYMENT_CALLBACK_URL"),
		KafkaBroker:    os.Getenv("KAFKA_BROKER"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		EmailQueue:     os.Getenv("EMAIL_QUEUE"),
	}
	if cfg.ChapaBaseURL == "" {
		cfg.ChapaBaseURL = "https://api.chapa.co"
	}
	if cfg.FromName == "" {
		cfg.FromName = "noreply"
	}
	if cfg.EmailQueue == "" {
		cfg.EmailQueue = "EmailsToSend"
	}
	appConfig = cfg
	return cfg
}

// NewConfig replaces the active configuration with a custom one
func NewConfig(cfg *AppConfig) *AppConfig {
	appConfig = cfg
	return appConfig
}

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const DATE_PARSE_FORMAT = "2006-01-02"
