package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Gst      GstConfig
	Udyam    UdyamConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	PdfRendererURL     string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	OpenAI              string
	GoogleClientID      string
	GoogleClientSecret  string
	InvoiceCreatedTopic string
}

type AIConfig struct {
	LLMProvider string // "openai" or any OpenAI-compatible router
	LLMBaseURL  string
	LLMModel    string
	MaxTokens   int
}

type GstConfig struct {
	BaseURL string
	APIKey  string
}

type UdyamConfig struct {
	BaseURL string
	APIKey  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			PdfRendererURL:     getEnv("PDF_RENDERER_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "SmartBiz"),
		},
		Keys: APIKeys{
			OpenAI:              getEnv("OPENAI_API_KEY", ""),
			GoogleClientID:      getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret:  getEnv("GOOGLE_CLIENT_SECRET", ""),
			InvoiceCreatedTopic: getEnv("INVOICE_CREATED_TOPIC_NAME", "INVOICE_CREATED"),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "openai"),
			LLMBaseURL:  getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			LLMModel:    getEnv("LLM_MODEL", "gpt-4-turbo"),
			MaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 500),
		},
		Gst: GstConfig{
			BaseURL: getEnv("GST_API_URL", "https://gst.gov.in/api/v1"),
			APIKey:  getEnv("GST_API_KEY", ""),
		},
		Udyam: UdyamConfig{
			BaseURL: getEnv("UDYAM_API_URL", ""),
			APIKey:  getEnv("UDYAM_API_KEY", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
