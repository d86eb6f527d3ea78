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
	Search   SearchConfig
	Ai       AIConfig
	Upload   UploadConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type SearchConfig struct {
	Addresses    string // comma separated Elasticsearch URLs
	SessionIndex string
	MaxResults   int
	SyncTopic    string
	DeleteTopic  string
}

type AIConfig struct {
	OllamaBaseURL string
	OllamaModel   string
}

type UploadConfig struct {
	MaxFileSizeBytes int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8080"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Search: SearchConfig{
			Addresses:    getEnv("ELASTICSEARCH_ADDRESSES", "http://localhost:9200"),
			SessionIndex: getEnv("ELASTICSEARCH_SESSION_INDEX", "chat-sessions"),
			MaxResults:   getEnvAsInt("ELASTICSEARCH_MAX_RESULTS", 20),
			SyncTopic:    getEnv("SESSION_SYNC_TOPIC_NAME", "SYNC_CHAT_SESSION"),
			DeleteTopic:  getEnv("SESSION_DELETE_TOPIC_NAME", "DELETE_CHAT_SESSION"),
		},
		Ai: AIConfig{
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:   getEnv("OLLAMA_MODEL", "llama3"),
		},
		Upload: UploadConfig{
			MaxFileSizeBytes: getEnvAsInt("MAX_UPLOAD_SIZE_BYTES", 10*1024*1024),
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
