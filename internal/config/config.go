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
	Ai       AIConfig
	Dialogue DialogueConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider       string // "openai" or "ollama"
	LLMModel          string // e.g. "gpt-4o-mini", "llama3"
	EmbeddingProvider string // "openai" or "ollama"
	EmbeddingModel    string // e.g. "text-embedding-3-small", "nomic-embed-text"
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OllamaBaseURL     string
}

type DialogueConfig struct {
	MemoryCapacity      int     // sliding window size, turns
	SimilarityFloor     float64 // retrieval gate floor, 1 - cosine distance
	RetrievalTopK       int
	AnswerCacheTTLSecs  int // confident FAQ answers cached in Redis
	SessionTTLMinutes   int // idle sessions evicted after this
	EmbeddingDimensions int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Dialogue: DialogueConfig{
			MemoryCapacity:      getEnvAsInt("MEMORY_CAPACITY", 3),
			SimilarityFloor:     getEnvAsFloat("FAQ_SIMILARITY_FLOOR", 0.7),
			RetrievalTopK:       getEnvAsInt("FAQ_TOP_K", 3),
			AnswerCacheTTLSecs:  getEnvAsInt("FAQ_ANSWER_CACHE_TTL_SECONDS", 600),
			SessionTTLMinutes:   getEnvAsInt("SESSION_TTL_MINUTES", 60),
			EmbeddingDimensions: getEnvAsInt("EMBEDDING_DIMENSIONS", 1536),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
