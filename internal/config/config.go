package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Knack KnackConfig
	Ai    AIConfig
	Data  DataConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

// KnackConfig holds credentials for the Knack record store that keeps
// student, questionnaire and chat data.
type KnackConfig struct {
	AppID   string
	APIKey  string
	BaseURL string
}

type AIConfig struct {
	Provider      string // "openai" or "ollama"
	Model         string // e.g. "gpt-3.5-turbo"
	OpenAIAPIKey  string
	OllamaBaseURL string
	MaxTokens     int
}

// DataConfig points at the on-disk benchmark tables and knowledge base.
type DataConfig struct {
	BenchmarkDir     string
	KnowledgeDir     string
	CohortCacheTTLMn int // minutes
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
		},
		Knack: KnackConfig{
			AppID:   getEnv("KNACK_APP_ID", ""),
			APIKey:  getEnv("KNACK_API_KEY", ""),
			BaseURL: getEnv("KNACK_BASE_URL", "https://api.knack.com/v1"),
		},
		Ai: AIConfig{
			Provider:      getEnv("LLM_PROVIDER", "openai"),
			Model:         getEnv("LLM_MODEL", "gpt-3.5-turbo"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			MaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", 1000),
		},
		Data: DataConfig{
			BenchmarkDir:     getEnv("BENCHMARK_DATA_DIR", "./data/benchmarks"),
			KnowledgeDir:     getEnv("KNOWLEDGE_DATA_DIR", "./data/knowledge"),
			CohortCacheTTLMn: getEnvAsInt("COHORT_CACHE_TTL_MINUTES", 60),
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
