package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	OpenAI   OpenAIConfig
	RAG      RAGConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// OpenAIConfig targets any OpenAI-compatible gateway. BaseURL is optional
// and defaults to the official API endpoint.
type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	EmbeddingModel string
	ChatModel      string
	Temperature    float32
	MaxTokens      int
}

type RAGConfig struct {
	ChunkSize           int
	ChunkOverlap        int
	TopK                int
	SimilarityThreshold float64
	MaxContextSchools   int
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// Missing .env is fine; environment variables are used directly
	// (useful for Docker/K8s)

	var envErr error
	getInt := func(key string, def int) int {
		value := os.Getenv(key)
		if value == "" {
			return def
		}
		n, err := strconv.Atoi(value)
		if err != nil && envErr == nil {
			envErr = fmt.Errorf("invalid %s: %q is not an integer", key, value)
		}
		return n
	}
	getFloat := func(key string, def float64) float64 {
		value := os.Getenv(key)
		if value == "" {
			return def
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil && envErr == nil {
			envErr = fmt.Errorf("invalid %s: %q is not a number", key, value)
		}
		return f
	}

	readTimeout := getInt("SERVER_READ_TIMEOUT", 30)
	writeTimeout := getInt("SERVER_WRITE_TIMEOUT", 30)
	jwtExp := getInt("JWT_EXPIRATION_HOURS", 24)
	refreshExp := getInt("JWT_REFRESH_EXPIRATION_HOURS", 168)
	chunkSize := getInt("RAG_CHUNK_SIZE", 1000)
	chunkOverlap := getInt("RAG_CHUNK_OVERLAP", 200)
	topK := getInt("RAG_TOP_K", 5)
	threshold := getFloat("RAG_SIMILARITY_THRESHOLD", 0.78)
	maxSchools := getInt("RAG_MAX_CONTEXT_SCHOOLS", 5)
	temperature := getFloat("OPENAI_TEMPERATURE", 0.7)
	maxTokens := getInt("OPENAI_MAX_TOKENS", 1024)
	if envErr != nil {
		return nil, envErr
	}

	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be in [0, %d)", chunkOverlap, chunkSize)
	}
	if topK < 1 {
		return nil, fmt.Errorf("RAG top-k must be at least 1, got %d", topK)
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("similarity threshold %g must be in [0, 1]", threshold)
	}
	if maxSchools < 0 {
		return nil, fmt.Errorf("max context schools must not be negative, got %d", maxSchools)
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "admitrag"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			BaseURL:        getEnv("OPENAI_BASE_URL", ""),
			EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			ChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			Temperature:    float32(temperature),
			MaxTokens:      maxTokens,
		},
		RAG: RAGConfig{
			ChunkSize:           chunkSize,
			ChunkOverlap:        chunkOverlap,
			TopK:                topK,
			SimilarityThreshold: threshold,
			MaxContextSchools:   maxSchools,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
