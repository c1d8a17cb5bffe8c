package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config is built once at process start and passed into the components that
// need it; business logic never reads the environment directly.
type Config struct {
	Port     string
	LogLevel string

	DatabaseDriver string // "postgres" | "sqlite"
	DatabaseURI    string

	RedisAddr string // empty disables the resume cache

	LLMProvider string // "groq" | "vertex"
	STTProvider string // "groq" | "google"

	GroqAPIKey     string
	GroqChatURL    string // empty uses the public endpoint
	GroqWhisperURL string
	WhisperModel   string

	VertexProjectID string
	VertexLocation  string
	VertexModel     string
	SpeechLanguage  string

	GCSBucket string // empty disables resume archival

	JWTSecret string // empty disables bearer auth
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getenv("PORT", "8000"),
		LogLevel: os.Getenv("LOG_LEVEL"),

		DatabaseDriver: getenv("DB_DRIVER", "postgres"),
		DatabaseURI:    os.Getenv("DATABASE_URI"),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		LLMProvider: getenv("LLM_PROVIDER", "groq"),
		STTProvider: getenv("STT_PROVIDER", "groq"),

		GroqAPIKey:     os.Getenv("GROQ_API_KEY"),
		GroqChatURL:    os.Getenv("GROQ_CHAT_URL"),
		GroqWhisperURL: os.Getenv("GROQ_WHISPER_URL"),
		WhisperModel:   os.Getenv("WHISPER_MODEL"),

		VertexProjectID: os.Getenv("VERTEX_PROJECT_ID"),
		VertexLocation:  getenv("VERTEX_LOCATION", "us-central1"),
		VertexModel:     os.Getenv("VERTEX_MODEL"),
		SpeechLanguage:  getenv("SPEECH_LANGUAGE", "en-US"),

		GCSBucket: os.Getenv("GCS_BUCKET"),

		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if cfg.DatabaseURI == "" {
		return nil, errors.New("DATABASE_URI environment variable is not set")
	}
	if cfg.DatabaseDriver != "postgres" && cfg.DatabaseDriver != "sqlite" {
		return nil, errors.New("DB_DRIVER must be postgres or sqlite")
	}
	if (cfg.LLMProvider == "groq" || cfg.STTProvider == "groq") && cfg.GroqAPIKey == "" {
		return nil, errors.New("GROQ_API_KEY environment variable is not set")
	}
	if cfg.LLMProvider == "vertex" && cfg.VertexProjectID == "" {
		return nil, errors.New("VERTEX_PROJECT_ID must be set when LLM_PROVIDER=vertex")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
