package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultHingemPrompt = "You are Hingem, a friendly, concise assistant. Use the personality: warm, witty, slightly mysterious. Do not reveal private location info."
	DefaultRelayPrompt  = "You are a helpful assistant."
)

// Provider holds connection settings of one OpenAI-compatible endpoint.
type Provider struct {
	APIKey  string
	BaseURL string
	Model   string
}

type Config struct {
	Port   string
	AppEnv string
	// LogLevel is a zap level name (debug, info, warn, error).
	LogLevel string

	OpenAI Provider
	Groq   Provider
	// GroqThreshold is the strict lower bound a cheap reply's confidence must exceed.
	GroqThreshold float64
	// GroqDefaultConfidence is used when the provider returns no logprobs.
	GroqDefaultConfidence float64
	LLMTimeout            time.Duration
	SystemPrompt          string

	ShutdownToken     string
	ShutdownTokenHash string

	AdminJWTSecret     string
	AdminJWTIssuer     string
	AdminJWTTTLMinutes int

	DatabaseURL  string
	RedisURL     string
	OTLPEndpoint string
}

// Load reads environment variables, optionally from a .env file if present.
// defPort and defPrompt differ between the hingem server and the relay.
func Load(defPort, defPrompt string) Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:     getEnv("PORT", defPort),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		OpenAI: Provider{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Groq: Provider{
			APIKey:  os.Getenv("GROQ_API_KEY"),
			BaseURL: getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:   getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		},
		GroqThreshold:         getEnvFloat("GROQ_CONFIDENCE_THRESHOLD", 0.65),
		GroqDefaultConfidence: getEnvFloat("GROQ_DEFAULT_CONFIDENCE", 0.55),
		LLMTimeout:            getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		SystemPrompt:          getEnv("SYSTEM_PROMPT", defPrompt),
		ShutdownToken:         os.Getenv("SHUTDOWN_TOKEN"),
		ShutdownTokenHash:     os.Getenv("SHUTDOWN_TOKEN_HASH"),
		AdminJWTSecret:        os.Getenv("ADMIN_JWT_SECRET"),
		AdminJWTIssuer:        getEnv("ADMIN_JWT_ISSUER", "hingem"),
		AdminJWTTTLMinutes:    getEnvInt("ADMIN_JWT_TTL_MINUTES", 60),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		RedisURL:              os.Getenv("REDIS_URL"),
		OTLPEndpoint:          os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
	return cfg
}

func (c Config) Production() bool { return c.AppEnv == "production" }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("30s") and bare seconds ("30").
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}
