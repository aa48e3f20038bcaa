package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ResponderGenerative = "generative"
	ResponderRules      = "rules"
)

type Config struct {
	// Server
	Port           string
	Environment    string
	AllowedOrigins []string

	// Database
	DatabaseURL string

	// Auth
	JWTSecret         string
	AccessTokenExpiry time.Duration
	BcryptCost        int

	// Chat
	Responder      string
	GoogleAPIKey   string
	LLMBaseURL     string
	LLMModel       string
	LLMMaxTokens   int
	LLMTemperature float32
}

// Load reads configuration from the environment, after merging an optional
// .env file in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8000"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		AllowedOrigins:    getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		DatabaseURL:       getEnv("DATABASE_URL", "sqlite://todo_app.db"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AccessTokenExpiry: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		BcryptCost:        getEnvInt("BCRYPT_COST", 10),
		Responder:         getEnv("RESPONDER", ResponderGenerative),
		GoogleAPIKey:      getEnv("GOOGLE_API_KEY", ""),
		LLMBaseURL:        getEnv("LLM_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:          getEnv("LLM_MODEL", "gemini-2.5-flash"),
		LLMMaxTokens:      getEnvInt("LLM_MAX_TOKENS", 500),
		LLMTemperature:    float32(getEnvFloat("LLM_TEMPERATURE", 0.7)),
	}

	if cfg.JWTSecret == "" {
		// Name used by the auth frontend's deployment.
		cfg.JWTSecret = getEnv("BETTER_AUTH_SECRET", "")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if cfg.AccessTokenExpiry <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	switch cfg.Responder {
	case ResponderGenerative, ResponderRules:
	default:
		return nil, fmt.Errorf("RESPONDER must be %q or %q, got %q", ResponderGenerative, ResponderRules, cfg.Responder)
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return floatVal
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
