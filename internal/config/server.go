package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds the settings of the advisory HTTP service
type ServerConfig struct {
	Port        string
	Environment string
	LogLevel    string

	// Text generation
	GeminiAPIKey string
	GeminiModel  string

	// CORS
	AllowedOrigins []string

	// Advice cache (Redis). Empty address disables caching.
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	AdviceCacheTTL time.Duration

	ShutdownTimeout time.Duration
}

// DefaultGeminiModel is used when GEMINI_MODEL is unset
const DefaultGeminiModel = "gemini-1.5-flash"

// DefaultServerConfig returns the settings used when no environment is
// configured: development mode on port 5001 without caching.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            "5001",
		Environment:     "development",
		LogLevel:        "info",
		GeminiModel:     DefaultGeminiModel,
		AllowedOrigins:  []string{"http://localhost:3000"},
		AdviceCacheTTL:  24 * time.Hour,
		ShutdownTimeout: 10 * time.Second,
	}
}

// LoadServerConfig reads the configuration from the environment. Outside
// production a .env file in the working directory is loaded first; a
// missing file is not an error.
func LoadServerConfig() (*ServerConfig, error) {
	if getEnv("ENVIRONMENT", "development") != "production" {
		_ = godotenv.Load()
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("ADVICE_CACHE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADVICE_CACHE_TTL: %w", err)
	}
	shutdown, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &ServerConfig{
		Port:            getEnv("PORT", "5001"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", DefaultGeminiModel),
		AllowedOrigins:  splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
		AdviceCacheTTL:  cacheTTL,
		ShutdownTimeout: shutdown,
	}, nil
}

// IsProduction reports whether the service runs in production mode
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		part = strings.TrimSuffix(part, "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
