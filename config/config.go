// Package config provides configuration for the InfoQaz API server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the server configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Google Translate
	GoogleAPIKey       string
	GoogleTranslateURL string

	// Groq chat completion
	GroqAPIKey string
	GroqAPIURL string
	GroqModel  string

	// Wikipedia. Empty means the per-language wikipedia.org hosts.
	WikiBaseURL string

	// Timeouts
	UpstreamTimeout time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:           getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:        getEnv("DATABASE_URL", "file:infoqaz.db?cache=shared&mode=rwc"),
		GoogleAPIKey:       getEnv("GOOGLE_API_KEY", ""),
		GoogleTranslateURL: getEnv("GOOGLE_TRANSLATE_URL", "https://translation.googleapis.com/language/translate/v2"),
		GroqAPIKey:         getEnv("GROQ_API_KEY", ""),
		GroqAPIURL:         getEnv("GROQ_API_URL", "https://api.groq.com"),
		GroqModel:          getEnv("GROQ_MODEL", "llama-3.1"),
		WikiBaseURL:        getEnv("WIKI_BASE_URL", ""),
		UpstreamTimeout:    time.Duration(getEnvInt("UPSTREAM_TIMEOUT_MS", 30000)) * time.Millisecond,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
