// Package config provides configuration for the council service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xiaot623/council/internal/domain"
)

// Config holds the council service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// LLM gateway settings
	LiteLLMURL    string
	LiteLLMAPIKey string
	LLMTimeout    time.Duration

	// Council composition. Passed into each deliberation at call time, so
	// different requests may override it without touching process state.
	CouncilModels []string
	ChairmanModel string
	Effort        domain.EffortLevel

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:      getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:   getEnv("DATABASE_URL", "file:council.db?cache=shared&mode=rwc"),
		LiteLLMURL:    getEnv("LITELLM_URL", "http://localhost:4000"),
		LiteLLMAPIKey: getEnv("LITELLM_API_KEY", ""),
		LLMTimeout:    time.Duration(getEnvInt("LLM_TIMEOUT_MS", 120000)) * time.Millisecond,
		CouncilModels: getEnvList("COUNCIL_MODELS", []string{
			"openai/gpt-4o",
			"gemini/gemini-1.5-pro",
			"anthropic/claude-3-5-sonnet-20241022",
			"openrouter/x-ai/grok-2",
		}),
		ChairmanModel: getEnv("CHAIRMAN_MODEL", "gemini/gemini-1.5-pro"),
		Effort:        domain.EffortLevel(getEnv("EFFORT", string(domain.EffortNone))),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
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

func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
