// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Supported narrator providers.
const (
	ProviderGemini  = "gemini"
	ProviderOllama  = "ollama"
	ProviderMistral = "mistral"
	ProviderGroq    = "groq"
)

// Config is the environment-driven configuration for the API server.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	RedisURL string `env:"REDIS_URL" envDefault:"localhost:6379"`

	LLMProvider string `env:"LLM_PROVIDER" envDefault:"gemini"`
	ModelName   string `env:"MODEL_NAME"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	MistralAPIKey string `env:"MISTRAL_API_KEY"`
	GroqAPIKey    string `env:"GROQ_API_KEY"`
	OllamaURL     string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// SlogLevel converts the configured log level to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
