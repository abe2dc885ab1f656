// Package config provides configuration management for the coaching core.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// LLMConfig holds the remote completion provider settings.
type LLMConfig struct {
	APIKey              string  `envconfig:"LLM_API_KEY"`
	APIURL              string  `envconfig:"LLM_API_URL"`
	Model               string  `envconfig:"LLM_MODEL"`
	FallbackModels      string  `envconfig:"LLM_FALLBACK_MODELS"`
	TimeoutSeconds      int     `envconfig:"LLM_TIMEOUT_SECONDS" default:"30"`
	Retries             int     `envconfig:"LLM_RETRIES" default:"1"`
	RetryBackoffSeconds float64 `envconfig:"LLM_RETRY_BACKOFF_SECONDS" default:"1.5"`
	MaxTokens           int     `envconfig:"LLM_MAX_TOKENS" default:"2048"`
	ResponseTokenTarget int     `envconfig:"LLM_RESPONSE_TOKEN_TARGET" default:"0"`
}

// FallbackModelList splits the comma-separated fallback model ids.
func (c LLMConfig) FallbackModelList() []string {
	if strings.TrimSpace(c.FallbackModels) == "" {
		return nil
	}
	var models []string
	for _, m := range strings.Split(c.FallbackModels, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	return models
}

// CacheConfig holds the shared cache tier settings. An empty RedisURL
// disables the shared tier entirely.
type CacheConfig struct {
	RedisURL     string `envconfig:"CACHE_REDIS_URL"`
	ReadTimeout  int    `envconfig:"CACHE_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"CACHE_WRITE_TIMEOUT" default:"3"`
	DialTimeout  int    `envconfig:"CACHE_DIAL_TIMEOUT" default:"5"`
}

// KnowledgeConfig controls knowledge-context enrichment.
type KnowledgeConfig struct {
	External bool   `envconfig:"LLM_KNOWLEDGE_EXTERNAL" default:"true"`
	File     string `envconfig:"LLM_KNOWLEDGE_FILE"`
}

// RiotConfig holds credentials for the rank-lookup collaborator.
type RiotConfig struct {
	APIKey string `envconfig:"RIOT_API_KEY"`
}

// Config holds all configuration values for the application.
type Config struct {
	Env       string `envconfig:"APP_ENV" default:"development"`
	LLM       LLMConfig
	Cache     CacheConfig
	Knowledge KnowledgeConfig
	Riot      RiotConfig
}

// Load reads configuration from the environment, consulting a .env file
// when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
