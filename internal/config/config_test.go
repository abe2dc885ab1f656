package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.LLM.TimeoutSeconds)
	assert.Equal(t, 1, cfg.LLM.Retries)
	assert.Equal(t, 1.5, cfg.LLM.RetryBackoffSeconds)
	assert.Equal(t, 2048, cfg.LLM.MaxTokens)
	assert.True(t, cfg.Knowledge.External)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("LLM_MODEL", "deepseek-chat")
	t.Setenv("LLM_RETRIES", "3")
	t.Setenv("LLM_KNOWLEDGE_EXTERNAL", "false")
	t.Setenv("CACHE_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "k", cfg.LLM.APIKey)
	assert.Equal(t, 3, cfg.LLM.Retries)
	assert.False(t, cfg.Knowledge.External)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
}

func TestFallbackModelList(t *testing.T) {
	assert.Nil(t, LLMConfig{}.FallbackModelList())
	assert.Nil(t, LLMConfig{FallbackModels: "  "}.FallbackModelList())
	assert.Equal(t,
		[]string{"claude-sonnet-4", "grok-code"},
		LLMConfig{FallbackModels: " claude-sonnet-4 , grok-code ,"}.FallbackModelList())
}
