package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Equal(t, 5, cfg.SearchLimit)
	assert.Equal(t, 8, cfg.MinSentenceWords)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ITIHAS_DEFAULT_LANGUAGE", "Hindi")
	t.Setenv("ITIHAS_MIN_SENTENCE_WORDS", "5")
	t.Setenv("ITIHAS_REQUEST_TIMEOUT", "3s")
	t.Setenv("ITIHAS_TRANSLATOR", "LLM")
	t.Setenv("ITIHAS_SEARCH_LIMIT", "not-a-number")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := ConfigFromEnv()
	assert.Equal(t, "hi", cfg.DefaultLanguage)
	assert.Equal(t, 5, cfg.MinSentenceWords)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, BackendLLM, cfg.Translator)
	assert.Equal(t, 5, cfg.SearchLimit, "unparsable values keep the default")
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad language", func(c *Config) { c.DefaultLanguage = "xx" }},
		{"zero search limit", func(c *Config) { c.SearchLimit = 0 }},
		{"zero questions", func(c *Config) { c.QuestionCount = 0 }},
		{"too few sentences", func(c *Config) { c.MinSentences = 1 }},
		{"unknown translator", func(c *Config) { c.Translator = "babel" }},
		{"openai speech without key", func(c *Config) { c.Speech = BackendOpenAI }},
		{"url without placeholder", func(c *Config) { c.WikipediaURL = "https://en.wikipedia.org" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ITIHAS_TEST_DOTENV=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("ITIHAS_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "loaded", os.Getenv("ITIHAS_TEST_DOTENV"))
}
