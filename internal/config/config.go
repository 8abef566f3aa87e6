package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/itihas/internal/lang"
)

// Translator and speech backends.
const (
	BackendGoogle = "google"
	BackendLLM    = "llm"
	BackendOpenAI = "openai"
	BackendNone   = "none"
)

// Config holds the pipeline configuration.
type Config struct {
	// DefaultLanguage is the search language and the one-shot fallback
	// language for content retrieval. Default: "en".
	DefaultLanguage string

	// SearchLimit is the number of ranked candidates requested per topic search.
	SearchLimit int

	// MinSentenceWords is the word count a sentence must exceed to qualify
	// as a quiz statement.
	MinSentenceWords int

	// QuestionCount is the maximum number of quiz items per session.
	QuestionCount int

	// MinSentences is the number of qualifying sentences required to build a quiz.
	MinSentences int

	// RequestTimeout bounds every network call (search, fetch, translate, speech).
	RequestTimeout time.Duration

	// CacheTTL is how long fetched summaries stay cached.
	CacheTTL time.Duration

	// RedisAddr enables the shared Redis cache when set. Empty uses an
	// in-process cache.
	RedisAddr string

	// Translator selects the translation backend: "google", "llm" or "none".
	Translator string

	// Speech selects the speech synthesis backend: "google", "openai" or "none".
	Speech string

	// OpenAIKey is used by the "openai" speech backend.
	OpenAIKey string

	// WikipediaURL is the site root with a {lang} placeholder.
	WikipediaURL string

	// LogMode is "dev" or "prod".
	LogMode string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultLanguage:  lang.English.Code,
		SearchLimit:      5,
		MinSentenceWords: 8,
		QuestionCount:    3,
		MinSentences:     4,
		RequestTimeout:   10 * time.Second,
		CacheTTL:         time.Hour,
		Translator:       BackendGoogle,
		Speech:           BackendGoogle,
		WikipediaURL:     "https://{lang}.wikipedia.org",
		LogMode:          "dev",
	}
}

// LoadDotEnv loads .env files into the process environment. Missing files
// are ignored; existing variables are never overridden.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ConfigFromEnv builds a Config from ITIHAS_* environment variables,
// falling back to defaults for unset or unparsable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := env("ITIHAS_DEFAULT_LANGUAGE"); v != "" {
		if l, err := lang.Lookup(v); err == nil {
			cfg.DefaultLanguage = l.Code
		}
	}
	cfg.SearchLimit = envInt("ITIHAS_SEARCH_LIMIT", cfg.SearchLimit)
	cfg.MinSentenceWords = envInt("ITIHAS_MIN_SENTENCE_WORDS", cfg.MinSentenceWords)
	cfg.QuestionCount = envInt("ITIHAS_QUESTION_COUNT", cfg.QuestionCount)
	cfg.MinSentences = envInt("ITIHAS_MIN_SENTENCES", cfg.MinSentences)
	cfg.RequestTimeout = envDuration("ITIHAS_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.CacheTTL = envDuration("ITIHAS_CACHE_TTL", cfg.CacheTTL)

	if v := env("ITIHAS_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	} else if v := env("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := env("ITIHAS_TRANSLATOR"); v != "" {
		cfg.Translator = strings.ToLower(v)
	}
	if v := env("ITIHAS_SPEECH"); v != "" {
		cfg.Speech = strings.ToLower(v)
	}
	if v := env("ITIHAS_OPENAI_API_KEY"); v != "" {
		cfg.OpenAIKey = v
	} else if v := env("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIKey = v
	}
	if v := env("ITIHAS_WIKIPEDIA_URL"); v != "" {
		cfg.WikipediaURL = v
	}
	if v := env("ITIHAS_LOG_MODE"); v != "" {
		cfg.LogMode = v
	}

	return cfg
}

// Validate checks limits and backend names.
func (c Config) Validate() error {
	if _, err := lang.Lookup(c.DefaultLanguage); err != nil {
		return fmt.Errorf("default language: %w", err)
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("search limit must be positive, got %d", c.SearchLimit)
	}
	if c.MinSentenceWords < 0 {
		return fmt.Errorf("min sentence words must not be negative, got %d", c.MinSentenceWords)
	}
	if c.QuestionCount <= 0 {
		return fmt.Errorf("question count must be positive, got %d", c.QuestionCount)
	}
	if c.MinSentences < 2 {
		return fmt.Errorf("min sentences must be at least 2, got %d", c.MinSentences)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	switch c.Translator {
	case BackendGoogle, BackendLLM, BackendNone:
	default:
		return fmt.Errorf("unknown translator %q", c.Translator)
	}
	switch c.Speech {
	case BackendGoogle, BackendNone:
	case BackendOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("ITIHAS_OPENAI_API_KEY is required for the openai speech backend")
		}
	default:
		return fmt.Errorf("unknown speech backend %q", c.Speech)
	}
	if !strings.Contains(c.WikipediaURL, "{lang}") {
		return fmt.Errorf("wikipedia URL %q must contain a {lang} placeholder", c.WikipediaURL)
	}
	return nil
}

func env(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

func envInt(name string, def int) int {
	v := env(name)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func envDuration(name string, def time.Duration) time.Duration {
	v := env(name)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
