package pipeline

import (
	"context"
	"fmt"

	"github.com/abhisek/itihas/internal/cache"
	"github.com/abhisek/itihas/internal/config"
	"github.com/abhisek/itihas/internal/knowledge"
	"github.com/abhisek/itihas/internal/llm"
	"github.com/abhisek/itihas/internal/logger"
	"github.com/abhisek/itihas/internal/speech"
	"github.com/abhisek/itihas/internal/translate"
)

// Build constructs the production backends selected by cfg and returns an
// Engine plus a cleanup function. llmCfg is only consulted when the "llm"
// translator is selected; recorder may be nil.
func Build(ctx context.Context, cfg config.Config, llmCfg llm.Config, recorder llm.EventRecorder, log *logger.Logger) (*Engine, func(), error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	wiki := knowledge.NewWikipedia(cfg.WikipediaURL, cfg.RequestTimeout)

	var c cache.Cache = cache.NewMemory(nil)
	if cfg.RedisAddr != "" {
		r, err := cache.NewRedis(cfg.RedisAddr, log)
		if err != nil {
			log.Warn("redis cache unavailable, using in-process cache", "addr", cfg.RedisAddr, "err", err)
		} else {
			c = r
			closers = append(closers, func() { _ = r.Close() })
		}
	}

	tr, err := buildTranslator(ctx, cfg, llmCfg, recorder, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	sp, err := buildSpeech(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	e := New(Deps{
		Config:     cfg,
		Source:     wiki,
		Cache:      c,
		Translator: tr,
		Speech:     sp,
		Images:     wiki,
		Log:        log,
	})
	return e, cleanup, nil
}

func buildTranslator(ctx context.Context, cfg config.Config, llmCfg llm.Config, recorder llm.EventRecorder, log *logger.Logger) (translate.Service, error) {
	switch cfg.Translator {
	case config.BackendGoogle:
		return translate.NewGoogleService("", cfg.RequestTimeout), nil
	case config.BackendLLM:
		p, err := llm.NewProvider(ctx, llmCfg, recorder, log.With("component", "llm"))
		if err != nil {
			return nil, fmt.Errorf("llm translator: %w", err)
		}
		return translate.NewLLMService(p), nil
	case config.BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown translator %q", cfg.Translator)
	}
}

func buildSpeech(cfg config.Config) (speech.Synthesizer, error) {
	switch cfg.Speech {
	case config.BackendGoogle:
		return speech.NewGoogleTTS("", cfg.RequestTimeout), nil
	case config.BackendOpenAI:
		s, err := speech.NewOpenAITTS(speech.OpenAIConfig{APIKey: cfg.OpenAIKey})
		if err != nil {
			return nil, fmt.Errorf("openai speech: %w", err)
		}
		return s, nil
	case config.BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown speech backend %q", cfg.Speech)
	}
}
