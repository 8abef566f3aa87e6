package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/itihas/internal/logger"
)

// NewProvider creates a Provider from configuration, wrapped with the
// per-request timeout and, when recorder is non-nil, event logging.
func NewProvider(ctx context.Context, cfg Config, recorder EventRecorder, log *logger.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller -> timeout -> logging -> base
	p := base
	if recorder != nil {
		p = WithLogging(p, recorder, log)
	}
	return WithTimeout(p, cfg.Timeout), nil
}
