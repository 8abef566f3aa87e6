package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/itihas/internal/lang"
	"github.com/abhisek/itihas/internal/llm"
)

const systemPrompt = `You are a careful translator for an educational app for school children. Translate the text into the requested language. Keep names of people and places recognizable, keep the meaning exact, and do not add explanations.`

// LLMService translates with an LLM provider.
type LLMService struct {
	provider llm.Provider
}

// NewLLMService creates an LLM-backed translation service.
func NewLLMService(provider llm.Provider) *LLMService {
	return &LLMService{provider: provider}
}

type translationOutput struct {
	Translation string `json:"translation"`
}

type batchOutput struct {
	Translations []string `json:"translations"`
}

func (s *LLMService) Translate(ctx context.Context, text, target string) (string, error) {
	ctx = llm.WithTarget(llm.WithPurpose(ctx, llm.PurposeTranslate), target)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fmt.Sprintf("Target language: %s\n\nText:\n%s", lang.LabelFor(target), text)},
		},
		Schema:    llm.TranslationSchema,
		MaxTokens: 2048,
	}

	resp, err := s.generate(ctx, req)
	if err != nil {
		return "", err
	}

	var out translationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse translation: %w", err)
	}
	if strings.TrimSpace(out.Translation) == "" {
		return "", errors.New("empty translation")
	}
	return out.Translation, nil
}

func (s *LLMService) TranslateBatch(ctx context.Context, texts []string, target string) ([]string, error) {
	ctx = llm.WithTarget(llm.WithPurpose(ctx, llm.PurposeTranslateBatch), target)

	var b strings.Builder
	fmt.Fprintf(&b, "Target language: %s\n\nTranslate each numbered text and return the translations in the same order.\n", lang.LabelFor(target))
	for i, t := range texts {
		fmt.Fprintf(&b, "\n%d. %s", i+1, t)
	}

	resp, err := s.generate(ctx, llm.Request{
		System:    systemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: b.String()}},
		Schema:    llm.BatchTranslationSchema,
		MaxTokens: 4096,
	})
	if err != nil {
		return nil, err
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse batch translation: %w", err)
	}
	if len(out.Translations) != len(texts) {
		return nil, fmt.Errorf("batch translation returned %d texts, want %d", len(out.Translations), len(texts))
	}
	return out.Translations, nil
}

func (s *LLMService) generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM translate: %w", err)
	}
	if resp.StopReason == "max_tokens" {
		return nil, &llm.ErrMaxTokensExceeded{Content: resp.Content}
	}
	return resp, nil
}
