package speech

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// openAIInputLimit is the API's maximum input length in characters.
const openAIInputLimit = 4096

// OpenAITTS synthesizes speech with the OpenAI audio API. The model
// detects the language from the text, so lang is informational.
type OpenAITTS struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

// OpenAIConfig configures OpenAITTS.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // optional
	Voice   string // default "alloy"
}

// NewOpenAITTS creates an OpenAI speech synthesizer.
func NewOpenAITTS(cfg OpenAIConfig) (*OpenAITTS, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	voice := openai.VoiceAlloy
	if cfg.Voice != "" {
		voice = openai.SpeechVoice(cfg.Voice)
	}
	return &OpenAITTS{
		client: openai.NewClientWithConfig(config),
		model:  openai.TTSModel1,
		voice:  voice,
	}, nil
}

func (o *OpenAITTS) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if r := []rune(text); len(r) > openAIInputLimit {
		text = string(r[:openAIInputLimit])
	}

	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          o.model,
		Input:          text,
		Voice:          o.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech (%s): %w", lang, err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech audio: %w", err)
	}
	return data, nil
}
