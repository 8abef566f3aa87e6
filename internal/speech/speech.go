// Package speech turns narration text into MP3 audio. Speech is an
// enhancement: Narrator reports failures as warnings, never as errors.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/itihas/internal/apperr"
	"github.com/abhisek/itihas/internal/logger"
	"github.com/abhisek/itihas/internal/textproc"
)

// Synthesizer converts text in lang into MP3 bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// DefaultMaxChars caps narration length; longer text is cut.
const DefaultMaxChars = 500

// Audio is a synthesized narration.
type Audio struct {
	Data     []byte
	Language string
}

// Save writes the MP3 payload to path.
func (a *Audio) Save(path string) error {
	if a == nil || len(a.Data) == 0 {
		return errors.New("no audio to save")
	}
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return fmt.Errorf("save audio: %w", err)
	}
	return nil
}

// Narrator prepares text for speech and calls a Synthesizer.
type Narrator struct {
	synth    Synthesizer
	timeout  time.Duration
	maxChars int
	log      *logger.Logger
}

// NewNarrator creates a Narrator. A nil Synthesizer disables audio.
func NewNarrator(synth Synthesizer, timeout time.Duration, log *logger.Logger) *Narrator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Narrator{synth: synth, timeout: timeout, maxChars: DefaultMaxChars, log: log}
}

// Enabled reports whether a synthesizer is configured.
func (n *Narrator) Enabled() bool {
	return n != nil && n.synth != nil
}

// Narrate strips markup, normalizes and caps text, then synthesizes it in
// lang. It returns nil audio with a warning on failure, and nil audio with
// no warning when there is nothing to say or speech is disabled.
func (n *Narrator) Narrate(ctx context.Context, text, lang string) (*Audio, string) {
	if !n.Enabled() {
		return nil, ""
	}
	text = PrepareText(text, n.maxChars)
	if text == "" {
		return nil, ""
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	data, err := n.synth.Synthesize(ctx, text, lang)
	if err == nil && len(data) == 0 {
		err = errors.New("empty audio")
	}
	if err != nil {
		n.log.Warn("speech synthesis failed", "lang", lang, "err", err)
		terr := &apperr.ErrTransientService{Service: "speech service", Err: err}
		return nil, terr.Error()
	}
	return &Audio{Data: data, Language: lang}, ""
}

// PrepareText strips tags, normalizes whitespace and keeps at most
// maxChars characters.
func PrepareText(text string, maxChars int) string {
	text = textproc.Normalize(textproc.StripTags(text))
	r := []rune(text)
	if maxChars > 0 && len(r) > maxChars {
		text = strings.TrimSpace(string(r[:maxChars]))
	}
	return text
}
