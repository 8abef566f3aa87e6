package screen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/lo"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/itihas/internal/lang"
	"github.com/abhisek/itihas/internal/logger"
	"github.com/abhisek/itihas/internal/pipeline"
	"github.com/abhisek/itihas/internal/session"
	"github.com/abhisek/itihas/internal/speech"
	"github.com/abhisek/itihas/internal/store"
	"github.com/abhisek/itihas/internal/story"
	"github.com/abhisek/itihas/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is an optional interface for screens that want to handle
// Esc themselves instead of being popped by the app.
type EscapeHandler interface {
	HandlesEscape() bool
}

// Engine is the content pipeline as seen by the screens.
type Engine interface {
	Candidates(ctx context.Context, topic string) ([]string, error)
	Summarize(ctx context.Context, title, language string) (*pipeline.SummaryResult, error)
	StartQuiz(ctx context.Context, l *session.Learner, title, language string) (*pipeline.QuizResult, error)
	Story(ctx context.Context, subject, epithet string, band story.AgeBand, language string) (*pipeline.StoryResult, error)
	Sloka(ctx context.Context, verse, language string) (*pipeline.SlokaResult, error)
}

var _ Engine = (*pipeline.Engine)(nil)

// Prefs holds the learner's interface preferences, shared by all screens.
type Prefs struct {
	mu       sync.RWMutex
	language lang.Language
}

// NewPrefs returns preferences starting in the given language.
func NewPrefs(l lang.Language) *Prefs {
	return &Prefs{language: l}
}

// Language returns the selected content language.
func (p *Prefs) Language() lang.Language {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.language
}

// SetLanguage changes the selected content language.
func (p *Prefs) SetLanguage(l lang.Language) {
	p.mu.Lock()
	p.language = l
	p.mu.Unlock()
}

// CycleLanguage advances to the next supported language and returns it.
func (p *Prefs) CycleLanguage() lang.Language {
	p.mu.Lock()
	defer p.mu.Unlock()
	all := lang.All()
	next := all[0]
	for i, l := range all {
		if l.Code == p.language.Code {
			next = all[(i+1)%len(all)]
			break
		}
	}
	p.language = next
	return next
}

// Services bundles what screens need to do their work. Results and
// AudioDir are optional.
type Services struct {
	Engine   Engine
	Prefs    *Prefs
	Learner  *session.Learner
	Results  store.ResultRepo
	AudioDir string
	Log      *logger.Logger
}

// SaveAudio writes a into AudioDir as "<name>-<lang>.mp3" and returns a
// line for the learner. It returns "" when there is nothing to save or
// no directory is configured.
func (s *Services) SaveAudio(name string, a *speech.Audio) string {
	if s == nil || s.AudioDir == "" || a == nil || len(a.Data) == 0 {
		return ""
	}
	if err := os.MkdirAll(s.AudioDir, 0o755); err != nil {
		return "Could not save audio: " + err.Error()
	}
	file := fmt.Sprintf("%s-%s.mp3", lo.KebabCase(name), a.Language)
	path := filepath.Join(s.AudioDir, file)
	if err := a.Save(path); err != nil {
		if s.Log != nil {
			s.Log.Warn("save audio failed", "path", path, "error", err)
		}
		return "Could not save audio: " + err.Error()
	}
	return "Audio saved to " + path
}
