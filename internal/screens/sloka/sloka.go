package sloka

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/itihas/internal/apperr"
	"github.com/abhisek/itihas/internal/lang"
	"github.com/abhisek/itihas/internal/pipeline"
	"github.com/abhisek/itihas/internal/screen"
	"github.com/abhisek/itihas/internal/ui/components"
	"github.com/abhisek/itihas/internal/ui/layout"
	"github.com/abhisek/itihas/internal/ui/theme"
)

type step int

const (
	stepInput step = iota
	stepLoading
	stepResult
	stepError
)

type slokaMsg struct {
	Result *pipeline.SlokaResult
	Err    error
}

// SlokaScreen translates a verse into the learner's language and saves
// its recitation and meaning audio.
type SlokaScreen struct {
	svc    *screen.Services
	step   step
	input  components.TextInput
	result *pipeline.SlokaResult
	notes  []string
	errMsg string
}

var _ screen.Screen = (*SlokaScreen)(nil)
var _ screen.KeyHintProvider = (*SlokaScreen)(nil)

// New creates a new SlokaScreen.
func New(svc *screen.Services) *SlokaScreen {
	return &SlokaScreen{
		svc:   svc,
		input: components.NewTextInput("Paste a sloka, e.g. वसुधैव कुटुम्बकम्", 500),
	}
}

func (s *SlokaScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SlokaScreen) Title() string {
	return "Sloka Translator"
}

func (s *SlokaScreen) KeyHints() []layout.KeyHint {
	if s.step == stepResult || s.step == stepError {
		return []layout.KeyHint{
			{Key: "N", Description: "New verse"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Translate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SlokaScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case slokaMsg:
		if msg.Err != nil {
			if s.svc.Log != nil {
				s.svc.Log.Warn("sloka failed", "error", msg.Err)
			}
			s.errMsg = apperr.UserMessage(msg.Err)
			s.step = stepError
			return s, nil
		}
		s.result = msg.Result
		s.notes = nil
		for _, n := range []string{
			s.svc.SaveAudio("sloka recitation", msg.Result.Pronunciation),
			s.svc.SaveAudio("sloka meaning", msg.Result.MeaningAudio),
		} {
			if n != "" {
				s.notes = append(s.notes, n)
			}
		}
		s.step = stepResult
		return s, nil

	case tea.KeyMsg:
		switch s.step {
		case stepInput:
			if msg.String() == "enter" {
				verse := strings.TrimSpace(s.input.Value())
				if verse == "" {
					return s, nil
				}
				s.step = stepLoading
				return s, s.translate(verse)
			}
		case stepResult, stepError:
			if k := msg.String(); k == "n" || k == "N" {
				s.step = stepInput
				s.input.Reset()
				s.result = nil
				s.notes = nil
				s.errMsg = ""
				return s, s.input.Init()
			}
			return s, nil
		default:
			return s, nil
		}
	}

	if s.step == stepInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SlokaScreen) translate(verse string) tea.Cmd {
	eng := s.svc.Engine
	code := s.svc.Prefs.Language().Code
	return func() tea.Msg {
		res, err := eng.Sloka(context.Background(), verse, code)
		return slokaMsg{Result: res, Err: err}
	}
}

func (s *SlokaScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	switch s.step {
	case stepInput:
		b.WriteString(layout.Centered("Enter a sloka to learn its meaning", width, theme.Text))
		b.WriteString("\n")
		b.WriteString(layout.Centered(fmt.Sprintf("Meaning in %s", s.svc.Prefs.Language().Label), width, theme.TextDim))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(s.input.View(), width, theme.Text))

	case stepLoading:
		b.WriteString(layout.Centered("Translating...", width, theme.TextDim))

	case stepResult:
		res := s.result
		b.WriteString(layout.Wrapped(res.Verse, width, 70, theme.Quote))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(fmt.Sprintf("Meaning in %s", lang.LabelFor(res.Language)), width, theme.Primary))
		b.WriteString("\n")
		b.WriteString(layout.Wrapped(res.Meaning, width, 70, theme.Body))
		b.WriteString("\n\n")
		if n := layout.Notices(res.Warnings, width); n != "" {
			b.WriteString(n)
			b.WriteString("\n")
		}
		for _, n := range s.notes {
			b.WriteString(layout.Centered("🎧 "+n, width, theme.Secondary))
			b.WriteString("\n")
		}

	case stepError:
		b.WriteString(layout.Wrapped(s.errMsg, width, 70, theme.Incorrect))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered("Press N to try another verse.", width, theme.TextDim))
	}
	return b.String()
}
