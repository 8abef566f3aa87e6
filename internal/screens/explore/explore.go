package explore

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/itihas/internal/apperr"
	"github.com/abhisek/itihas/internal/lang"
	"github.com/abhisek/itihas/internal/pipeline"
	"github.com/abhisek/itihas/internal/router"
	"github.com/abhisek/itihas/internal/screen"
	"github.com/abhisek/itihas/internal/screens/quiz"
	"github.com/abhisek/itihas/internal/ui/components"
	"github.com/abhisek/itihas/internal/ui/layout"
	"github.com/abhisek/itihas/internal/ui/theme"
)

type step int

const (
	stepInput step = iota
	stepSearching
	stepCandidates
	stepFetching
	stepSummary
	stepError
)

type candidatesMsg struct {
	Titles []string
	Err    error
}

type summaryMsg struct {
	Result *pipeline.SummaryResult
	Err    error
}

// ExploreScreen takes a topic, lets the learner pick an article and shows
// its summary. From the summary the learner can start a quiz.
type ExploreScreen struct {
	svc        *screen.Services
	step       step
	input      components.TextInput
	candidates components.Menu
	summary    *pipeline.SummaryResult
	audioNote  string
	errMsg     string
}

var _ screen.Screen = (*ExploreScreen)(nil)
var _ screen.KeyHintProvider = (*ExploreScreen)(nil)

// New creates a new ExploreScreen.
func New(svc *screen.Services) *ExploreScreen {
	return &ExploreScreen{
		svc:   svc,
		input: components.NewTextInput("Enter a topic, e.g. Ashoka", 120),
	}
}

func (s *ExploreScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ExploreScreen) Title() string {
	return "Summary & Quiz"
}

func (s *ExploreScreen) KeyHints() []layout.KeyHint {
	switch s.step {
	case stepCandidates:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Read"},
			{Key: "Esc", Description: "Back"},
		}
	case stepSummary:
		return []layout.KeyHint{
			{Key: "Q", Description: "Take quiz"},
			{Key: "N", Description: "New topic"},
			{Key: "Esc", Description: "Back"},
		}
	case stepError:
		return []layout.KeyHint{
			{Key: "any key", Description: "Try again"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Search"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ExploreScreen) language() lang.Language {
	return s.svc.Prefs.Language()
}

func (s *ExploreScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case candidatesMsg:
		return s.handleCandidates(msg)
	case summaryMsg:
		return s.handleSummary(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.step == stepInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ExploreScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.step {
	case stepInput:
		if key == "enter" {
			topic := strings.TrimSpace(s.input.Value())
			if topic == "" {
				return s, nil
			}
			s.step = stepSearching
			return s, s.search(topic)
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case stepCandidates:
		var cmd tea.Cmd
		s.candidates, cmd = s.candidates.Update(msg)
		return s, cmd

	case stepSummary:
		switch key {
		case "q", "Q":
			title := s.summary.Title
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: quiz.New(s.svc, title)}
			}
		case "n", "N":
			s.restart()
			return s, s.input.Init()
		}

	case stepError:
		s.restart()
		return s, s.input.Init()
	}
	return s, nil
}

func (s *ExploreScreen) restart() {
	s.step = stepInput
	s.input.Reset()
	s.summary = nil
	s.audioNote = ""
	s.errMsg = ""
}

func (s *ExploreScreen) search(topic string) tea.Cmd {
	eng := s.svc.Engine
	return func() tea.Msg {
		titles, err := eng.Candidates(context.Background(), topic)
		return candidatesMsg{Titles: titles, Err: err}
	}
}

func (s *ExploreScreen) fetch(title string) tea.Cmd {
	eng := s.svc.Engine
	code := s.language().Code
	return func() tea.Msg {
		res, err := eng.Summarize(context.Background(), title, code)
		return summaryMsg{Result: res, Err: err}
	}
}

func (s *ExploreScreen) handleCandidates(msg candidatesMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.fail(msg.Err)
		return s, nil
	}
	items := make([]components.MenuItem, len(msg.Titles))
	for i, title := range msg.Titles {
		items[i] = components.MenuItem{Label: title, Action: func() tea.Cmd {
			s.step = stepFetching
			return s.fetch(title)
		}}
	}
	s.candidates = components.NewMenu(items)
	s.step = stepCandidates
	return s, nil
}

func (s *ExploreScreen) handleSummary(msg summaryMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.fail(msg.Err)
		return s, nil
	}
	s.summary = msg.Result
	s.audioNote = s.svc.SaveAudio(msg.Result.Title, msg.Result.Audio)
	s.step = stepSummary
	return s, nil
}

func (s *ExploreScreen) fail(err error) {
	if s.svc.Log != nil {
		s.svc.Log.Warn("explore failed", "error", err)
	}
	s.errMsg = apperr.UserMessage(err)
	s.step = stepError
}

func (s *ExploreScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	switch s.step {
	case stepInput:
		b.WriteString(layout.Centered("What would you like to learn about?", width, theme.Text))
		b.WriteString("\n")
		b.WriteString(layout.Centered(fmt.Sprintf("Results in %s", s.language().Label), width, theme.TextDim))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(s.input.View(), width, theme.Text))

	case stepSearching:
		b.WriteString(layout.Centered("Searching the archives...", width, theme.TextDim))

	case stepCandidates:
		b.WriteString(layout.Centered("Select the article you want:", width, theme.Text))
		b.WriteString("\n\n")
		b.WriteString(s.candidates.View())

	case stepFetching:
		b.WriteString(layout.Centered("Fetching summary...", width, theme.TextDim))

	case stepSummary:
		b.WriteString(s.renderSummary(width))

	case stepError:
		b.WriteString(layout.Wrapped(s.errMsg, width, 70, theme.Incorrect))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered("Press any key to try another topic.", width, theme.TextDim))
	}

	return b.String()
}

func (s *ExploreScreen) renderSummary(width int) string {
	res := s.summary

	var b strings.Builder
	b.WriteString(layout.Centered(res.Title, width, theme.Primary))
	b.WriteString("\n")
	b.WriteString(layout.Centered(fmt.Sprintf("Summary in %s", lang.LabelFor(res.Requested)), width, theme.TextDim))
	b.WriteString("\n\n")
	b.WriteString(layout.Wrapped(res.Text, width, 76, theme.Body))
	b.WriteString("\n\n")

	if n := layout.Notices(res.Warnings, width); n != "" {
		b.WriteString(n)
		b.WriteString("\n")
	}
	if s.audioNote != "" {
		b.WriteString(layout.Centered(s.audioNote, width, theme.Secondary))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(layout.Centered("Press Q to test yourself with a quiz", width, theme.TextDim))
	return b.String()
}
