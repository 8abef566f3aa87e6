package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/itihas/internal/router"
	"github.com/abhisek/itihas/internal/screen"
	"github.com/abhisek/itihas/internal/session"
	"github.com/abhisek/itihas/internal/store"
	"github.com/abhisek/itihas/internal/ui/layout"
	"github.com/abhisek/itihas/internal/ui/theme"
)

// detailLimit caps the dated attempts shown for an expanded topic.
const detailLimit = 20

type attemptsLoadedMsg struct {
	Topic    string
	Attempts []store.QuizResult
	Err      error
}

// HistoryScreen lists quiz scores per topic. Expanding a topic shows its
// dated attempts when results are persisted.
type HistoryScreen struct {
	svc      *screen.Services
	history  *session.ScoreHistory
	topics   []string
	selected int
	expanded map[string]bool
	attempts map[string][]store.QuizResult
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen from the learner's score history.
func New(svc *screen.Services) *HistoryScreen {
	h := svc.Learner.History()
	return &HistoryScreen{
		svc:      svc,
		history:  h,
		topics:   h.Topics(),
		expanded: make(map[string]bool),
		attempts: make(map[string][]store.QuizResult),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "Score History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.attempts[msg.Topic] = msg.Attempts
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.topics)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.topics) == 0 {
				return s, nil
			}
			topic := s.topics[s.selected]
			s.expanded[topic] = !s.expanded[topic]
			if s.expanded[topic] {
				return s, s.loadAttempts(topic)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadAttempts(topic string) tea.Cmd {
	repo := s.svc.Results
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		res, err := repo.History(context.Background(), topic, detailLimit)
		return attemptsLoadedMsg{Topic: topic, Attempts: res, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if len(s.topics) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Read a summary and take a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, topic := range s.topics {
		results := s.history.Results(topic)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %s", prefix, topic, strings.Join(results, " · "))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[topic] {
			b.WriteString(s.renderAttempts(topic, len(results), width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAttempts(topic string, count, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)

	attempts, ok := s.attempts[topic]
	if !ok || len(attempts) == 0 {
		line := fmt.Sprintf("    %d %s this run", count, plural(count, "attempt", "attempts"))
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(line)) + "\n"
	}

	var b strings.Builder
	for _, a := range attempts {
		line := fmt.Sprintf("    %s  %s", a.CompletedAt.Format("Jan 02, 2006 15:04"), a.Display())
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Secondary).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
