package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/itihas/internal/router"
	"github.com/abhisek/itihas/internal/screen"
	"github.com/abhisek/itihas/internal/session"
	"github.com/abhisek/itihas/internal/ui/layout"
	"github.com/abhisek/itihas/internal/ui/theme"
)

// SummaryScreen displays the result of a finished quiz.
type SummaryScreen struct {
	svc     *screen.Services
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(svc *screen.Services, summary session.Summary) *SummaryScreen {
	return &SummaryScreen{svc: svc, summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			// The result is already in the history; clear the finished
			// session so the next quiz can start.
			_ = s.svc.Learner.Reset()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered("Quiz complete!", width, theme.Primary))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(sum.Topic, width, theme.Secondary))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Score: %s        Accuracy: %.0f%%", sum.Result, sum.Accuracy*100)
	b.WriteString(layout.Centered(statsLine, width, theme.Text))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(verdict(sum), width, verdictColor(sum)))
	b.WriteString("\n\n")

	// Previous attempts on the same topic.
	results := s.svc.Learner.History().Results(sum.Topic)
	if len(results) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", max(min(width-8, 60), 0)))
		b.WriteString(layout.Centered("Your scores on this topic", width, theme.TextDim))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		b.WriteString(layout.Centered(strings.Join(results, "  ·  "), width, theme.Text))
		b.WriteString("\n")
	}

	return b.String()
}

func verdict(sum session.Summary) string {
	switch {
	case sum.Total > 0 && sum.Score == sum.Total:
		return "Perfect score! A true historian."
	case sum.Accuracy >= 0.5:
		return "Well done! Read the summary again to master the rest."
	default:
		return "Keep going! Every story is worth a second read."
	}
}

func verdictColor(sum session.Summary) color.Color {
	switch {
	case sum.Total > 0 && sum.Score == sum.Total:
		return theme.Accent
	case sum.Accuracy >= 0.5:
		return theme.Success
	default:
		return theme.Warning
	}
}
