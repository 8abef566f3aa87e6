package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/itihas/internal/ui/components"
	"github.com/abhisek/itihas/internal/ui/layout"
	"github.com/abhisek/itihas/internal/ui/theme"
)

// renderQuestion renders the active question with a progress line.
func (s *QuizScreen) renderQuestion(width int) string {
	sess := s.svc.Learner.Session()

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + sess.Topic)

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			sess.Score,
		))

	infoLine := infoLeft
	if rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewStepProgress("Question", sess.CurrentIndex+1, sess.Total(), min(width-4, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if n := layout.Notices(s.warnings, width); n != "" {
		b.WriteString(n)
		b.WriteString("\n\n")
	}

	s.choice.Width = min(width-8, 76)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	b.WriteString("\n")
	b.WriteString(layout.Centered("Select (1-4) or use arrows + Enter", width, theme.TextDim))

	return b.String()
}

// renderFeedback shows the revealed options and the verdict.
func (s *QuizScreen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n")

	if s.feedback.Correct {
		b.WriteString(layout.Centered("Correct!", width, theme.Success))
	} else {
		b.WriteString(layout.Centered("Not quite", width, theme.Error))
		b.WriteString("\n")
		b.WriteString(layout.Wrapped("Correct answer: "+s.feedback.CorrectAnswer, width, 76, theme.Hint))
	}
	b.WriteString("\n\n")

	s.choice.Width = min(width-8, 76)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	b.WriteString("\n")

	if s.feedback.Completed {
		b.WriteString(layout.Centered(fmt.Sprintf("Quiz complete! You scored %s.", s.feedback.Result), width, theme.Accent))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Centered("Press any key to continue...", width, theme.TextDim))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered("Leave this quiz?", width, theme.Text))
	b.WriteString("\n")
	b.WriteString(layout.Centered("Unfinished quizzes are not scored.", width, theme.TextDim))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered("[Y] Yes, leave", width, theme.Success))
	b.WriteString("\n")
	b.WriteString(layout.Centered("[N] No, keep going", width, theme.Primary))
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return "\n\n\n" + layout.Centered("Writing your quiz...", width, theme.TextDim)
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return "\n\n\n" + layout.Wrapped(errMsg, width, 70, theme.Incorrect) +
		"\n\n" + layout.Centered("Press any key to go back.", width, theme.TextDim)
}
