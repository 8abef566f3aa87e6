package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/itihas/internal/ui/theme"
)

// MultiChoice is a single-selection list of options. It records the
// learner's choice; correctness is decided by the caller and shown with
// Reveal. Nothing is selected initially, so Enter does nothing until the
// learner picks an option.
type MultiChoice struct {
	Question     string
	Options      []string
	Selected     int // -1 until an option is picked
	NeedsPick    bool
	Submitted    bool
	ChosenIndex  int
	CorrectIndex int // -1 until revealed
	Width        int // wrap width for option text, 0 for none
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string, width int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		Selected:     -1,
		ChosenIndex:  -1,
		CorrectIndex: -1,
		Width:        width,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Number keys jump to
// an option; Enter submits the highlighted one, or sets NeedsPick when
// none is highlighted.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		} else if m.Selected < 0 && len(m.Options) > 0 {
			m.Selected = len(m.Options) - 1
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		if m.Selected < 0 || m.Selected >= len(m.Options) {
			m.NeedsPick = true
			return m, nil
		}
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
		}
	}
	if m.Selected >= 0 {
		m.NeedsPick = false
	}

	return m, nil
}

// Chosen returns the submitted option text, or "" before submission.
func (m MultiChoice) Chosen() string {
	if !m.Submitted || m.ChosenIndex < 0 || m.ChosenIndex >= len(m.Options) {
		return ""
	}
	return m.Options[m.ChosenIndex]
}

// Reveal marks which option was correct, for rendering feedback.
func (m *MultiChoice) Reveal(correct string) {
	for i, o := range m.Options {
		if o == correct {
			m.CorrectIndex = i
			return
		}
	}
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if m.Width > 0 {
		questionStyle = questionStyle.Width(m.Width)
	}
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		label := fmt.Sprintf("%s%c)  ", prefix, 'A'+i)
		style := lipgloss.NewStyle().Foreground(theme.Text)

		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = style.Foreground(theme.Success).Bold(true)
		case m.Submitted && i == m.ChosenIndex:
			style = style.Foreground(theme.Error).Bold(true)
		case m.Submitted:
			style = style.Foreground(theme.TextDim)
		case i == m.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		}

		optStyle := style
		if m.Width > 0 {
			optStyle = optStyle.Width(max(m.Width-lipgloss.Width(label), 10))
		}
		s += lipgloss.JoinHorizontal(lipgloss.Top, style.Render(label), optStyle.Render(opt)) + "\n"
	}

	if m.NeedsPick {
		s += "\n" + lipgloss.NewStyle().Foreground(theme.Warning).Render(
			fmt.Sprintf("Pick an option first (1-%d or ↑/↓).", len(m.Options))) + "\n"
	}

	return s
}

// IsCorrect returns true if the revealed answer is the chosen one.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.CorrectIndex >= 0 && m.ChosenIndex == m.CorrectIndex
}
