package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/itihas/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const titleFull = ` ██╗████████╗██╗██╗  ██╗ █████╗ ███████╗
 ██║╚══██╔══╝██║██║  ██║██╔══██╗██╔════╝
 ██║   ██║   ██║███████║███████║███████╗
 ██║   ██║   ██║██╔══██║██╔══██║╚════██║
 ██║   ██║   ██║██║  ██║██║  ██║███████║
 ╚═╝   ╚═╝   ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝`

const titleCompact = "I · T · I · H · A · S"

// contentWidth returns the uniform inner width used for all sections.
// All boxes are rendered at this width so they visually align.
func contentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the language and progress counters in a bordered
// box matching content width.
func renderStatsBar(language string, quizzes, topics, cw int, compact bool) string {
	langStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	quizStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	topicStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			langStyle.Render("文 "+language),
			quizStyle.Render(fmt.Sprintf("✓%d", quizzes)),
			topicStyle.Render(fmt.Sprintf("◆%d", topics)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			langStyle.Render("文 "+strings.ToUpper(language)),
			quizStyle.Render(fmt.Sprintf("✓ %d QUIZZES", quizzes)),
			topicStyle.Render(fmt.Sprintf("◆ %d TOPICS", topics)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as simple text lines for small
// terminals where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderFrame wraps content in a double-border frame, centering it
// vertically and horizontally within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
