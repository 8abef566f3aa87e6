package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/itihas/internal/ui/theme"
)

const bannerArt = `
 ██╗████████╗██╗██╗  ██╗ █████╗ ███████╗
 ██║╚══██╔══╝██║██║  ██║██╔══██╗██╔════╝
 ██║   ██║   ██║███████║███████║███████╗
 ██║   ██║   ██║██╔══██║██╔══██║╚════██║
 ██║   ██║   ██║██║  ██║██║  ██║███████║
 ╚═╝   ╚═╝   ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝`

const bannerCompact = "I T I H A S"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 42

// RenderBanner returns the ITIHAS banner styled in the primary color.
// Uses a compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
