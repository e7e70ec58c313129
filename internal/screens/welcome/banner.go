package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/caseguide/internal/ui/theme"
)

const bannerArt = `
  ██████╗ █████╗ ███████╗███████╗    ███████╗████████╗██╗   ██╗██████╗ ██╗   ██╗
 ██╔════╝██╔══██╗██╔════╝██╔════╝    ██╔════╝╚══██╔══╝██║   ██║██╔══██╗╚██╗ ██╔╝
 ██║     ███████║███████╗█████╗      ███████╗   ██║   ██║   ██║██║  ██║ ╚████╔╝
 ██║     ██╔══██║╚════██║██╔══╝      ╚════██║   ██║   ██║   ██║██║  ██║  ╚██╔╝
 ╚██████╗██║  ██║███████║███████╗    ███████║   ██║   ╚██████╔╝██████╔╝   ██║
  ╚═════╝╚═╝  ╚═╝╚══════╝╚══════╝    ╚══════╝   ╚═╝    ╚═════╝ ╚═════╝    ╚═╝`

const bannerCompact = "C A S E   S T U D Y"

// RenderBanner returns the banner styled in the primary color. Uses a
// compact fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < lipgloss.Width(bannerArt)+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
