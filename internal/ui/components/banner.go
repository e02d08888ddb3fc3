package components

import (
	"charm.land/lipgloss/v2"

	"github.com/wordloop/wordloop/internal/ui/theme"
)

const bannerArt = ` ██╗    ██╗ ██████╗ ██████╗ ██████╗ ██╗      ██████╗  ██████╗ ██████╗
 ██║    ██║██╔═══██╗██╔══██╗██╔══██╗██║     ██╔═══██╗██╔═══██╗██╔══██╗
 ██║ █╗ ██║██║   ██║██████╔╝██║  ██║██║     ██║   ██║██║   ██║██████╔╝
 ██║███╗██║██║   ██║██╔══██╗██║  ██║██║     ██║   ██║██║   ██║██╔═══╝
 ╚███╔███╔╝╚██████╔╝██║  ██║██████╔╝███████╗╚██████╔╝╚██████╔╝██║
  ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚══════╝ ╚═════╝  ╚═════╝ ╚═╝`

const bannerCompact = "W · O · R · D · L · O · O · P"

// BannerWidth is the column width of the full banner.
const BannerWidth = 70

// RenderBanner returns the block-letter title in the primary color, or a
// one-line fallback when width is narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < BannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
