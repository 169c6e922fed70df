package welcome

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studytrack/tutor/internal/ui/theme"
)

const bannerArt = `
 ████████╗██╗   ██╗████████╗ ██████╗ ██████╗
 ╚══██╔══╝██║   ██║╚══██╔══╝██╔═══██╗██╔══██╗
    ██║   ██║   ██║   ██║   ██║   ██║██████╔╝
    ██║   ██║   ██║   ██║   ██║   ██║██╔══██╗
    ██║   ╚██████╔╝   ██║   ╚██████╔╝██║  ██║
    ╚═╝    ╚═════╝    ╚═╝    ╚═════╝ ╚═╝  ╚═╝`

const bannerCompact = "T U T O R"

// RenderBanner returns the banner with each line shaded along a light-blue
// gradient. Uses a compact fallback for terminals narrower than 48 columns.
func RenderBanner(width int) string {
	if width < 48 {
		return lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(bannerCompact)
	}

	lines := strings.Split(strings.TrimPrefix(bannerArt, "\n"), "\n")
	for i, line := range lines {
		lines[i] = lipgloss.NewStyle().
			Foreground(gradient(i, len(lines))).
			Bold(true).
			Render(line)
	}
	return strings.Join(lines, "\n")
}

// gradient steps the green channel down from light blue (173,216,230).
func gradient(step, steps int) color.Color {
	g := 216 - step*60/max(steps, 1)
	return color.RGBA{R: 173, G: uint8(g), B: 230, A: 255}
}
