package components

import (
	"charm.land/lipgloss/v2"

	"github.com/studytrack/tutor/internal/ui/theme"
)

// Content width bounds shared by every section inside the cabinet frame.
const (
	minContentWidth = 20
	maxContentWidth = 60

	// frameChrome is the double border plus inner padding.
	frameChrome = 6
)

// ContentWidth returns the inner width for sections drawn inside a
// CabinetFrame of frameWidth, so stacked boxes line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-frameChrome, minContentWidth), maxContentWidth)
}

// CabinetFrame draws a double border around content and centers it in
// width x height.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeButton renders a fixed-width rounded button; the selected one is
// filled with the accent color.
func ArcadeButton(label string, selected bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	if !selected {
		return style.
			Foreground(theme.Text).
			BorderForeground(theme.Border).
			Render(label)
	}
	return style.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Accent).
		BorderForeground(theme.Accent).
		Render("▸ " + label)
}
