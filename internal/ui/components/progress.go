package components

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studytrack/tutor/internal/ui/theme"
)

// ProgressBar is a horizontal bar for a ratio in [0, 1]. Out-of-range
// ratios are clamped.
type ProgressBar struct {
	Label       string
	Ratio       float64
	ShowPercent bool
	Width       int

	// Fill colors the filled segment; nil uses the secondary color.
	Fill color.Color
}

func NewProgressBar(label string, ratio float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Ratio:       ratio,
		ShowPercent: showPercent,
		Width:       width,
	}
}

func (p ProgressBar) View() string {
	ratio := min(max(p.Ratio, 0), 1)

	var label, pct string
	if p.Label != "" {
		label = theme.Body.Render(p.Label) + "  "
	}
	if p.ShowPercent {
		pct = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf(" %3d%%", int(math.Round(ratio*100))))
	}

	track := max(p.Width-lipgloss.Width(label)-lipgloss.Width(pct), 4)
	filled := int(float64(track) * ratio)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}

	return label +
		lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", track-filled)) +
		pct
}
