package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/studytrack/tutor/internal/advice"
)

// Color palette. The splash gradient runs from sky blue to slate.
var (
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	Highlight = lipgloss.Color("#ADD8E6") // Light blue
	Info      = lipgloss.Color("#22D3EE") // Cyan
)

// Tier colors match the knowledge graph: green, orange, red.
var (
	MasteryColor   = lipgloss.Color("#22C55E")
	CompetentColor = lipgloss.Color("#F97316")
	NoviceColor    = lipgloss.Color("#EF4444")
)

// TierColor returns the display color for a score tier.
func TierColor(t advice.Tier) color.Color {
	switch t {
	case advice.Mastery:
		return MasteryColor
	case advice.Competent:
		return CompetentColor
	default:
		return NoviceColor
	}
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
