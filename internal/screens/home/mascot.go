package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/studytrack/tutor/internal/ui/theme"
)

// Mood is the study buddy's expression on the dashboard.
type Mood int

const (
	MoodReady   Mood = iota // nothing to report yet
	MoodProud               // at least one subject mastered
	MoodWorried             // a subject sits in the novice tier
)

// moodFor picks a mood from the dashboard stats. Novice subjects win over
// mastered ones so weak areas are never hidden.
func moodFor(st stats) Mood {
	switch {
	case st.novice > 0:
		return MoodWorried
	case st.mastered > 0:
		return MoodProud
	default:
		return MoodReady
	}
}

type face struct {
	eye     string // one cell, drawn on each page
	mouth   string // three cells, drawn across the spine
	crown   string // optional line above the book
	caption string
	fg      color.Color
}

var faces = map[Mood]face{
	MoodReady:   {eye: "•", mouth: "╰┴╯", caption: "Ready to study?", fg: theme.Primary},
	MoodProud:   {eye: "★", mouth: "╰▽╯", crown: "▁▄█▄▁", caption: "Mastered!", fg: theme.MasteryColor},
	MoodWorried: {eye: "◦", mouth: "╭┴╮", caption: "Time to review", fg: theme.NoviceColor},
}

// bookArt draws an open book with a face spread over its pages.
func bookArt(f face) string {
	rows := []string{
		"╭─────┬─────╮",
		"│  " + f.eye + "  │  " + f.eye + "  │",
		"│    " + f.mouth + "    │",
		"╰─────┴─────╯",
	}
	if f.crown != "" {
		rows = append([]string{f.crown}, rows...)
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

// RenderMascot returns the study buddy for mood with its caption below.
func RenderMascot(m Mood) string {
	f, ok := faces[m]
	if !ok {
		f = faces[MoodReady]
	}
	art := lipgloss.NewStyle().Foreground(f.fg).Render(bookArt(f))
	caption := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(f.caption)
	return lipgloss.JoinVertical(lipgloss.Center, art, caption)
}
