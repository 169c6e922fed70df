package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studytrack/tutor/internal/ui/components"
	"github.com/studytrack/tutor/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const arcadeTitleFull = `████████╗██╗   ██╗████████╗ ██████╗ ██████╗
╚══██╔══╝██║   ██║╚══██╔══╝██╔═══██╗██╔══██╗
   ██║   ██║   ██║   ██║   ██║   ██║██████╔╝
   ██║   ██║   ██║   ██║   ██║   ██║██╔══██╗
   ██║   ╚██████╔╝   ██║   ╚██████╔╝██║  ██║
   ╚═╝    ╚═════╝    ╚═╝    ╚═════╝ ╚═╝  ╚═╝`

const arcadeTitleCompact = "T · U · T · O · R"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := arcadeTitleFull
	if compact {
		art = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(st stats, cw int, compact bool) string {
	masteredStyle := lipgloss.NewStyle().Foreground(theme.MasteryColor).Bold(true)
	avgStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	quizStyle := lipgloss.NewStyle().Foreground(theme.Info).Bold(true)

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			masteredStyle.Render(fmt.Sprintf("★%d", st.mastered)),
			avgStyle.Render(fmt.Sprintf("%d%%", st.average)),
			quizStyle.Render(fmt.Sprintf("✎%d", st.quizzes)),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			masteredStyle.Render(fmt.Sprintf("★ %d MASTERED", st.mastered)),
			avgStyle.Render(fmt.Sprintf("%d%% AVG", st.average)),
			quizStyle.Render(fmt.Sprintf("✎ %d QUIZZES", st.quizzes)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	buttons := make([]string, len(items))
	for i, label := range items {
		buttons[i] = components.ArcadeButton(label, i == selected, buttonWidth)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	lines := make([]string, len(items))
	for i, label := range items {
		if i == selected {
			lines[i] = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(" ▸ " + label + " ")
			continue
		}
		lines[i] = lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("   " + label)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderWarning renders a one-line warning, such as an unreadable score file.
func renderWarning(msg string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + msg)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(m Mood, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(m))
}
