// Package layout draws the chrome around every screen: a status header,
// a key hint footer and the "terminal too small" notice.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studytrack/tutor/internal/ui/theme"
)

// Smallest terminal the screens are laid out for.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("Terminal too small\n\nneed %d x %d, have %d x %d", MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Accent).Align(lipgloss.Center).Render(body))
}

// RenderHeader draws the app name on the left, the screen title in the
// middle and the running average and quiz count on the right.
func RenderHeader(title string, average, quizzes, width int) string {
	inner := max(width-4, 0)

	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Tutor")
	stats := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("avg %d%%", average)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(" · ") +
		lipgloss.NewStyle().Foreground(theme.Info).Render(quizCount(quizzes))

	side := max(lipgloss.Width(brand), lipgloss.Width(stats))
	middle := max(inner-2*side, 0)

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(side).Render(brand),
		lipgloss.NewStyle().Width(middle).Align(lipgloss.Center).Foreground(theme.Text).Render(title),
		lipgloss.NewStyle().Width(side).Align(lipgloss.Right).Render(stats),
	)
	return bar(row, width)
}

// RenderFooter draws hints left to right, dropping those that do not fit.
// The last hint (normally Ctrl+C) is always kept.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	const sep = "   "

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}

	inner := max(width-4, 0)
	for len(parts) > 1 && lipgloss.Width(strings.Join(parts, sep)) > inner {
		parts = append(parts[:len(parts)-2], parts[len(parts)-1])
	}
	return bar(strings.Join(parts, sep), width)
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content),
		footer,
	)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

func quizCount(n int) string {
	if n == 1 {
		return "1 quiz"
	}
	return fmt.Sprintf("%d quizzes", n)
}
