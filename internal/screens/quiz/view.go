package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studytrack/tutor/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Loading scores...")
	case phasePick:
		return s.renderPick(width)
	case phaseSaving:
		return centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Saving your score...")
	case phaseSaveFailed:
		return centered(width, theme.ErrorText,
			fmt.Sprintf("\n\n  Could not save your score: %s\n\n  Press R to retry.", s.errMsg))
	}
	return s.renderQuestionView(width)
}

func centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

func (s *QuizScreen) renderPick(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Title, "Choose a subject"))
	b.WriteString("\n\n")

	if len(s.menu.Items) == 0 && s.errMsg == "" {
		b.WriteString(centered(width, theme.Hint, "No subjects available."))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.ErrorText, s.errMsg))
	}
	return b.String()
}

// renderQuestionView renders the active question and, after submit, the
// verdict.
func (s *QuizScreen) renderQuestionView(width int) string {
	answered, total := s.session.Progress()
	current := answered + 1
	if s.phase == phaseFeedback {
		current = answered
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  Subject: " + s.session.Subject())
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d",
			current, total,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.session.Correct(),
		))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(s.question.Prompt()))
	b.WriteString("\n\n")

	if s.question.IsMultipleChoice() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Answer: "+s.input.View()))
	}

	if s.phase == phaseFeedback {
		b.WriteString("\n\n")
		b.WriteString(s.renderVerdict(width))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.ErrorText, s.errMsg))
	}
	return b.String()
}

func (s *QuizScreen) renderVerdict(width int) string {
	if s.outcome.Correct {
		return centered(width, theme.Correct, "Correct!")
	}
	verdict := centered(width, theme.Incorrect, "Not quite.")
	answer := centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
		"The answer is: "+s.outcome.Expected)
	return verdict + "\n" + answer
}
