package summary

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	qz "github.com/studytrack/tutor/internal/quiz"
	"github.com/studytrack/tutor/internal/router"
	"github.com/studytrack/tutor/internal/screen"
	"github.com/studytrack/tutor/internal/ui/components"
	"github.com/studytrack/tutor/internal/ui/layout"
	"github.com/studytrack/tutor/internal/ui/theme"
)

// SummaryScreen shows the result of a finished quiz.
type SummaryScreen struct {
	result  qz.Result
	answers []qz.Answer
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result qz.Result, answers []qz.Answer) *SummaryScreen {
	return &SummaryScreen{result: result, answers: answers}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "h":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	ratio := 0.0
	if res.Total > 0 {
		ratio = float64(res.Correct) / float64(res.Total)
	}
	bar := components.NewProgressBar(res.Subject, ratio, false, min(width-8, 50))
	bar.Fill = theme.TierColor(res.Tier)

	sections := []string{
		center.Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("Your Score: %d%%", res.ScorePercent)),
		center.Foreground(theme.TierColor(res.Tier)).Render(res.Tier.Feedback()),
		"",
		center.Render(bar.View()),
		center.Foreground(theme.Text).Render(fmt.Sprintf("Correct: %d/%d   ·   Subject score: %d   ·   Attempts: %d",
			res.Correct, res.Total, res.Record.Score, res.Record.Attempts)),
	}
	if len(s.answers) > 0 {
		sections = append(sections, "", lipgloss.PlaceHorizontal(width, lipgloss.Center, s.answerTable()))
	}
	return strings.Join(sections, "\n")
}

// answerTable reviews every question with the given and expected answer.
func (s *SummaryScreen) answerTable() string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("#", "Question", "Your answer", "Answer", "")

	for i, a := range s.answers {
		mark := "✓"
		if !a.Correct {
			mark = "✗"
		}
		t.Row(strconv.Itoa(i+1), a.Prompt, displayGiven(a.Given), a.Expected, mark)
	}

	answers := s.answers
	t.StyleFunc(func(row, col int) lipgloss.Style {
		cell := lipgloss.NewStyle().Padding(0, 1)
		switch {
		case row == table.HeaderRow:
			return cell.Foreground(theme.TextDim).Bold(true)
		case row < len(answers) && (col == 2 || col == 4):
			if answers[row].Correct {
				return cell.Foreground(theme.Success)
			}
			return cell.Foreground(theme.Error)
		default:
			return cell.Foreground(theme.Text)
		}
	})
	return t.Render()
}

func displayGiven(given string) string {
	if strings.TrimSpace(given) == "" {
		return "(blank)"
	}
	return given
}
