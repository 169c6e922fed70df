// Package history lists finished quiz attempts, newest first, with their
// graded answers loaded on demand.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studytrack/tutor/internal/advice"
	"github.com/studytrack/tutor/internal/router"
	"github.com/studytrack/tutor/internal/screen"
	"github.com/studytrack/tutor/internal/store"
	"github.com/studytrack/tutor/internal/ui/layout"
	"github.com/studytrack/tutor/internal/ui/theme"
)

// pageSize bounds how many attempts are fetched per filter.
const pageSize = 50

type attemptsMsg struct {
	subject  string
	attempts []store.Attempt
	err      error
}

type answersMsg struct {
	attemptID int64
	answers   []store.AnswerData
	err       error
}

type HistoryScreen struct {
	repo     store.HistoryRepo
	subjects []string

	// filter indexes subjects; -1 shows every subject.
	filter int

	attempts []store.Attempt
	answers  map[int64][]store.AnswerData
	open     map[int64]bool
	cursor   int
	offset   int
	loaded   bool
	errMsg   string
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

// New lists attempts from repo. subjects are the values the filter key
// cycles through.
func New(repo store.HistoryRepo, subjects []string) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		subjects: subjects,
		filter:   -1,
		answers:  make(map[int64][]store.AnswerData),
		open:     make(map[int64]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd { return s.fetch() }

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Answers"},
	}
	if len(s.subjects) > 0 {
		hints = append(hints, layout.KeyHint{Key: "f", Description: "Filter"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *HistoryScreen) subject() string {
	if s.filter < 0 || s.filter >= len(s.subjects) {
		return ""
	}
	return s.subjects[s.filter]
}

func (s *HistoryScreen) fetch() tea.Cmd {
	repo, subject := s.repo, s.subject()
	return func() tea.Msg {
		attempts, err := repo.RecentAttempts(context.Background(), store.QueryOpts{Subject: subject, Limit: pageSize})
		return attemptsMsg{subject: subject, attempts: attempts, err: err}
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsMsg:
		if msg.subject != s.subject() {
			return s, nil // stale result from an earlier filter
		}
		s.loaded = true
		s.errMsg = ""
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		}
		s.attempts = msg.attempts
		s.cursor, s.offset = 0, 0
		return s, nil

	case answersMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.answers[msg.attemptID] = msg.answers
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(key string) tea.Cmd {
	switch key {
	case "esc":
		return func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = max(min(s.cursor+1, len(s.attempts)-1), 0)
	case "f", "tab":
		if len(s.subjects) == 0 {
			return nil
		}
		s.filter++
		if s.filter >= len(s.subjects) {
			s.filter = -1
		}
		s.loaded = false
		return s.fetch()
	case "enter":
		if s.cursor >= len(s.attempts) {
			return nil
		}
		id := s.attempts[s.cursor].ID
		s.open[id] = !s.open[id]
		if _, cached := s.answers[id]; cached || !s.open[id] {
			return nil
		}
		repo := s.repo
		return func() tea.Msg {
			answers, err := repo.AttemptAnswers(context.Background(), id)
			return answersMsg{attemptID: id, answers: answers, err: err}
		}
	}
	return nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	dim := center.Foreground(theme.TextDim)

	scope := "All subjects"
	if sub := s.subject(); sub != "" {
		scope = sub
	}
	head := dim.Render(scope)

	switch {
	case s.errMsg != "":
		return head + "\n\n" + center.Foreground(theme.Error).Render("Error: "+s.errMsg)
	case !s.loaded:
		return head + "\n\n" + dim.Render("Loading history...")
	case len(s.attempts) == 0:
		return head + "\n\n" + dim.Italic(true).Render("No quizzes yet. Take one from the home screen!")
	}

	var rows []string
	cursorRow := 0
	for i, a := range s.attempts {
		if i == s.cursor {
			cursorRow = len(rows)
		}
		rows = append(rows, s.renderAttempt(a, i == s.cursor))
		if s.open[a.ID] {
			rows = append(rows, s.renderAnswers(a.ID)...)
		}
	}

	visible := max(height-2, 1)
	if cursorRow < s.offset {
		s.offset = cursorRow
	} else if cursorRow >= s.offset+visible {
		s.offset = cursorRow - visible + 1
	}
	end := min(s.offset+visible, len(rows))

	out := make([]string, 0, end-s.offset)
	for _, r := range rows[s.offset:end] {
		out = append(out, lipgloss.PlaceHorizontal(width, lipgloss.Center, r))
	}
	return head + "\n\n" + strings.Join(out, "\n")
}

func (s *HistoryScreen) renderAttempt(a store.Attempt, selected bool) string {
	marker := "  "
	style := lipgloss.NewStyle().Foreground(theme.TierColor(advice.TierFor(a.ScorePercent)))
	if selected {
		marker = "▸ "
		style = style.Bold(true)
	}
	return style.Render(fmt.Sprintf("%s%s  %-20s  %d/%d  %3d%%  → %d",
		marker, a.FinishedAt.Local().Format("Jan 02 2006 15:04"),
		a.Subject, a.Correct, a.Total, a.ScorePercent, a.BlendedScore))
}

func (s *HistoryScreen) renderAnswers(id int64) []string {
	note := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	answers, ok := s.answers[id]
	switch {
	case !ok:
		return []string{note.Render("    Loading answers...")}
	case len(answers) == 0:
		return []string{note.Render("    No answers recorded")}
	}

	lines := make([]string, len(answers))
	for i, ans := range answers {
		if ans.Correct {
			lines[i] = theme.Correct.Render(fmt.Sprintf("    ✓ %s  %s", ans.Prompt, ans.Given))
			continue
		}
		lines[i] = theme.Incorrect.Render(fmt.Sprintf("    ✗ %s  %s (answer: %s)", ans.Prompt, ans.Given, ans.Expected))
	}
	return lines
}
