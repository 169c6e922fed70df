package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/studytrack/tutor/internal/advice"
	qz "github.com/studytrack/tutor/internal/quiz"
	"github.com/studytrack/tutor/internal/router"
	"github.com/studytrack/tutor/internal/scores"
)

func testResult() (qz.Result, []qz.Answer) {
	res := qz.Result{
		SessionID:    "s-1",
		Subject:      "ADBMS",
		Correct:      2,
		Total:        3,
		ScorePercent: 66,
		Tier:         advice.Competent,
		Record:       scores.Record{Score: 33, Attempts: 1},
	}
	answers := []qz.Answer{
		{Prompt: "What does SQL stand for?", Given: "Structured Query Language", Expected: "Structured Query Language", Correct: true},
		{Prompt: "Which normal form removes partial dependency?", Given: "1NF", Expected: "2NF"},
		{Prompt: "Name a NoSQL database.", Given: " ", Expected: "mongodb"},
	}
	return res, answers
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult())
	if s.Title() != "Quiz Complete" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Complete")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testResult())
	view := s.View(100, 30)

	for _, want := range []string{
		"Your Score: 66%",
		advice.Competent.Feedback(),
		"Correct: 2/3",
		"Subject score: 33",
		"Which normal form removes partial dependency?",
		"1NF",
		"2NF",
		"(blank)",
		"mongodb",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_NoAnswers(t *testing.T) {
	res, _ := testResult()
	view := New(res, nil).View(80, 24)
	if strings.Contains(view, "Your answer") {
		t.Error("answer section should be hidden without answers")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	tests := []struct {
		key  tea.KeyPressMsg
		want tea.Msg
	}{
		{tea.KeyPressMsg{Code: tea.KeyEnter}, router.PopToRootMsg{}},
		{tea.KeyPressMsg{Code: 'h', Text: "h"}, router.PopToRootMsg{}},
		{tea.KeyPressMsg{Code: tea.KeyEscape}, router.PopScreenMsg{}},
	}
	for _, tt := range tests {
		s := New(testResult())
		_, cmd := s.Update(tt.key)
		if cmd == nil {
			t.Fatalf("expected a command on %q", tt.key.String())
		}
		if got := cmd(); got != tt.want {
			t.Errorf("%q: got %T, want %T", tt.key.String(), got, tt.want)
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testResult())
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}
