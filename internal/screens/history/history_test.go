package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/studytrack/tutor/internal/router"
	"github.com/studytrack/tutor/internal/store"
)

type fakeRepo struct {
	attempts     []store.Attempt
	answers      map[int64][]store.AnswerData
	answerCalls  int
	recentErr    error
	lastQueryOpt store.QueryOpts
}

func (f *fakeRepo) AppendAttempt(context.Context, store.AttemptData) (int64, error) {
	return 0, errors.New("not used")
}

func (f *fakeRepo) RecentAttempts(_ context.Context, opts store.QueryOpts) ([]store.Attempt, error) {
	f.lastQueryOpt = opts
	return f.attempts, f.recentErr
}

func (f *fakeRepo) AttemptAnswers(_ context.Context, id int64) ([]store.AnswerData, error) {
	f.answerCalls++
	return f.answers[id], nil
}

func testRepo() *fakeRepo {
	finished := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	return &fakeRepo{
		attempts: []store.Attempt{
			{ID: 2, AttemptData: store.AttemptData{Subject: "ADBMS", Correct: 3, Total: 3, ScorePercent: 100, BlendedScore: 50, FinishedAt: finished}},
			{ID: 1, AttemptData: store.AttemptData{Subject: "AI Tools", Correct: 1, Total: 3, ScorePercent: 33, BlendedScore: 16, FinishedAt: finished.Add(-time.Hour)}},
		},
		answers: map[int64][]store.AnswerData{
			2: {{Position: 0, Prompt: "What does SQL stand for?", Given: "Structured Query Language", Correct: true}},
			1: {{Position: 0, Prompt: "What does NLP stand for?", Given: "None", Expected: "Natural Language Processing"}},
		},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	s.Update(s.Init()())
}

func TestHistory_ListsAttempts(t *testing.T) {
	repo := testRepo()
	s := New(repo, nil)
	load(t, s)

	if repo.lastQueryOpt.Limit != pageSize {
		t.Errorf("Limit = %d, want %d", repo.lastQueryOpt.Limit, pageSize)
	}
	view := s.View(120, 30)
	for _, want := range []string{"ADBMS", "AI Tools", "3/3", "100%", "→ 16"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistory_ExpandLoadsAnswersOnce(t *testing.T) {
	repo := testRepo()
	s := New(repo, nil)
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected answers command")
	}
	if !strings.Contains(s.View(120, 30), "Loading answers") {
		t.Error("expected loading placeholder")
	}
	s.Update(cmd())

	view := s.View(120, 30)
	if !strings.Contains(view, "(answer: Natural Language Processing)") {
		t.Errorf("expected answer detail:\n%s", view)
	}

	// Collapse and expand again: cached.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("answers should be cached")
	}
	if repo.answerCalls != 1 {
		t.Errorf("answerCalls = %d", repo.answerCalls)
	}
}

func TestHistory_EmptyAndError(t *testing.T) {
	s := New(&fakeRepo{}, nil)
	load(t, s)
	if !strings.Contains(s.View(80, 24), "No quizzes yet") {
		t.Error("expected empty state")
	}

	s = New(&fakeRepo{recentErr: errors.New("disk on fire")}, nil)
	load(t, s)
	if !strings.Contains(s.View(80, 24), "disk on fire") {
		t.Error("expected error message")
	}
}

func TestHistory_EscPops(t *testing.T) {
	s := New(testRepo(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestHistory_FilterCyclesSubjects(t *testing.T) {
	repo := testRepo()
	s := New(repo, []string{"ADBMS", "AI Tools"})
	load(t, s)

	wantSubjects := []string{"ADBMS", "AI Tools", ""}
	for _, want := range wantSubjects {
		_, cmd := s.Update(tea.KeyPressMsg{Code: 'f', Text: "f"})
		if cmd == nil {
			t.Fatalf("filter %q: expected reload", want)
		}
		s.Update(cmd())
		if repo.lastQueryOpt.Subject != want {
			t.Errorf("queried subject %q, want %q", repo.lastQueryOpt.Subject, want)
		}
	}
	if !strings.Contains(s.View(120, 30), "All subjects") {
		t.Error("expected the filter to wrap back to all subjects")
	}
}

func TestHistory_StaleResultIgnored(t *testing.T) {
	repo := testRepo()
	s := New(repo, []string{"ADBMS"})
	stale := s.Init()

	s.Update(tea.KeyPressMsg{Code: 'f', Text: "f"})
	s.Update(stale())
	if s.loaded {
		t.Error("result for the old filter should be dropped")
	}
}
