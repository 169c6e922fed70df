package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tutor.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.AppendAttempt(ctx, AttemptData{SessionID: "a", Subject: "ADBMS", Total: 3}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.RecentAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d attempts after reopen, want 1", len(got))
	}
}

func TestAppendAttemptAndAnswers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	finished := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	id, err := s.AppendAttempt(ctx, AttemptData{
		SessionID:     "sess-1",
		Subject:       "Python Programming",
		Correct:       1,
		Total:         3,
		ScorePercent:  33,
		BlendedScore:  16,
		AttemptsAfter: 1,
		StartedAt:     finished.Add(-time.Minute),
		FinishedAt:    finished,
		Answers: []AnswerData{
			{Position: 0, Prompt: "Comment symbol?", Given: " # ", Expected: "#", Correct: true},
			{Position: 1, Prompt: "Keyword for function?", Given: "func", Expected: "def", Correct: false},
			{Position: 2, Prompt: "Output of 2**3?", Given: "6", Expected: "8", Correct: false},
		},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	attempts, err := s.RecentAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("got %d attempts, want 1", len(attempts))
	}
	a := attempts[0]
	if a.ID != id || a.SessionID != "sess-1" || a.ScorePercent != 33 || a.BlendedScore != 16 || a.AttemptsAfter != 1 {
		t.Errorf("unexpected attempt: %+v", a)
	}
	if !a.FinishedAt.Equal(finished) {
		t.Errorf("FinishedAt = %v, want %v", a.FinishedAt, finished)
	}

	answers, err := s.AttemptAnswers(ctx, id)
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	if len(answers) != 3 {
		t.Fatalf("got %d answers, want 3", len(answers))
	}
	if !answers[0].Correct || answers[1].Correct || answers[1].Given != "func" {
		t.Errorf("unexpected answers: %+v", answers)
	}
}

func TestRecentAttemptsFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	subjects := []string{"ADBMS", "AI Tools", "ADBMS", "ADBMS"}
	for i, subj := range subjects {
		_, err := s.AppendAttempt(ctx, AttemptData{
			SessionID:  subj,
			Subject:    subj,
			Total:      3,
			FinishedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	tests := []struct {
		name string
		opts QueryOpts
		want int
	}{
		{"all", QueryOpts{}, 4},
		{"subject", QueryOpts{Subject: "ADBMS"}, 3},
		{"limit", QueryOpts{Subject: "ADBMS", Limit: 2}, 2},
		{"from", QueryOpts{From: base.Add(2 * time.Hour)}, 2},
		{"to", QueryOpts{To: base.Add(time.Hour)}, 2},
		{"unknown subject", QueryOpts{Subject: "Chemistry"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.RecentAttempts(ctx, tt.opts)
			if err != nil {
				t.Fatalf("recent: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d attempts, want %d", len(got), tt.want)
			}
		})
	}

	latest, err := s.RecentAttempts(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if !latest[0].FinishedAt.Equal(base.Add(3 * time.Hour)) {
		t.Errorf("newest attempt finished at %v, want %v", latest[0].FinishedAt, base.Add(3*time.Hour))
	}
}

func TestSequenceIsShared(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.AppendAttempt(ctx, AttemptData{Subject: "ADBMS", Total: 1}); err != nil {
		t.Fatalf("append attempt: %v", err)
	}
	if err := s.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "coach", Success: true}); err != nil {
		t.Fatalf("append llm: %v", err)
	}
	if _, err := s.AppendAttempt(ctx, AttemptData{Subject: "ADBMS", Total: 1}); err != nil {
		t.Fatalf("append attempt: %v", err)
	}

	attempts, err := s.RecentAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	seqs := map[int64]bool{}
	for _, a := range attempts {
		seqs[a.Sequence] = true
	}
	if !seqs[1] || !seqs[3] {
		t.Errorf("attempt sequences = %v, want 1 and 3", seqs)
	}

	var llmSeq int64
	if err := s.DB().QueryRow("SELECT sequence FROM llm_requests").Scan(&llmSeq); err != nil {
		t.Fatalf("query llm sequence: %v", err)
	}
	if llmSeq != 2 {
		t.Errorf("llm request sequence = %d, want 2", llmSeq)
	}
}

func TestFailedAppendReleasesSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	dup := []AnswerData{{Position: 1, Prompt: "a"}, {Position: 1, Prompt: "b"}}
	if _, err := s.AppendAttempt(ctx, AttemptData{Subject: "ADBMS", Total: 2, Answers: dup}); err == nil {
		t.Fatal("expected duplicate answer positions to fail")
	}
	if _, err := s.AppendAttempt(ctx, AttemptData{Subject: "ADBMS", Total: 1}); err != nil {
		t.Fatalf("append attempt: %v", err)
	}

	attempts, err := s.RecentAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(attempts) != 1 || attempts[0].Sequence != 1 {
		t.Fatalf("attempts = %+v, want one with sequence 1", attempts)
	}
}

func TestAttachments(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	notes, err := s.AddAttachment(ctx, "ADBMS", filepath.Join(dir, "notes.pdf"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddAttachment(ctx, "ADBMS", filepath.Join(dir, "slides.PPTX")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddAttachment(ctx, "AI Tools", filepath.Join(dir, "intro.docx")); err != nil {
		t.Fatalf("add: %v", err)
	}

	again, err := s.AddAttachment(ctx, "ADBMS", filepath.Join(dir, "notes.pdf"))
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if again.ID != notes.ID {
		t.Errorf("re-adding returned id %s, want %s", again.ID, notes.ID)
	}

	list, err := s.Attachments(ctx, "ADBMS")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != notes.ID {
		t.Fatalf("unexpected ADBMS attachments: %+v", list)
	}

	all, err := s.Attachments(ctx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d attachments, want 3", len(all))
	}

	if err := s.RemoveAttachment(ctx, notes.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.RemoveAttachment(ctx, notes.ID); !errors.Is(err, ErrAttachmentNotFound) {
		t.Errorf("second remove err = %v, want ErrAttachmentNotFound", err)
	}

	list, err = s.Attachments(ctx, "ADBMS")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("got %d attachments after remove, want 1", len(list))
	}
}

func TestAddAttachmentRejectsUnsupported(t *testing.T) {
	s := openTestStore(t)
	_, err := s.AddAttachment(context.Background(), "ADBMS", "notes.txt")
	if !errors.Is(err, ErrUnsupportedAttachment) {
		t.Errorf("err = %v, want ErrUnsupportedAttachment", err)
	}
}

func TestLLMEventQueries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "mock", Model: "m1", Purpose: "coach", InputTokens: 100, OutputTokens: 40, LatencyMs: 200, Success: true},
		{Provider: "mock", Model: "m1", Purpose: "coach", InputTokens: 50, OutputTokens: 0, LatencyMs: 100, ErrorMessage: "timeout"},
		{Provider: "mock", Model: "m2", Purpose: "other", InputTokens: 10, OutputTokens: 5, LatencyMs: 30, Success: true},
	}
	for _, e := range events {
		if err := s.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	recent, err := s.RecentLLMEvents(ctx, "coach", 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 coach events, got %d", len(recent))
	}
	if recent[0].ErrorMessage != "timeout" || recent[0].Success {
		t.Errorf("expected newest event first, got %+v", recent[0])
	}
	if recent[0].Timestamp.IsZero() {
		t.Error("expected timestamp")
	}

	limited, err := s.RecentLLMEvents(ctx, "", 1)
	if err != nil {
		t.Fatalf("recent limited: %v", err)
	}
	if len(limited) != 1 || limited[0].Purpose != "other" {
		t.Errorf("expected the latest event only, got %+v", limited)
	}

	usage, err := s.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(usage))
	}
	coach := usage[0]
	if coach.Purpose != "coach" || coach.Calls != 2 || coach.Failures != 1 {
		t.Errorf("unexpected coach usage %+v", coach)
	}
	if coach.InputTokens != 150 || coach.OutputTokens != 40 || coach.AvgLatencyMs != 150 {
		t.Errorf("unexpected coach totals %+v", coach)
	}
}

func TestClearAttemptsCascadesAnswers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var adbmsID int64
	for _, subj := range []string{"ADBMS", "AI Tools", "ADBMS"} {
		id, err := s.AppendAttempt(ctx, AttemptData{
			SessionID: subj,
			Subject:   subj,
			Total:     1,
			Answers:   []AnswerData{{Position: 0, Prompt: "q", Given: "a", Expected: "a", Correct: true}},
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if subj == "ADBMS" {
			adbmsID = id
		}
	}

	n, err := s.ClearAttempts(ctx, "ADBMS")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n != 2 {
		t.Errorf("cleared %d attempts, want 2", n)
	}

	answers, err := s.AttemptAnswers(ctx, adbmsID)
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	if len(answers) != 0 {
		t.Errorf("got %d orphaned answers, want 0", len(answers))
	}

	left, err := s.RecentAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(left) != 1 || left[0].Subject != "AI Tools" {
		t.Errorf("unexpected attempts after clear: %+v", left)
	}

	if n, err = s.ClearAttempts(ctx, ""); err != nil || n != 1 {
		t.Errorf("clear all = %d, %v; want 1, nil", n, err)
	}
}
