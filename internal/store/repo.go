package store

import (
	"context"
	"time"
)

// QueryOpts configures history queries with filtering and pagination.
type QueryOpts struct {
	Subject string    // exact subject match ("" = all)
	Limit   int       // max results (0 = unlimited)
	From    time.Time // finished_at >= From
	To      time.Time // finished_at <= To
}

// AnswerData is one graded answer within an attempt.
type AnswerData struct {
	Position int    `sql:"position"`
	Prompt   string `sql:"prompt"`
	Given    string `sql:"given"`
	Expected string `sql:"expected"`
	Correct  bool   `sql:"correct"`
}

// AttemptData captures a finalized quiz session.
type AttemptData struct {
	SessionID     string
	Subject       string
	Correct       int
	Total         int
	ScorePercent  int
	BlendedScore  int // subject score after the fold
	AttemptsAfter int // subject attempt count after the fold
	StartedAt     time.Time
	FinishedAt    time.Time
	Answers       []AnswerData
}

// Attempt is a stored attempt.
type Attempt struct {
	ID       int64
	Sequence int64
	AttemptData
}

// Attachment is a study file linked to a subject.
type Attachment struct {
	ID      string
	Subject string
	Path    string
	AddedAt time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string `sql:"provider"`
	Model        string `sql:"model"`
	Purpose      string `sql:"purpose"`
	InputTokens  int    `sql:"input_tokens"`
	OutputTokens int    `sql:"output_tokens"`
	LatencyMs    int64  `sql:"latency_ms"`
	Success      bool   `sql:"success"`
	ErrorMessage string `sql:"error_message"`
}

// HistoryRepo provides append and query access to quiz attempts.
type HistoryRepo interface {
	// AppendAttempt stores an attempt and its answers, returning the new ID.
	AppendAttempt(ctx context.Context, data AttemptData) (int64, error)

	// RecentAttempts returns attempts newest first, without answers.
	RecentAttempts(ctx context.Context, opts QueryOpts) ([]Attempt, error)

	// AttemptAnswers returns the answers of one attempt in asked order.
	AttemptAnswers(ctx context.Context, attemptID int64) ([]AnswerData, error)
}

// AttachmentRepo manages study files per subject.
type AttachmentRepo interface {
	AddAttachment(ctx context.Context, subject, path string) (*Attachment, error)
	Attachments(ctx context.Context, subject string) ([]Attachment, error)
	RemoveAttachment(ctx context.Context, id string) error
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// Compile-time interface checks.
var (
	_ HistoryRepo    = (*Store)(nil)
	_ AttachmentRepo = (*Store)(nil)
	_ EventRepo      = (*Store)(nil)
)

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
