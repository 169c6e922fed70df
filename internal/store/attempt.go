package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var attemptColumns = []string{
	"id", "sequence", "session_id", "subject", "correct", "total",
	"score_percent", "blended_score", "attempts_after", "started_at", "finished_at",
}

func (s *Store) AppendAttempt(ctx context.Context, data AttemptData) (id int64, err error) {
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		id, err = insertAttempt(ctx, tx, data)
		return err
	})
	return id, err
}

func insertAttempt(ctx context.Context, tx *sql.Tx, data AttemptData) (int64, error) {
	seqNum, err := nextSequence(ctx, tx)
	if err != nil {
		return 0, err
	}

	query, args := builder().Insert(tableAttempts).
		Columns(attemptColumns[1:]...).
		Values(seqNum, data.SessionID, data.Subject, data.Correct, data.Total,
			data.ScorePercent, data.BlendedScore, data.AttemptsAfter,
			toMillis(data.StartedAt), toMillis(data.FinishedAt)).
		Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("save attempt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("attempt id: %w", err)
	}

	if len(data.Answers) > 0 {
		ins := builder().Insert(tableAnswers).
			Columns("attempt_id", "position", "prompt", "given", "expected", "correct")
		for _, a := range data.Answers {
			ins.Values(id, a.Position, a.Prompt, a.Given, a.Expected, a.Correct)
		}
		query, args := ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("save answers: %w", err)
		}
	}

	return id, nil
}

func (s *Store) RecentAttempts(ctx context.Context, opts QueryOpts) ([]Attempt, error) {
	b := builder()
	sel := b.Select(attemptColumns...).From(b.Table(tableAttempts))

	var preds []*entsql.Predicate
	if opts.Subject != "" {
		preds = append(preds, entsql.EQ("subject", opts.Subject))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("finished_at", toMillis(opts.From)))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("finished_at", toMillis(opts.To)))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc("finished_at"), entsql.Desc("id"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var scanned []attemptRow
	if err := entsql.ScanSlice(rows, &scanned); err != nil {
		return nil, fmt.Errorf("scan attempts: %w", err)
	}
	out := make([]Attempt, len(scanned))
	for i, r := range scanned {
		out[i] = r.attempt()
	}
	return out, nil
}

func (s *Store) AttemptAnswers(ctx context.Context, attemptID int64) ([]AnswerData, error) {
	b := builder()
	query, args := b.Select("position", "prompt", "given", "expected", "correct").
		From(b.Table(tableAnswers)).
		Where(entsql.EQ("attempt_id", attemptID)).
		OrderBy(entsql.Asc("position")).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerData
	if err := entsql.ScanSlice(rows, &out); err != nil {
		return nil, fmt.Errorf("scan answers: %w", err)
	}
	return out, nil
}

// attemptRow mirrors the attempts table for entsql.ScanSlice.
type attemptRow struct {
	ID            int64  `sql:"id"`
	Sequence      int64  `sql:"sequence"`
	SessionID     string `sql:"session_id"`
	Subject       string `sql:"subject"`
	Correct       int    `sql:"correct"`
	Total         int    `sql:"total"`
	ScorePercent  int    `sql:"score_percent"`
	BlendedScore  int    `sql:"blended_score"`
	AttemptsAfter int    `sql:"attempts_after"`
	StartedAt     int64  `sql:"started_at"`
	FinishedAt    int64  `sql:"finished_at"`
}

func (r attemptRow) attempt() Attempt {
	return Attempt{
		ID:       r.ID,
		Sequence: r.Sequence,
		AttemptData: AttemptData{
			SessionID:     r.SessionID,
			Subject:       r.Subject,
			Correct:       r.Correct,
			Total:         r.Total,
			ScorePercent:  r.ScorePercent,
			BlendedScore:  r.BlendedScore,
			AttemptsAfter: r.AttemptsAfter,
			StartedAt:     fromMillis(r.StartedAt),
			FinishedAt:    fromMillis(r.FinishedAt),
		},
	}
}

// ClearAttempts deletes the stored attempts of one subject, or of every
// subject when subject is empty. Answers go with their attempts.
func (s *Store) ClearAttempts(ctx context.Context, subject string) (int64, error) {
	del := builder().Delete(tableAttempts)
	if subject != "" {
		del.Where(entsql.EQ("subject", subject))
	}
	query, args := del.Query()
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear attempts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear attempts: %w", err)
	}
	return n, nil
}
