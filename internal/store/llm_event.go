package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// LLMEvent is a stored LLM request.
type LLMEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM requests for one purpose.
type LLMUsage struct {
	Purpose      string `sql:"purpose"`
	Calls        int    `sql:"calls"`
	Failures     int    `sql:"failures"`
	InputTokens  int    `sql:"input_tokens"`
	OutputTokens int    `sql:"output_tokens"`
	AvgLatencyMs int64  `sql:"avg_latency_ms"`
}

func (s *Store) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		seqNum, err := nextSequence(ctx, tx)
		if err != nil {
			return err
		}

		query, args := builder().Insert(tableLLMRequests).
			Columns("sequence", "provider", "model", "purpose", "input_tokens",
				"output_tokens", "latency_ms", "success", "error_message", "created_at").
			Values(seqNum, data.Provider, data.Model, data.Purpose, data.InputTokens,
				data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
				time.Now().UnixMilli()).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save LLM request event: %w", err)
		}
		return nil
	})
}

// RecentLLMEvents returns LLM requests newest first, optionally filtered
// by purpose.
func (s *Store) RecentLLMEvents(ctx context.Context, purpose string, limit int) ([]LLMEvent, error) {
	b := builder()
	sel := b.Select("id", "sequence", "provider", "model", "purpose", "input_tokens",
		"output_tokens", "latency_ms", "success", "error_message", "created_at").
		From(b.Table(tableLLMRequests))
	if purpose != "" {
		sel.Where(entsql.EQ("purpose", purpose))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var scanned []struct {
		ID        int64 `sql:"id"`
		Sequence  int64 `sql:"sequence"`
		CreatedAt int64 `sql:"created_at"`
		LLMRequestEventData
	}
	if err := entsql.ScanSlice(rows, &scanned); err != nil {
		return nil, fmt.Errorf("scan LLM events: %w", err)
	}
	out := make([]LLMEvent, len(scanned))
	for i, r := range scanned {
		out[i] = LLMEvent{ID: r.ID, Sequence: r.Sequence, Timestamp: fromMillis(r.CreatedAt), LLMRequestEventData: r.LLMRequestEventData}
	}
	return out, nil
}

// LLMUsageByPurpose sums token usage per request purpose.
func (s *Store) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	b := builder()
	query, args := b.Select(
		"purpose",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As("COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0)", "failures"),
		entsql.As("COALESCE(SUM(input_tokens), 0)", "input_tokens"),
		entsql.As("COALESCE(SUM(output_tokens), 0)", "output_tokens"),
		entsql.As("CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)", "avg_latency_ms"),
	).
		From(b.Table(tableLLMRequests)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsage
	if err := entsql.ScanSlice(rows, &out); err != nil {
		return nil, fmt.Errorf("scan LLM usage: %w", err)
	}
	return out, nil
}
