package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names shared by the query builders.
const (
	tableAttempts    = "attempts"
	tableAnswers     = "answers"
	tableAttachments = "attachments"
	tableLLMRequests = "llm_requests"
	tableSequences   = "sequences"
)

// History schema. Timestamps are unix milliseconds.
var (
	attemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "session_id", Type: field.TypeString},
		{Name: "subject", Type: field.TypeString},
		{Name: "correct", Type: field.TypeInt},
		{Name: "total", Type: field.TypeInt},
		{Name: "score_percent", Type: field.TypeInt},
		{Name: "blended_score", Type: field.TypeInt},
		{Name: "attempts_after", Type: field.TypeInt},
		{Name: "started_at", Type: field.TypeInt64},
		{Name: "finished_at", Type: field.TypeInt64},
	}
	attemptsTable = &schema.Table{
		Name:       tableAttempts,
		Columns:    attemptsColumns,
		PrimaryKey: []*schema.Column{attemptsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "attempts_subject", Columns: []*schema.Column{attemptsColumns[3], attemptsColumns[10]}},
		},
	}

	answersColumns = []*schema.Column{
		{Name: "attempt_id", Type: field.TypeInt64},
		{Name: "position", Type: field.TypeInt},
		{Name: "prompt", Type: field.TypeString},
		{Name: "given", Type: field.TypeString},
		{Name: "expected", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
	}
	answersTable = &schema.Table{
		Name:       tableAnswers,
		Columns:    answersColumns,
		PrimaryKey: []*schema.Column{answersColumns[0], answersColumns[1]},
		ForeignKeys: []*schema.ForeignKey{{
			Symbol:     "answers_attempts_answers",
			Columns:    []*schema.Column{answersColumns[0]},
			RefColumns: []*schema.Column{attemptsColumns[0]},
			OnDelete:   schema.Cascade,
		}},
	}

	attachmentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "subject", Type: field.TypeString},
		{Name: "path", Type: field.TypeString},
		{Name: "added_at", Type: field.TypeInt64},
	}
	attachmentsTable = &schema.Table{
		Name:       tableAttachments,
		Columns:    attachmentsColumns,
		PrimaryKey: []*schema.Column{attachmentsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "attachments_subject_path", Unique: true, Columns: []*schema.Column{attachmentsColumns[1], attachmentsColumns[2]}},
		},
	}

	llmRequestsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeInt64},
	}
	llmRequestsTable = &schema.Table{
		Name:       tableLLMRequests,
		Columns:    llmRequestsColumns,
		PrimaryKey: []*schema.Column{llmRequestsColumns[0]},
	}

	sequencesColumns = []*schema.Column{
		{Name: "name", Type: field.TypeString},
		{Name: "next_val", Type: field.TypeInt64},
	}
	sequencesTable = &schema.Table{
		Name:       tableSequences,
		Columns:    sequencesColumns,
		PrimaryKey: []*schema.Column{sequencesColumns[0]},
	}

	tables = []*schema.Table{attemptsTable, answersTable, attachmentsTable, llmRequestsTable, sequencesTable}
)

func init() {
	answersTable.ForeignKeys[0].RefTable = attemptsTable
}

// migrate brings the database up to the schema above and seeds the event
// sequence.
func migrate(ctx context.Context, db *sql.DB) error {
	m, err := schema.NewMigrate(entsql.OpenDB(dialect.SQLite, db))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	query, args := builder().Insert(tableSequences).
		Columns("name", "next_val").
		Values(eventSequence, 1).
		OnConflict(entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed sequence: %w", err)
	}
	return nil
}
