package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// ErrAttachmentNotFound is returned when removing an unknown attachment.
var ErrAttachmentNotFound = errors.New("attachment not found")

// ErrUnsupportedAttachment is returned for files that are not study documents.
var ErrUnsupportedAttachment = errors.New("unsupported attachment type")

// AttachmentExtensions lists the accepted study file types.
var AttachmentExtensions = []string{".pdf", ".docx", ".pptx"}

// SupportedAttachment reports whether path has an accepted extension.
func SupportedAttachment(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range AttachmentExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// AddAttachment links a file to a subject. The path is stored absolute.
// Adding the same path to the same subject twice returns the existing entry.
func (s *Store) AddAttachment(ctx context.Context, subject, path string) (*Attachment, error) {
	if !SupportedAttachment(path) {
		return nil, fmt.Errorf("add attachment %q: %w", path, ErrUnsupportedAttachment)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve attachment path: %w", err)
	}

	existing, err := s.Attachments(ctx, subject)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		if a.Path == abs {
			return &a, nil
		}
	}

	att := &Attachment{
		ID:      uuid.NewString(),
		Subject: subject,
		Path:    abs,
		AddedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	query, args := builder().Insert(tableAttachments).
		Columns("id", "subject", "path", "added_at").
		Values(att.ID, att.Subject, att.Path, toMillis(att.AddedAt)).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("save attachment: %w", err)
	}
	return att, nil
}

// Attachments lists a subject's files in the order they were added.
// An empty subject lists every attachment.
func (s *Store) Attachments(ctx context.Context, subject string) ([]Attachment, error) {
	b := builder()
	sel := b.Select("id", "subject", "path", "added_at").From(b.Table(tableAttachments))
	if subject != "" {
		sel.Where(entsql.EQ("subject", subject))
	}
	query, args := sel.OrderBy("added_at", "rowid").Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attachments: %w", err)
	}
	defer rows.Close()

	var scanned []struct {
		ID      string `sql:"id"`
		Subject string `sql:"subject"`
		Path    string `sql:"path"`
		AddedAt int64  `sql:"added_at"`
	}
	if err := entsql.ScanSlice(rows, &scanned); err != nil {
		return nil, fmt.Errorf("scan attachments: %w", err)
	}
	out := make([]Attachment, len(scanned))
	for i, r := range scanned {
		out[i] = Attachment{ID: r.ID, Subject: r.Subject, Path: r.Path, AddedAt: fromMillis(r.AddedAt)}
	}
	return out, nil
}

// RemoveAttachment deletes an attachment record. The file itself is untouched.
func (s *Store) RemoveAttachment(ctx context.Context, id string) error {
	query, args := builder().Delete(tableAttachments).
		Where(entsql.EQ("id", id)).
		Query()
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("remove attachment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove attachment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("remove attachment %s: %w", id, ErrAttachmentNotFound)
	}
	return nil
}
