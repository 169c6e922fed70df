package scores

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2/maybe"
	"go.uber.org/zap"

	"github.com/studytrack/tutor/internal/schema"
)

// StorageError reports a backing file that exists but cannot be read,
// parsed or validated. There is no automatic repair.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("score file %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// fileSchema constrains the score file: an object keyed by subject whose
// values carry an integer score in [0, 100] and a non-negative attempt count.
var fileSchema = schema.Definition{
	Name: "score-file",
	Document: map[string]any{
		"type": "object",
		"additionalProperties": map[string]any{
			"type":     "object",
			"required": []string{"score", "attempts"},
			"properties": map[string]any{
				"score":    map[string]any{"type": "integer", "minimum": 0, "maximum": MaxScore},
				"attempts": map[string]any{"type": "integer", "minimum": 0},
			},
		},
	},
}

// Store loads and saves the score mapping to a JSON file.
// It is the sole writer of that file. Not safe for concurrent use.
type Store struct {
	path     string
	defaults []string
	log      *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore creates a Store for the file at path. defaults lists the subjects
// written on first run.
func NewStore(path string, defaults []string, opts ...Option) *Store {
	s := &Store{
		path:     path,
		defaults: append([]string(nil), defaults...),
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file. When the file does not exist, a default
// mapping is written and returned.
func (s *Store) Load() (Scores, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		sc := Defaults(s.defaults)
		if err := s.Save(sc); err != nil {
			return nil, err
		}
		s.log.Info("created score file", zap.String("path", s.path), zap.Int("subjects", len(sc)))
		return sc, nil
	}
	if err != nil {
		return nil, &StorageError{Path: s.path, Err: err}
	}

	if err := schema.Validate(fileSchema, raw); err != nil {
		return nil, &StorageError{Path: s.path, Err: err}
	}

	var sc Scores
	if err := json.Unmarshal(raw, &sc); err != nil {
		return nil, &StorageError{Path: s.path, Err: fmt.Errorf("decode: %w", err)}
	}

	s.log.Debug("loaded score file", zap.String("path", s.path), zap.Int("subjects", len(sc)))
	return sc, nil
}

// Save overwrites the backing file with sc. On unix the write is a synced
// temp file renamed into place, so readers never see a partial document.
func (s *Store) Save(sc Scores) error {
	if sc == nil {
		sc = Scores{}
	}
	data, err := json.MarshalIndent(sc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create score dir: %w", err)
	}
	if err := maybe.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("replace score file: %w", err)
	}

	s.log.Debug("saved score file", zap.String("path", s.path))
	return nil
}
