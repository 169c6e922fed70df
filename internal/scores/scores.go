package scores

import (
	"fmt"
	"slices"
	"sort"
)

// MaxScore is the upper bound of a subject score and an attempt percentage.
const MaxScore = 100

// Record is the persisted state of one subject.
type Record struct {
	Score    int `json:"score"`
	Attempts int `json:"attempts"`
}

// Scores maps subject name to its record.
type Scores map[string]Record

// Defaults returns a fresh mapping with a zero record for every subject.
func Defaults(subjects []string) Scores {
	sc := make(Scores, len(subjects))
	for _, s := range subjects {
		sc[s] = Record{}
	}
	return sc
}

// Blend folds a new attempt score into a running score. Each attempt carries
// the same weight as the whole prior history: floor((running + attempt) / 2).
func Blend(running, attempt int) int {
	return (running + attempt) / 2
}

// Fold applies a finished attempt to the subject's record and returns the
// updated record.
func (s Scores) Fold(subject string, percent int) (Record, error) {
	rec, ok := s[subject]
	if !ok {
		return Record{}, fmt.Errorf("no score record for subject %q", subject)
	}
	if percent < 0 || percent > MaxScore {
		return Record{}, fmt.Errorf("attempt score %d out of range [0, %d]", percent, MaxScore)
	}
	rec.Attempts++
	rec.Score = Blend(rec.Score, percent)
	s[subject] = rec
	return rec, nil
}

// Ensure adds zero records for subjects missing from the mapping.
// Returns true if anything was added.
func (s Scores) Ensure(subjects ...string) bool {
	changed := false
	for _, name := range subjects {
		if _, ok := s[name]; !ok {
			s[name] = Record{}
			changed = true
		}
	}
	return changed
}

// Has reports whether the mapping holds a record for subject.
func (s Scores) Has(subject string) bool {
	_, ok := s[subject]
	return ok
}

// Names returns all subject names sorted.
func (s Scores) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ordered returns subject names in the preferred order first, followed by any
// remaining subjects sorted by name.
func (s Scores) Ordered(preferred []string) []string {
	out := make([]string, 0, len(s))
	for _, name := range preferred {
		if s.Has(name) && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	for _, name := range s.Names() {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// Clone returns an independent copy of the mapping.
func (s Scores) Clone() Scores {
	out := make(Scores, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
