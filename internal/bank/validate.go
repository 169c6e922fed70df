package bank

import (
	"fmt"
	"slices"
	"strings"
)

// validateSubjects performs all structural checks on the given subjects.
// Returns a combined error describing all problems found, or nil if valid.
// A subject with no questions is allowed; sessions refuse to start on it.
func validateSubjects(subjects []Subject) error {
	var errs []string

	if len(subjects) == 0 {
		errs = append(errs, "no subjects defined")
	}

	seen := make(map[string]bool, len(subjects))
	for _, s := range subjects {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, "subject with empty name")
			continue
		}
		if seen[s.Name] {
			errs = append(errs, fmt.Sprintf("duplicate subject: %q", s.Name))
		}
		seen[s.Name] = true

		for i, q := range s.Questions {
			prefix := fmt.Sprintf("subject %q question %d", s.Name, i+1)
			errs = append(errs, validateQuestion(prefix, q)...)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("question bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateQuestion(prefix string, q Question) []string {
	var errs []string

	if strings.TrimSpace(q.prompt) == "" {
		errs = append(errs, prefix+": empty prompt")
	}
	if strings.TrimSpace(q.answer) == "" {
		errs = append(errs, prefix+": empty answer")
	} else if strings.TrimSpace(q.answer) != q.answer {
		errs = append(errs, fmt.Sprintf("%s: answer %q has surrounding whitespace", prefix, q.answer))
	}

	switch q.kind {
	case KindMultipleChoice:
		if len(q.options) < 2 {
			errs = append(errs, fmt.Sprintf("%s: multiple choice needs at least 2 options, got %d", prefix, len(q.options)))
		}
		if !slices.Contains(q.options, q.answer) {
			errs = append(errs, fmt.Sprintf("%s: answer %q is not one of the options", prefix, q.answer))
		}
		dup := make(map[string]bool, len(q.options))
		for _, o := range q.options {
			key := strings.ToLower(strings.TrimSpace(o))
			if dup[key] {
				errs = append(errs, fmt.Sprintf("%s: duplicate option %q", prefix, o))
			}
			dup[key] = true
		}
	case KindFreeText:
	default:
		errs = append(errs, fmt.Sprintf("%s: unknown kind %q", prefix, q.kind))
	}

	return errs
}
