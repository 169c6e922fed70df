package bank

import (
	"fmt"
	"slices"
)

// Bank is the static catalog of subjects and their questions.
// It is immutable once built.
type Bank struct {
	subjects []Subject
	byName   map[string]int
}

// New validates the subjects and builds a Bank preserving their order.
func New(subjects []Subject) (*Bank, error) {
	if err := validateSubjects(subjects); err != nil {
		return nil, err
	}

	b := &Bank{
		subjects: make([]Subject, len(subjects)),
		byName:   make(map[string]int, len(subjects)),
	}
	for i, s := range subjects {
		b.subjects[i] = Subject{Name: s.Name, Questions: slices.Clone(s.Questions)}
		b.byName[s.Name] = i
	}
	return b, nil
}

// Builtin returns the built-in catalog.
func Builtin() *Bank {
	b, err := New(builtinSubjects())
	if err != nil {
		// The seed is static; a failure here is a programming error.
		panic(fmt.Sprintf("builtin bank: %v", err))
	}
	return b
}

// Names returns subject names in catalog order.
func (b *Bank) Names() []string {
	names := make([]string, len(b.subjects))
	for i, s := range b.subjects {
		names[i] = s.Name
	}
	return names
}

// Has reports whether the bank knows the subject.
func (b *Bank) Has(name string) bool {
	_, ok := b.byName[name]
	return ok
}

// Questions returns a copy of the subject's questions in catalog order.
func (b *Bank) Questions(name string) ([]Question, error) {
	i, ok := b.byName[name]
	if !ok {
		return nil, fmt.Errorf("subject not found: %q", name)
	}
	return slices.Clone(b.subjects[i].Questions), nil
}

// Subjects returns a copy of every subject in catalog order.
func (b *Bank) Subjects() []Subject {
	out := make([]Subject, len(b.subjects))
	for i, s := range b.subjects {
		out[i] = Subject{Name: s.Name, Questions: slices.Clone(s.Questions)}
	}
	return out
}
