package bank

import "slices"

// Kind identifies how a question is answered.
type Kind string

const (
	// KindMultipleChoice questions present a fixed list of options.
	KindMultipleChoice Kind = "mcq"

	// KindFreeText questions accept typed input.
	KindFreeText Kind = "text"
)

// DisplayName returns a human-readable name for a kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindMultipleChoice:
		return "Multiple choice"
	case KindFreeText:
		return "Short answer"
	default:
		return string(k)
	}
}

// Question is a single immutable quiz question.
//
// Options is populated only for multiple-choice questions. Construct
// questions with MultipleChoice or FreeText so the variant stays consistent.
type Question struct {
	kind    Kind
	prompt  string
	answer  string
	options []string
}

// MultipleChoice builds a multiple-choice question. The answer must be the
// literal text of one of the options.
func MultipleChoice(prompt, answer string, options ...string) Question {
	return Question{
		kind:    KindMultipleChoice,
		prompt:  prompt,
		answer:  answer,
		options: slices.Clone(options),
	}
}

// FreeText builds a short-answer question.
func FreeText(prompt, answer string) Question {
	return Question{
		kind:   KindFreeText,
		prompt: prompt,
		answer: answer,
	}
}

// Kind returns the question variant.
func (q Question) Kind() Kind { return q.kind }

// Prompt returns the question text shown to the learner.
func (q Question) Prompt() string { return q.prompt }

// Answer returns the expected answer.
func (q Question) Answer() string { return q.answer }

// Options returns a copy of the multiple-choice options, nil for free-text.
func (q Question) Options() []string {
	if q.kind != KindMultipleChoice {
		return nil
	}
	return slices.Clone(q.options)
}

// IsMultipleChoice reports whether the question presents options.
func (q Question) IsMultipleChoice() bool {
	return q.kind == KindMultipleChoice
}

// Subject is a named topic area with its ordered question list.
type Subject struct {
	Name      string
	Questions []Question
}
