package quiz

import (
	"errors"

	"github.com/studytrack/tutor/internal/advice"
	"github.com/studytrack/tutor/internal/scores"
)

// State is the lifecycle phase of a session.
type State int

const (
	NotStarted State = iota // created, no subject chosen yet
	InProgress              // questions being answered
	Completed               // finalized and persisted
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case InProgress:
		return "in-progress"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidState is returned when a method is called out of sequence.
	ErrInvalidState = errors.New("invalid session state")

	// ErrUnknownSubject is returned by Start for a subject missing from the
	// question bank or the score mapping.
	ErrUnknownSubject = errors.New("unknown subject")

	// ErrEmptyQuestionSet is returned by Start for a subject with no questions.
	ErrEmptyQuestionSet = errors.New("subject has no questions")

	// ErrInvalidChoice is returned by SubmitChoice for an option index out of
	// range or a question without options.
	ErrInvalidChoice = errors.New("invalid choice")
)

// Answer is one graded submission.
type Answer struct {
	Prompt   string
	Given    string
	Expected string
	Correct  bool
}

// Outcome is the result of grading one submission.
type Outcome struct {
	Correct  bool
	Expected string

	// Done is true once every question has been answered; the caller should
	// then call Finalize.
	Done bool
}

// Result summarizes a finalized session.
type Result struct {
	SessionID    string
	Subject      string
	Correct      int
	Total        int
	ScorePercent int
	Tier         advice.Tier

	// Record is the subject's stored record after the fold.
	Record scores.Record
}

// Percent returns floor(100 * correct / total). total must be positive.
func Percent(correct, total int) int {
	return correct * scores.MaxScore / total
}
