package quiz

import (
	qz "github.com/studytrack/tutor/internal/quiz"
	"github.com/studytrack/tutor/internal/scores"
)

// scoresLoadedMsg carries the score file read on entry.
type scoresLoadedMsg struct {
	Scores scores.Scores
	Err    error
}

// startQuizMsg is sent when a subject is picked.
type startQuizMsg struct {
	Subject string
}

// finalizedMsg reports the outcome of writing the score file.
type finalizedMsg struct {
	Result qz.Result
	Err    error
}
