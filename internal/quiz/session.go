// Package quiz runs a single quiz attempt over one subject: it asks every
// question once in random order, grades answers and folds the final score
// into the score mapping.
package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studytrack/tutor/internal/advice"
	"github.com/studytrack/tutor/internal/bank"
	"github.com/studytrack/tutor/internal/scores"
	"github.com/studytrack/tutor/internal/store"
)

// Saver persists the score mapping.
type Saver interface {
	Save(sc scores.Scores) error
}

// Recorder receives finished attempts for the history log.
type Recorder interface {
	AppendAttempt(ctx context.Context, data store.AttemptData) (int64, error)
}

// recordTimeout bounds the history write after a finalize.
const recordTimeout = 5 * time.Second

// Option configures a Session.
type Option func(*Session)

// WithRecorder reports finalized attempts to r. Failures are logged only.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithRand sets the shuffle source.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session is one quiz attempt. It mutates the shared score mapping only in
// Finalize. Not safe for concurrent use.
type Session struct {
	id       string
	bank     *bank.Bank
	scores   scores.Scores
	saver    Saver
	recorder Recorder
	rng      *rand.Rand
	log      *zap.Logger
	now      func() time.Time

	state     State
	subject   string
	questions []bank.Question
	index     int
	correct   int
	answers   []Answer
	startedAt time.Time
}

// New creates a session over the bank and the loaded score mapping.
// saver is called once, from Finalize.
func New(b *bank.Bank, sc scores.Scores, saver Saver, opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		bank:   b,
		scores: sc,
		saver:  saver,
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Subject returns the subject chosen by Start.
func (s *Session) Subject() string { return s.subject }

// Progress returns the number of answered questions and the total.
func (s *Session) Progress() (answered, total int) {
	return s.index, len(s.questions)
}

// Correct returns the number of correct answers so far.
func (s *Session) Correct() int { return s.correct }

// Answers returns the graded submissions so far.
func (s *Session) Answers() []Answer {
	out := make([]Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool {
	return s.state == InProgress && s.index >= len(s.questions)
}

// Start picks the subject and shuffles all of its questions.
func (s *Session) Start(subject string) error {
	if s.state != NotStarted {
		return fmt.Errorf("start: %w: session is %s", ErrInvalidState, s.state)
	}
	if !s.bank.Has(subject) || !s.scores.Has(subject) {
		return fmt.Errorf("start %q: %w", subject, ErrUnknownSubject)
	}

	qs, err := s.bank.Questions(subject)
	if err != nil {
		return fmt.Errorf("start %q: %w", subject, err)
	}
	if len(qs) == 0 {
		return fmt.Errorf("start %q: %w", subject, ErrEmptyQuestionSet)
	}

	s.rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })

	s.subject = subject
	s.questions = qs
	s.index = 0
	s.correct = 0
	s.answers = make([]Answer, 0, len(qs))
	s.startedAt = s.now()
	s.state = InProgress

	s.log.Info("quiz started",
		zap.String("session_id", s.id),
		zap.String("subject", subject),
		zap.Int("questions", len(qs)))
	return nil
}

// CurrentQuestion returns the question awaiting an answer.
func (s *Session) CurrentQuestion() (bank.Question, error) {
	if s.state != InProgress {
		return bank.Question{}, fmt.Errorf("current question: %w: session is %s", ErrInvalidState, s.state)
	}
	if s.index >= len(s.questions) {
		return bank.Question{}, fmt.Errorf("current question: %w: all questions answered", ErrInvalidState)
	}
	return s.questions[s.index], nil
}

// SubmitAnswer grades raw against the current question and advances to the
// next one regardless of correctness.
func (s *Session) SubmitAnswer(raw string) (Outcome, error) {
	q, err := s.CurrentQuestion()
	if err != nil {
		return Outcome{}, fmt.Errorf("submit answer: %w", err)
	}

	correct := Match(raw, q.Answer())
	if correct {
		s.correct++
	}
	s.answers = append(s.answers, Answer{
		Prompt:   q.Prompt(),
		Given:    raw,
		Expected: q.Answer(),
		Correct:  correct,
	})
	s.index++

	return Outcome{
		Correct:  correct,
		Expected: q.Answer(),
		Done:     s.index >= len(s.questions),
	}, nil
}

// SubmitChoice submits the text of option i (zero-based) of the current
// multiple-choice question.
func (s *Session) SubmitChoice(i int) (Outcome, error) {
	q, err := s.CurrentQuestion()
	if err != nil {
		return Outcome{}, fmt.Errorf("submit choice: %w", err)
	}
	opts := q.Options()
	if !q.IsMultipleChoice() || i < 0 || i >= len(opts) {
		return Outcome{}, fmt.Errorf("submit choice %d: %w", i, ErrInvalidChoice)
	}
	return s.SubmitAnswer(opts[i])
}

// Finalize computes the attempt score, folds it into the subject record and
// saves the mapping. If saving fails the mapping is left as it was and the
// session stays in progress.
func (s *Session) Finalize() (Result, error) {
	if s.state != InProgress {
		return Result{}, fmt.Errorf("finalize: %w: session is %s", ErrInvalidState, s.state)
	}
	if s.index < len(s.questions) {
		return Result{}, fmt.Errorf("finalize: %w: %d of %d questions answered",
			ErrInvalidState, s.index, len(s.questions))
	}

	pct := Percent(s.correct, len(s.questions))
	prev := s.scores[s.subject]

	rec, err := s.scores.Fold(s.subject, pct)
	if err != nil {
		return Result{}, fmt.Errorf("finalize: %w", err)
	}
	if err := s.saver.Save(s.scores); err != nil {
		s.scores[s.subject] = prev
		return Result{}, fmt.Errorf("finalize: save scores: %w", err)
	}
	s.state = Completed

	res := Result{
		SessionID:    s.id,
		Subject:      s.subject,
		Correct:      s.correct,
		Total:        len(s.questions),
		ScorePercent: pct,
		Tier:         advice.TierFor(pct),
		Record:       rec,
	}

	s.log.Info("quiz finalized",
		zap.String("session_id", s.id),
		zap.String("subject", s.subject),
		zap.Int("score_percent", pct),
		zap.Int("blended_score", rec.Score),
		zap.Int("attempts", rec.Attempts))

	s.record(res)
	return res, nil
}

// record writes the finished attempt to the history log.
func (s *Session) record(res Result) {
	if s.recorder == nil {
		return
	}

	data := store.AttemptData{
		SessionID:     res.SessionID,
		Subject:       res.Subject,
		Correct:       res.Correct,
		Total:         res.Total,
		ScorePercent:  res.ScorePercent,
		BlendedScore:  res.Record.Score,
		AttemptsAfter: res.Record.Attempts,
		StartedAt:     s.startedAt,
		FinishedAt:    s.now(),
	}
	for i, a := range s.answers {
		data.Answers = append(data.Answers, store.AnswerData{
			Position: i,
			Prompt:   a.Prompt,
			Given:    a.Given,
			Expected: a.Expected,
			Correct:  a.Correct,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if _, err := s.recorder.AppendAttempt(ctx, data); err != nil {
		s.log.Warn("record attempt failed", zap.String("session_id", s.id), zap.Error(err))
	}
}

// Match reports whether a submitted answer equals the expected one with
// case folded on both sides. Only the submitted answer is trimmed; bank
// answers never carry surrounding whitespace. No partial credit.
func Match(given, expected string) bool {
	return strings.ToLower(strings.TrimSpace(given)) == strings.ToLower(expected)
}
