package quiz

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/studytrack/tutor/internal/bank"
	qz "github.com/studytrack/tutor/internal/quiz"
	"github.com/studytrack/tutor/internal/router"
	"github.com/studytrack/tutor/internal/scores"
	"github.com/studytrack/tutor/internal/screen"
	"github.com/studytrack/tutor/internal/screens/summary"
	"github.com/studytrack/tutor/internal/ui/components"
	"github.com/studytrack/tutor/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phasePick
	phaseQuestion
	phaseFeedback
	phaseSaving
	phaseSaveFailed
)

// QuizScreen runs one quiz: subject pick, one question at a time, then the
// score summary.
type QuizScreen struct {
	bank     *bank.Bank
	store    *scores.Store
	sessOpts []qz.Option
	log      *zap.Logger

	phase   phase
	scores  scores.Scores
	menu    components.Menu
	session *qz.Session

	question  bank.Question
	mc        components.MultiChoice
	input     components.TextInput
	lastGiven string
	outcome   qz.Outcome

	errMsg string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. opts are passed to every quiz session.
func New(b *bank.Bank, store *scores.Store, log *zap.Logger, opts ...qz.Option) *QuizScreen {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuizScreen{
		bank:     b,
		store:    store,
		sessOpts: append([]qz.Option{qz.WithLogger(log)}, opts...),
		log:      log,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sc, err := s.store.Load()
		return scoresLoadedMsg{Scores: sc, Err: err}
	}
}

func (s *QuizScreen) Title() string {
	if s.session != nil && s.session.Subject() != "" {
		return "Quiz: " + s.session.Subject()
	}
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phasePick:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Subject"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseQuestion:
		if s.question.IsMultipleChoice() {
			return []layout.KeyHint{
				{Key: "↑↓/1-9", Description: "Choose"},
				{Key: "Enter", Description: "Submit"},
				{Key: "Esc", Description: "Abandon"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Abandon"},
		}
	case phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case phaseSaveFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry save"},
			{Key: "Esc", Description: "Abandon"},
		}
	}
	return nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoresLoadedMsg:
		return s.handleScoresLoaded(msg)
	case startQuizMsg:
		return s.handleStart(msg.Subject)
	case finalizedMsg:
		return s.handleFinalized(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseQuestion && !s.question.IsMultipleChoice() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleScoresLoaded(msg scoresLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		s.phase = phasePick
		return s, nil
	}
	s.scores = msg.Scores
	s.menu = components.NewMenu(s.subjectItems())
	s.phase = phasePick
	return s, nil
}

// subjectItems lists subjects present in both the bank and the score file.
func (s *QuizScreen) subjectItems() []components.MenuItem {
	var items []components.MenuItem
	for _, name := range s.scores.Ordered(s.bank.Names()) {
		if !s.bank.Has(name) {
			continue
		}
		subject := name
		label := fmt.Sprintf("%-24s %3d%%", subject, s.scores[subject].Score)
		items = append(items, components.MenuItem{
			Label: label,
			Action: func() tea.Cmd {
				return func() tea.Msg { return startQuizMsg{Subject: subject} }
			},
		})
	}
	return items
}

func (s *QuizScreen) handleStart(subject string) (screen.Screen, tea.Cmd) {
	sess := qz.New(s.bank, s.scores, s.store, s.sessOpts...)
	if err := sess.Start(subject); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.session = sess
	s.errMsg = ""
	return s, s.loadQuestion()
}

func (s *QuizScreen) loadQuestion() tea.Cmd {
	q, err := s.session.CurrentQuestion()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.question = q
	s.phase = phaseQuestion
	if q.IsMultipleChoice() {
		s.mc = components.NewMultiChoice(q.Options())
		return nil
	}
	s.input = components.NewTextInput("Type your answer...", 120)
	return s.input.Init()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phasePick:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd

	case phaseQuestion:
		if s.question.IsMultipleChoice() {
			s.mc, _ = s.mc.Update(msg)
			if !s.mc.Submitted {
				return s, nil
			}
			s.lastGiven, _ = s.mc.Chosen()
			if s.mc.Blank() {
				return s, s.submit(s.session.SubmitAnswer(""))
			}
			return s, s.submit(s.session.SubmitChoice(s.mc.ChosenIndex))
		}
		if msg.String() == "enter" {
			s.lastGiven = s.input.Value()
			return s, s.submit(s.session.SubmitAnswer(s.lastGiven))
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case phaseFeedback:
		if s.outcome.Done {
			return s, s.finalize()
		}
		return s, s.loadQuestion()

	case phaseSaveFailed:
		switch msg.String() {
		case "r", "enter":
			return s, s.finalize()
		}
	}
	return s, nil
}

func (s *QuizScreen) submit(out qz.Outcome, err error) tea.Cmd {
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.outcome = out
	if s.question.IsMultipleChoice() {
		s.mc.Reveal(out.Expected)
	} else {
		s.input.Grade(out.Correct)
	}
	s.phase = phaseFeedback
	return nil
}

func (s *QuizScreen) finalize() tea.Cmd {
	s.phase = phaseSaving
	sess := s.session
	return func() tea.Msg {
		res, err := sess.Finalize()
		return finalizedMsg{Result: res, Err: err}
	}
}

func (s *QuizScreen) handleFinalized(msg finalizedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.log.Error("save quiz result", zap.Error(msg.Err))
		s.errMsg = msg.Err.Error()
		s.phase = phaseSaveFailed
		return s, nil
	}

	s.errMsg = ""
	updated := s.scores.Clone()
	next := summary.New(msg.Result, s.session.Answers())
	return s, tea.Batch(
		func() tea.Msg { return screen.ScoresUpdatedMsg{Scores: updated} },
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
	)
}
