package quiz

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/studytrack/tutor/internal/bank"
	"github.com/studytrack/tutor/internal/router"
	"github.com/studytrack/tutor/internal/scores"
	"github.com/studytrack/tutor/internal/screen"
	"github.com/studytrack/tutor/internal/screens/summary"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.New([]bank.Subject{
		{Name: "Go", Questions: []bank.Question{
			bank.MultipleChoice("Which keyword starts a goroutine?", "go", "defer", "go", "func"),
			bank.FreeText("Name Go's formatter.", "gofmt"),
		}},
		{Name: "Empty"},
	})
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	return b
}

func testScreen(t *testing.T) (*QuizScreen, *scores.Store) {
	t.Helper()
	st := scores.NewStore(filepath.Join(t.TempDir(), "data.json"), []string{"Go", "Empty"})
	s := New(testBank(t), st, nil)
	s.Update(s.Init()())
	if s.phase != phasePick {
		t.Fatalf("expected pick phase, got %v (err %q)", s.phase, s.errMsg)
	}
	return s, st
}

// startFirst picks the first subject in the menu.
func startFirst(t *testing.T, s *QuizScreen) {
	t.Helper()
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected start command")
	}
	s.Update(cmd())
	if s.phase != phaseQuestion {
		t.Fatalf("expected question phase, got %v (err %q)", s.phase, s.errMsg)
	}
}

// answer submits the current question, correctly or not.
func answer(t *testing.T, s *QuizScreen, correct bool) {
	t.Helper()
	q := s.question
	if q.IsMultipleChoice() {
		i := slices.Index(q.Options(), q.Answer())
		if !correct {
			i = (i + 1) % len(q.Options())
		}
		s.Update(keyPress(rune('1' + i)))
		s.Update(specialKey(tea.KeyEnter))
	} else {
		text := q.Answer()
		if !correct {
			text = "nope"
		}
		for _, r := range text {
			s.Update(keyPress(r))
		}
		s.Update(specialKey(tea.KeyEnter))
	}
	if s.phase != phaseFeedback {
		t.Fatalf("expected feedback phase, got %v (err %q)", s.phase, s.errMsg)
	}
}

// continueQuiz presses a key after feedback and returns the command.
func continueQuiz(s *QuizScreen) tea.Cmd {
	_, cmd := s.Update(keyPress(' '))
	return cmd
}

func TestQuizScreen_PickListsBankSubjects(t *testing.T) {
	s, _ := testScreen(t)
	if len(s.menu.Items) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(s.menu.Items))
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Choose a subject") || !strings.Contains(view, "Go") {
		t.Errorf("unexpected pick view:\n%s", view)
	}
}

func TestQuizScreen_EmptySubjectShowsError(t *testing.T) {
	s, _ := testScreen(t)
	s.Update(specialKey(tea.KeyDown))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Update(cmd())

	if s.phase != phasePick {
		t.Fatalf("expected to stay on pick, got %v", s.phase)
	}
	if s.errMsg == "" {
		t.Error("expected an error message for an empty subject")
	}
}

func TestQuizScreen_FullRun(t *testing.T) {
	s, st := testScreen(t)
	startFirst(t, s)

	answer(t, s, true)
	if !s.outcome.Correct {
		t.Error("first answer should be correct")
	}
	if cmd := continueQuiz(s); s.phase != phaseQuestion {
		t.Fatalf("expected next question, got %v (cmd %v)", s.phase, cmd != nil)
	}

	answer(t, s, false)
	if s.outcome.Correct || !s.outcome.Done {
		t.Fatalf("unexpected outcome %+v", s.outcome)
	}
	if !strings.Contains(s.View(100, 30), "The answer is:") {
		t.Error("feedback should show the expected answer")
	}

	cmd := continueQuiz(s)
	if s.phase != phaseSaving || cmd == nil {
		t.Fatalf("expected saving phase, got %v", s.phase)
	}
	_, cmd = s.Update(cmd())
	if cmd == nil {
		t.Fatal("expected follow-up commands")
	}

	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected BatchMsg, got %T", cmd())
	}
	var sawScores, sawReplace bool
	for _, c := range batch {
		switch msg := c().(type) {
		case screen.ScoresUpdatedMsg:
			sawScores = true
			if msg.Scores["Go"] != (scores.Record{Score: 25, Attempts: 1}) {
				t.Errorf("unexpected scores %+v", msg.Scores)
			}
		case router.ReplaceScreenMsg:
			sawReplace = true
			if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
				t.Errorf("expected summary screen, got %T", msg.Screen)
			}
		}
	}
	if !sawScores || !sawReplace {
		t.Errorf("scores=%v replace=%v", sawScores, sawReplace)
	}

	sc, err := st.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if sc["Go"] != (scores.Record{Score: 25, Attempts: 1}) {
		t.Errorf("persisted record = %+v", sc["Go"])
	}
}

func TestQuizScreen_SaveFailureAllowsRetry(t *testing.T) {
	s, st := testScreen(t)
	startFirst(t, s)
	answer(t, s, true)
	continueQuiz(s)
	answer(t, s, true)

	// Turn the score file into a non-empty directory so the rename fails.
	if err := os.Remove(st.Path()); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(st.Path(), "blocker"), 0o755); err != nil {
		t.Fatal(err)
	}

	cmd := continueQuiz(s)
	s.Update(cmd())
	if s.phase != phaseSaveFailed {
		t.Fatalf("expected save failure, got %v", s.phase)
	}
	if s.scores["Go"] != (scores.Record{}) {
		t.Errorf("record should be restored, got %+v", s.scores["Go"])
	}
	if !strings.Contains(s.View(100, 30), "Press R to retry") {
		t.Error("expected retry hint")
	}

	if err := os.RemoveAll(st.Path()); err != nil {
		t.Fatal(err)
	}
	_, cmd = s.Update(keyPress('r'))
	if s.phase != phaseSaving || cmd == nil {
		t.Fatalf("expected retry, got %v", s.phase)
	}
	_, cmd = s.Update(cmd())
	if s.phase == phaseSaveFailed || cmd == nil {
		t.Fatalf("retry should succeed: %s", s.errMsg)
	}
	if s.scores["Go"] != (scores.Record{Score: 50, Attempts: 1}) {
		t.Errorf("record after retry = %+v", s.scores["Go"])
	}
}

func TestQuizScreen_KeyHintsFollowPhase(t *testing.T) {
	s, _ := testScreen(t)
	if got := s.KeyHints()[1].Description; got != "Start" {
		t.Errorf("pick hint = %q", got)
	}
	startFirst(t, s)
	if len(s.KeyHints()) == 0 {
		t.Error("expected question hints")
	}
	if s.Title() != "Quiz: Go" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestQuizScreen_BlankChoiceCountsWrong(t *testing.T) {
	s, _ := testScreen(t)
	startFirst(t, s)
	if !s.question.IsMultipleChoice() {
		answer(t, s, true)
		continueQuiz(s)
	}

	s.Update(specialKey(tea.KeyEnter))
	if s.phase != phaseFeedback {
		t.Fatalf("expected feedback phase, got %v (err %q)", s.phase, s.errMsg)
	}
	if s.outcome.Correct {
		t.Error("submitting with nothing selected should be wrong")
	}
	if s.lastGiven != "" {
		t.Errorf("lastGiven = %q, want blank", s.lastGiven)
	}
}
