package welcome

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/studytrack/tutor/internal/router"
	"github.com/studytrack/tutor/internal/screen"
)

type homeStub struct{}

func (s *homeStub) Init() tea.Cmd                           { return nil }
func (s *homeStub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *homeStub) View(int, int) string                    { return "home" }
func (s *homeStub) Title() string                           { return "Home" }

// newSplash returns a splash and a counter of how often it built home.
func newSplash() (*WelcomeScreen, *int) {
	built := 0
	return New(func() screen.Screen {
		built++
		return &homeStub{}
	}), &built
}

func steps(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(stepMsg{})
	}
	return cmd
}

func assertHandsOver(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a hand-over command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*homeStub); !ok {
		t.Errorf("replaced with %T", msg.Screen)
	}
}

func TestSplashEndsOnItsOwn(t *testing.T) {
	w, built := newSplash()

	last := int(splashTime/step) - 1
	if cmd := steps(w, last); cmd == nil || *built != 0 {
		t.Fatalf("splash ended early after %d steps (built=%d)", last, *built)
	}

	assertHandsOver(t, steps(w, 1))
	if *built != 1 {
		t.Errorf("home built %d times", *built)
	}
}

func TestAnyKeySkips(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: ' '}, {Code: tea.KeyEnter}, {Code: 'q', Text: "q"}} {
		w, built := newSplash()
		steps(w, 2)
		_, cmd := w.Update(key)
		assertHandsOver(t, cmd)
		if *built != 1 {
			t.Errorf("%q: home built %d times", key.String(), *built)
		}
	}
}

func TestNothingAfterHandOver(t *testing.T) {
	w, built := newSplash()
	w.Update(tea.KeyPressMsg{Code: 'a'})

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second key produced a command")
	}
	if cmd := steps(w, 40); cmd != nil {
		t.Error("steps kept running after hand-over")
	}
	if *built != 1 {
		t.Errorf("home built %d times", *built)
	}
}

func TestEditionLineAppearsLater(t *testing.T) {
	w, _ := newSplash()

	view := w.View(80, 24)
	if !strings.Contains(view, "Intelligent Tutoring System") {
		t.Error("title missing at start")
	}
	if strings.Contains(view, "AI Edition") {
		t.Error("edition line shown too early")
	}

	steps(w, int(revealAt/step))
	if !strings.Contains(w.View(80, 24), "AI Edition") {
		t.Error("edition line missing after reveal")
	}
}
