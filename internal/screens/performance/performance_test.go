package performance

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/studytrack/tutor/internal/advice"
	"github.com/studytrack/tutor/internal/coach"
	"github.com/studytrack/tutor/internal/llm"
	"github.com/studytrack/tutor/internal/scores"
)

var subjects = []string{"AI Tools", "ADBMS", "Python Programming"}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testScreen(t *testing.T, c *coach.Coach) *PerformanceScreen {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	data := `{"AI Tools":{"score":90,"attempts":3},"ADBMS":{"score":55,"attempts":2},"Python Programming":{"score":10,"attempts":1}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	s := New(scores.NewStore(path, subjects), subjects, c, nil)
	s.Update(s.Init()())
	if !s.loaded || s.errMsg != "" {
		t.Fatalf("load failed: %q", s.errMsg)
	}
	return s
}

func TestPerformance_Tabs(t *testing.T) {
	s := testScreen(t, nil)

	tests := []struct {
		key  tea.KeyPressMsg
		want tab
		text string
	}{
		{keyPress('2'), tabPie, "Overall Knowledge Distribution"},
		{keyPress('3'), tabGraph, "Knowledge Graph"},
		{keyPress('4'), tabRecommendations, "Personalized Study Recommendations"},
		{tea.KeyPressMsg{Code: tea.KeyRight}, tabBars, "Performance by Subject"},
		{tea.KeyPressMsg{Code: tea.KeyLeft}, tabRecommendations, advice.Novice.Recommendation()},
	}
	for _, tt := range tests {
		s.Update(tt.key)
		if s.tab != tt.want {
			t.Fatalf("after %q: tab = %d, want %d", tt.key.String(), s.tab, tt.want)
		}
		if view := s.View(100, 30); !strings.Contains(view, tt.text) {
			t.Errorf("tab %d view missing %q", tt.want, tt.text)
		}
	}
}

func TestPerformance_PieShowsPercentages(t *testing.T) {
	s := testScreen(t, nil)
	s.Update(keyPress('2'))
	view := s.View(100, 30)
	// 90 / (90+55+10)
	if !strings.Contains(view, "58.1%") {
		t.Errorf("expected AI Tools share in view:\n%s", view)
	}
}

func TestPerformance_GraphListsNeighbors(t *testing.T) {
	s := testScreen(t, nil)
	s.Update(keyPress('3'))
	view := s.View(100, 30)
	if strings.Count(view, "└── ") != 6 {
		t.Errorf("expected 6 neighbour lines for a complete graph of 3:\n%s", view)
	}
}

func TestPerformance_AskCoach(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"tips":[{"subject":"ADBMS","tip":"Normalize a schema to 3NF."}]}`),
	})
	s := testScreen(t, coach.New(mock))

	// Only the recommendations tab asks.
	if _, cmd := s.Update(keyPress('a')); cmd != nil {
		t.Fatal("ask should be ignored outside the recommendations tab")
	}

	s.Update(keyPress('4'))
	if !strings.Contains(s.View(100, 30), "Press A") {
		t.Error("expected coach hint")
	}
	_, cmd := s.Update(keyPress('a'))
	if cmd == nil {
		t.Fatal("expected ask command")
	}
	if _, again := s.Update(keyPress('a')); again != nil {
		t.Error("second ask while pending should be ignored")
	}

	s.Update(cmd())
	view := s.View(100, 30)
	if !strings.Contains(view, "AI coach: Normalize a schema to 3NF.") {
		t.Errorf("expected AI tip in view:\n%s", view)
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount = %d", mock.CallCount())
	}
}

func TestPerformance_NoCoach(t *testing.T) {
	s := testScreen(t, nil)
	s.Update(keyPress('4'))
	if _, cmd := s.Update(keyPress('a')); cmd != nil {
		t.Error("no coach configured, ask should be a no-op")
	}
	for _, h := range s.KeyHints() {
		if h.Key == "A" {
			t.Error("coach hint shown without a coach")
		}
	}
}

func TestPerformance_ResumeReloads(t *testing.T) {
	s := testScreen(t, nil)
	if err := s.store.Save(scores.Scores{"AI Tools": {Score: 20, Attempts: 4}}); err != nil {
		t.Fatal(err)
	}
	s.Update(s.Resume()())
	if s.scores["AI Tools"].Score != 20 {
		t.Errorf("expected reloaded score, got %+v", s.scores["AI Tools"])
	}
}
