package performance

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/studytrack/tutor/internal/advice"
	"github.com/studytrack/tutor/internal/coach"
	"github.com/studytrack/tutor/internal/scores"
	"github.com/studytrack/tutor/internal/screen"
	"github.com/studytrack/tutor/internal/ui/layout"
)

type tab int

const (
	tabBars tab = iota
	tabPie
	tabGraph
	tabRecommendations
)

var tabNames = []string{"Scores", "Distribution", "Knowledge Graph", "Recommendations"}

type scoresLoadedMsg struct {
	Scores scores.Scores
	Err    error
}

type tipsMsg struct {
	Tips []coach.Tip
}

// PerformanceScreen shows the score charts and study recommendations.
type PerformanceScreen struct {
	store    *scores.Store
	subjects []string
	coach    *coach.Coach
	log      *zap.Logger

	tab    tab
	scores scores.Scores
	loaded bool
	errMsg string
	tips   []coach.Tip
	asking bool
}

var _ screen.Screen = (*PerformanceScreen)(nil)
var _ screen.KeyHintProvider = (*PerformanceScreen)(nil)
var _ screen.Resumer = (*PerformanceScreen)(nil)

// New creates a PerformanceScreen. subjects sets the display order and c
// may be nil.
func New(store *scores.Store, subjects []string, c *coach.Coach, log *zap.Logger) *PerformanceScreen {
	if log == nil {
		log = zap.NewNop()
	}
	return &PerformanceScreen{
		store:    store,
		subjects: subjects,
		coach:    c,
		log:      log,
	}
}

func (s *PerformanceScreen) Init() tea.Cmd {
	return s.load()
}

func (s *PerformanceScreen) Resume() tea.Cmd {
	return s.load()
}

func (s *PerformanceScreen) load() tea.Cmd {
	return func() tea.Msg {
		sc, err := s.store.Load()
		return scoresLoadedMsg{Scores: sc, Err: err}
	}
}

func (s *PerformanceScreen) Title() string {
	return "Performance"
}

func (s *PerformanceScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "←→/1-4", Description: "Chart"},
	}
	if s.tab == tabRecommendations && s.coach.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "A", Description: "Ask AI coach"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *PerformanceScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoresLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.scores = msg.Scores
		s.tips = nil
		return s, nil

	case tipsMsg:
		s.asking = false
		s.tips = msg.Tips
		return s, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "right", "l", "tab":
			s.tab = (s.tab + 1) % tab(len(tabNames))
		case "left", "h", "shift+tab":
			s.tab = (s.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
		case "1", "2", "3", "4":
			s.tab = tab(key[0] - '1')
		case "a":
			if s.tab == tabRecommendations {
				return s, s.ask()
			}
		}
	}
	return s, nil
}

// ask requests AI tips for the current recommendations.
func (s *PerformanceScreen) ask() tea.Cmd {
	if !s.coach.Enabled() || s.asking || s.scores == nil {
		return nil
	}
	s.asking = true
	recs := advice.Recommend(s.scores, s.subjects)
	c := s.coach
	return func() tea.Msg {
		return tipsMsg{Tips: c.Advise(context.Background(), recs)}
	}
}
