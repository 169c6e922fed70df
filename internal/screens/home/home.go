package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/studytrack/tutor/internal/advice"
	"github.com/studytrack/tutor/internal/bank"
	"github.com/studytrack/tutor/internal/coach"
	"github.com/studytrack/tutor/internal/opener"
	qz "github.com/studytrack/tutor/internal/quiz"
	"github.com/studytrack/tutor/internal/router"
	"github.com/studytrack/tutor/internal/scores"
	"github.com/studytrack/tutor/internal/screen"
	"github.com/studytrack/tutor/internal/screens/history"
	"github.com/studytrack/tutor/internal/screens/notice"
	"github.com/studytrack/tutor/internal/screens/performance"
	quizscreen "github.com/studytrack/tutor/internal/screens/quiz"
	"github.com/studytrack/tutor/internal/screens/study"
	"github.com/studytrack/tutor/internal/store"
	"github.com/studytrack/tutor/internal/ui/components"
)

// Deps are the services the home screen hands to the screens it opens.
// History and Coach may be nil.
type Deps struct {
	Bank    *bank.Bank
	Scores  *scores.Store
	History *store.Store
	Coach   *coach.Coach
	Open    opener.Func
	Log     *zap.Logger
}

// stats summarizes the score file for the dashboard.
type stats struct {
	average  int
	quizzes  int
	mastered int
	novice   int
}

func computeStats(sc scores.Scores) stats {
	var st stats
	if len(sc) == 0 {
		return st
	}
	total := 0
	for _, rec := range sc {
		total += rec.Score
		st.quizzes += rec.Attempts
		switch advice.TierFor(rec.Score) {
		case advice.Mastery:
			st.mastered++
		case advice.Novice:
			if rec.Attempts > 0 {
				st.novice++
			}
		}
	}
	st.average = total / len(sc)
	return st
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
	stats      stats
	errMsg     string
}

// historyMissing explains the notice shown for screens that need the
// history database.
const historyMissing = "The quiz history database could not be opened.\nScores still work; check the log file and restart."

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Open == nil {
		deps.Open = opener.Open
	}

	h := &HomeScreen{
		deps:       deps,
		menuLabels: []string{"STUDY", "QUIZ", "PERFORMANCE", "HISTORY", "EXIT"},
	}
	h.refresh()

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	items := []components.MenuItem{
		{Label: h.menuLabels[0], Action: push(func() screen.Screen {
			if deps.History == nil {
				return notice.New("Study", historyMissing)
			}
			return study.New(deps.Bank.Names(), deps.History, deps.Open, deps.Log)
		})},
		{Label: h.menuLabels[1], Action: push(func() screen.Screen {
			var opts []qz.Option
			if deps.History != nil {
				opts = append(opts, qz.WithRecorder(deps.History))
			}
			return quizscreen.New(deps.Bank, deps.Scores, deps.Log, opts...)
		})},
		{Label: h.menuLabels[2], Action: push(func() screen.Screen {
			return performance.New(deps.Scores, deps.Bank.Names(), deps.Coach, deps.Log)
		})},
		{Label: h.menuLabels[3], Action: push(func() screen.Screen {
			if deps.History == nil {
				return notice.New("History", historyMissing)
			}
			return history.New(deps.History, deps.Bank.Names())
		})},
		{Label: h.menuLabels[4], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

// refresh re-reads the score file for the dashboard.
func (h *HomeScreen) refresh() {
	sc, err := h.deps.Scores.Load()
	if err != nil {
		h.deps.Log.Warn("load scores for dashboard", zap.Error(err))
		h.errMsg = err.Error()
		return
	}
	h.errMsg = ""
	h.stats = computeStats(sc)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(moodFor(h.stats), cw))
	}

	sections = append(sections, renderStatsBar(h.stats, cw, compact))

	if h.errMsg != "" {
		sections = append(sections, renderWarning(h.errMsg, cw))
	}

	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	content := strings.Join(sections, "\n\n")

	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
