package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/tutor/internal/screen"
)

type fakeScreen struct {
	title   string
	inits   int
	resumes int
	msgs    []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd { s.inits++; return nil }
func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.msgs = append(s.msgs, msg)
	return s, nil
}
func (s *fakeScreen) View(int, int) string { return s.title }
func (s *fakeScreen) Title() string        { return s.title }
func (s *fakeScreen) Resume() tea.Cmd      { s.resumes++; return nil }

func titles(r *Router) []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name        string
		msgs        []tea.Msg
		want        []string
		wantResumes int
	}{
		{
			name: "push",
			msgs: []tea.Msg{PushScreenMsg{&fakeScreen{title: "Quiz"}}},
			want: []string{"Home", "Quiz"},
		},
		{
			name:        "pop",
			msgs:        []tea.Msg{PushScreenMsg{&fakeScreen{title: "Quiz"}}, PopScreenMsg{}},
			want:        []string{"Home"},
			wantResumes: 1,
		},
		{
			name: "pop at root",
			msgs: []tea.Msg{PopScreenMsg{}, PopToRootMsg{}},
			want: []string{"Home"},
		},
		{
			name: "replace keeps depth",
			msgs: []tea.Msg{PushScreenMsg{&fakeScreen{title: "Quiz"}}, ReplaceScreenMsg{&fakeScreen{title: "Summary"}}},
			want: []string{"Home", "Summary"},
		},
		{
			name: "pop to root",
			msgs: []tea.Msg{
				PushScreenMsg{&fakeScreen{title: "Study"}},
				PushScreenMsg{&fakeScreen{title: "ADBMS"}},
				PopToRootMsg{},
			},
			want:        []string{"Home"},
			wantResumes: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := &fakeScreen{title: "Home"}
			r := New(home)
			for _, msg := range tt.msgs {
				r.Update(msg)
			}
			assert.Equal(t, tt.want, titles(r))
			assert.Equal(t, len(tt.want), r.Depth())
			assert.Equal(t, tt.wantResumes, home.resumes)
			assert.Empty(t, home.msgs, "navigation messages must not reach screens")
		})
	}
}

func TestPushAndReplaceRunInit(t *testing.T) {
	r := New(&fakeScreen{title: "Home"})
	pushed := &fakeScreen{title: "Quiz"}
	replaced := &fakeScreen{title: "Summary"}

	r.Update(PushScreenMsg{pushed})
	r.Update(ReplaceScreenMsg{replaced})

	assert.Equal(t, 1, pushed.inits)
	assert.Equal(t, 1, replaced.inits)
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &fakeScreen{title: "Home"}
	quiz := &fakeScreen{title: "Quiz"}
	r := New(home)
	r.Push(quiz)

	key := tea.KeyPressMsg{Code: 'x', Text: "x"}
	r.Update(key)

	require.Len(t, quiz.msgs, 1)
	assert.Equal(t, key, quiz.msgs[0])
	assert.Empty(t, home.msgs)
	assert.Equal(t, "Quiz", r.View(10, 10))
}

func TestBreadcrumb(t *testing.T) {
	r := New(&fakeScreen{title: "Home"})
	assert.Equal(t, "Home", r.Breadcrumb())

	r.Push(&fakeScreen{title: "Study"})
	r.Push(&fakeScreen{title: "ADBMS"})
	assert.Equal(t, "Study › ADBMS", r.Breadcrumb())
}
