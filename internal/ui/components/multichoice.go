package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studytrack/tutor/internal/ui/theme"
)

// MultiChoice is a radio-style option selector. Nothing is selected until
// the learner moves or presses a digit, so submitting straight away sends a
// blank answer. The correct option is not known until Reveal is called
// after grading.
type MultiChoice struct {
	Options      []string
	Selected     int
	Submitted    bool
	ChosenIndex  int
	CorrectIndex int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options:      options,
		Selected:     -1,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Update handles keyboard navigation and selection. Digit keys pick an
// option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		} else if len(m.Options) > 0 {
			m.Selected = 0
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
			}
		}
	}

	return m, nil
}

// Reveal marks which option was correct so the view can colour it.
func (m *MultiChoice) Reveal(correct string) {
	for i, opt := range m.Options {
		if opt == correct {
			m.CorrectIndex = i
			return
		}
	}
}

// View renders the options.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		mark := "( )"
		if i == m.Selected {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s %d. %s", mark, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = theme.Correct
		case m.Submitted && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		}
		s += style.Render(line) + "\n"
	}
	return s
}

// Chosen returns the submitted option text, "" when the learner submitted
// without selecting. ok is false until Enter is pressed.
func (m MultiChoice) Chosen() (text string, ok bool) {
	if !m.Submitted {
		return "", false
	}
	if m.ChosenIndex < 0 || m.ChosenIndex >= len(m.Options) {
		return "", true
	}
	return m.Options[m.ChosenIndex], true
}

// Blank reports whether Enter was pressed with no option selected.
func (m MultiChoice) Blank() bool {
	return m.Submitted && m.ChosenIndex < 0
}
