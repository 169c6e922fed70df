package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studytrack/tutor/internal/ui/theme"
)

// TextInput is a focused single-line field for typed answers and file
// paths. Once graded it stops accepting keys.
type TextInput struct {
	field  textinput.Model
	graded bool
	ok     bool
}

// NewTextInput creates a focused field. charLimit <= 0 means unlimited.
func NewTextInput(placeholder string, charLimit int) TextInput {
	field := textinput.New()
	field.Placeholder = placeholder
	field.CharLimit = max(charLimit, 0)
	field.Focus()
	return TextInput{field: field}
}

// Init starts the cursor blink.
func (t TextInput) Init() tea.Cmd {
	return t.field.Focus()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.graded {
		return t, nil
	}
	var cmd tea.Cmd
	t.field, cmd = t.field.Update(msg)
	return t, cmd
}

// View renders the field followed by a grade mark once graded.
func (t TextInput) View() string {
	view := t.field.View()
	if !t.graded {
		return view
	}
	if t.ok {
		return view + " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	}
	return view + " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
}

// Value returns the raw text typed so far.
func (t TextInput) Value() string {
	return t.field.Value()
}

// Grade locks the field and records whether the answer was correct.
func (t *TextInput) Grade(correct bool) {
	t.graded = true
	t.ok = correct
	t.field.Blur()
}
