package study

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/studytrack/tutor/internal/opener"
	"github.com/studytrack/tutor/internal/screen"
	"github.com/studytrack/tutor/internal/store"
	"github.com/studytrack/tutor/internal/ui/components"
	"github.com/studytrack/tutor/internal/ui/layout"
	"github.com/studytrack/tutor/internal/ui/theme"
)

type attachmentsLoadedMsg struct {
	Attachments []store.Attachment
	Err         error
}

type attachmentChangedMsg struct {
	Status string
	Err    error
}

// SubjectScreen manages the attachments of one subject.
type SubjectScreen struct {
	subject string
	repo    store.AttachmentRepo
	open    opener.Func
	log     *zap.Logger

	attachments []store.Attachment
	selected    int
	loaded      bool

	adding bool
	input  components.TextInput

	status string
	errMsg string
}

var _ screen.Screen = (*SubjectScreen)(nil)
var _ screen.KeyHintProvider = (*SubjectScreen)(nil)
var _ screen.InputCapturer = (*SubjectScreen)(nil)

// NewSubject creates a SubjectScreen.
func NewSubject(subject string, repo store.AttachmentRepo, open opener.Func, log *zap.Logger) *SubjectScreen {
	if open == nil {
		open = opener.Open
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SubjectScreen{subject: subject, repo: repo, open: open, log: log}
}

func (s *SubjectScreen) Init() tea.Cmd {
	return s.reload()
}

func (s *SubjectScreen) reload() tea.Cmd {
	subject := s.subject
	repo := s.repo
	return func() tea.Msg {
		atts, err := repo.Attachments(context.Background(), subject)
		return attachmentsLoadedMsg{Attachments: atts, Err: err}
	}
}

func (s *SubjectScreen) Title() string {
	return s.subject
}

func (s *SubjectScreen) CapturingInput() bool {
	return s.adding
}

func (s *SubjectScreen) KeyHints() []layout.KeyHint {
	if s.adding {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Attach"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{{Key: "A", Description: "Add file"}}
	if len(s.attachments) > 0 {
		hints = append(hints,
			layout.KeyHint{Key: "Enter", Description: "Open"},
			layout.KeyHint{Key: "D", Description: "Remove"},
		)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *SubjectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attachmentsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.attachments = msg.Attachments
		if s.selected >= len(s.attachments) {
			s.selected = max(len(s.attachments)-1, 0)
		}
		return s, nil

	case attachmentChangedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.status = ""
			return s, nil
		}
		s.errMsg = ""
		s.status = msg.Status
		return s, s.reload()

	case tea.KeyMsg:
		if s.adding {
			return s.handleInputKey(msg)
		}
		return s.handleKey(msg)
	}

	if s.adding {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SubjectScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.attachments)-1 {
			s.selected++
		}
	case "a":
		s.adding = true
		s.errMsg = ""
		s.input = components.NewTextInput("Path to a pdf, docx or pptx file", 512)
		return s, s.input.Init()
	case "enter", "o":
		if att, ok := s.current(); ok {
			return s, s.openCmd(att)
		}
	case "d", "x", "delete":
		if att, ok := s.current(); ok {
			return s, s.removeCmd(att)
		}
	}
	return s, nil
}

func (s *SubjectScreen) handleInputKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.adding = false
		return s, nil
	case "enter":
		path := expandHome(strings.TrimSpace(s.input.Value()))
		s.adding = false
		if path == "" {
			return s, nil
		}
		return s, s.addCmd(path)
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SubjectScreen) current() (store.Attachment, bool) {
	if s.selected < 0 || s.selected >= len(s.attachments) {
		return store.Attachment{}, false
	}
	return s.attachments[s.selected], true
}

func (s *SubjectScreen) addCmd(path string) tea.Cmd {
	subject, repo, log := s.subject, s.repo, s.log
	return func() tea.Msg {
		if _, err := os.Stat(path); err != nil {
			return attachmentChangedMsg{Err: fmt.Errorf("cannot attach %s: %w", path, err)}
		}
		att, err := repo.AddAttachment(context.Background(), subject, path)
		if err != nil {
			if errors.Is(err, store.ErrUnsupportedAttachment) {
				err = fmt.Errorf("only %s files can be attached", joinExts())
			}
			return attachmentChangedMsg{Err: err}
		}
		log.Info("attachment added", zap.String("subject", subject), zap.String("path", att.Path))
		return attachmentChangedMsg{Status: "Attached " + filepath.Base(att.Path)}
	}
}

func (s *SubjectScreen) removeCmd(att store.Attachment) tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		if err := repo.RemoveAttachment(context.Background(), att.ID); err != nil {
			return attachmentChangedMsg{Err: err}
		}
		return attachmentChangedMsg{Status: "Removed " + filepath.Base(att.Path)}
	}
}

func (s *SubjectScreen) openCmd(att store.Attachment) tea.Cmd {
	open, log := s.open, s.log
	return func() tea.Msg {
		if err := open(att.Path); err != nil {
			log.Warn("open attachment", zap.String("path", att.Path), zap.Error(err))
			return attachmentChangedMsg{Err: err}
		}
		return attachmentChangedMsg{Status: "Opened " + filepath.Base(att.Path)}
	}
}

func (s *SubjectScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(theme.Title.Render(s.subject)))
	b.WriteString("\n\n")

	switch {
	case !s.loaded:
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("Loading attachments..."))
	case len(s.attachments) == 0:
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No study files yet. Press A to attach one."))
	default:
		var list strings.Builder
		for i, att := range s.attachments {
			prefix := "  "
			style := lipgloss.NewStyle().Foreground(theme.Text)
			if i == s.selected {
				prefix = "▸ "
				style = theme.Selected
			}
			line := fmt.Sprintf("%s%s  %s", prefix, filepath.Base(att.Path),
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(att.AddedAt.Local().Format("Jan 02, 2006")))
			list.WriteString(style.Render(line))
			list.WriteString("\n")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, list.String()))
	}

	if s.adding {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "File: "+s.input.View()))
	}
	if s.status != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Success).Render(s.status))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Error).Render(s.errMsg))
	}
	return b.String()
}

// expandHome resolves a leading ~/ against the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
