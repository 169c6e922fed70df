package performance

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studytrack/tutor/internal/advice"
	"github.com/studytrack/tutor/internal/report"
	"github.com/studytrack/tutor/internal/ui/components"
	"github.com/studytrack/tutor/internal/ui/theme"
)

// slicePalette colours pie slices in subject order.
var slicePalette = []color.Color{
	theme.Primary, theme.Secondary, theme.Accent, theme.Info, theme.Highlight, theme.Success,
}

func (s *PerformanceScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading scores...")
	}

	cw := components.ContentWidth(width)

	var body string
	switch s.tab {
	case tabBars:
		body = s.renderBars(cw)
	case tabPie:
		body = s.renderPie(cw)
	case tabGraph:
		body = s.renderGraph()
	case tabRecommendations:
		body = s.renderRecommendations(cw)
	}

	content := renderTabs(s.tab) + "\n\n" + body
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func renderTabs(active tab) string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf(" %d %s ", i+1, name)
		if tab(i) == active {
			parts[i] = lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Primary).Bold(true).Render(label)
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
		}
	}
	return strings.Join(parts, " ")
}

func heading(text string) string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(text)
}

func (s *PerformanceScreen) renderBars(cw int) string {
	bars := report.Bars(s.scores, s.subjects)
	if len(bars) == 0 {
		return theme.Hint.Render("No subjects yet.")
	}

	labelWidth := 0
	for _, b := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Subject))
	}

	lines := []string{heading("Performance by Subject"), ""}
	for _, b := range bars {
		label := b.Subject + strings.Repeat(" ", labelWidth-lipgloss.Width(b.Subject))
		bar := components.NewProgressBar(label, float64(b.Score)/100, true, cw)
		bar.Fill = theme.TierColor(b.Tier)
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}

func (s *PerformanceScreen) renderPie(cw int) string {
	shares := report.Shares(s.scores, s.subjects)
	if len(shares) == 0 {
		return theme.Hint.Render("No subjects yet.")
	}

	// One stacked strip stands in for the pie.
	var strip strings.Builder
	used := 0
	for i, sh := range shares {
		cells := int(float64(cw) * sh.Percent / 100)
		if i == len(shares)-1 {
			cells = cw - used
		}
		used += cells
		strip.WriteString(lipgloss.NewStyle().
			Background(slicePalette[i%len(slicePalette)]).
			Render(strings.Repeat(" ", max(cells, 0))))
	}

	lines := []string{heading("Overall Knowledge Distribution"), "", strip.String(), ""}
	for i, sh := range shares {
		swatch := lipgloss.NewStyle().Foreground(slicePalette[i%len(slicePalette)]).Render("■")
		lines = append(lines, fmt.Sprintf("%s %s  %.1f%%", swatch, sh.Subject, sh.Percent))
	}
	return strings.Join(lines, "\n")
}

func (s *PerformanceScreen) renderGraph() string {
	g := report.KnowledgeGraph(s.scores, s.subjects)
	if len(g.Nodes) == 0 {
		return theme.Hint.Render("No subjects yet.")
	}

	lines := []string{heading("Knowledge Graph"), ""}
	for _, n := range g.Nodes {
		node := lipgloss.NewStyle().Foreground(theme.TierColor(n.Tier)).Bold(true).
			Render(fmt.Sprintf("● %s (%d)", n.Subject, n.Score))
		lines = append(lines, node)
		for _, other := range g.Neighbors(n.Subject) {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("   └── "+other))
		}
	}

	lines = append(lines, "", legend())
	return strings.Join(lines, "\n")
}

func legend() string {
	var parts []string
	for _, t := range []advice.Tier{advice.Mastery, advice.Competent, advice.Novice} {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.TierColor(t)).Render("● "+t.Label()))
	}
	return strings.Join(parts, "   ")
}

func (s *PerformanceScreen) renderRecommendations(cw int) string {
	recs := advice.Recommend(s.scores, s.subjects)
	if len(recs) == 0 {
		return theme.Hint.Render("No subjects yet.")
	}

	aiText := make(map[string]string, len(s.tips))
	for _, tip := range s.tips {
		if tip.AI {
			aiText[tip.Subject] = tip.Text
		}
	}

	wrap := lipgloss.NewStyle().Width(cw).Foreground(theme.Text)
	lines := []string{heading("Personalized Study Recommendations"), ""}
	for _, r := range recs {
		title := lipgloss.NewStyle().Foreground(theme.TierColor(r.Tier)).Bold(true).
			Render(fmt.Sprintf("%s (%d)", r.Subject, r.Score))
		lines = append(lines, title, wrap.Render(r.Text))
		if text, ok := aiText[r.Subject]; ok {
			lines = append(lines, lipgloss.NewStyle().Width(cw).Foreground(theme.Info).Render("AI coach: "+text))
		}
		lines = append(lines, "")
	}

	switch {
	case s.asking:
		lines = append(lines, theme.Hint.Render("Asking the coach..."))
	case s.coach.Enabled() && len(s.tips) == 0:
		lines = append(lines, theme.Hint.Render("Press A for AI study tips."))
	}
	return strings.Join(lines, "\n")
}
