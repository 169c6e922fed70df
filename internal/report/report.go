// Package report derives chart data from the score file and exports it as
// an xlsx workbook.
package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studytrack/tutor/internal/advice"
	"github.com/studytrack/tutor/internal/scores"
)

// Bar is one column of the per-subject score chart.
type Bar struct {
	Subject  string
	Score    int
	Attempts int
	Tier     advice.Tier
}

// Share is one slice of the knowledge distribution pie.
type Share struct {
	Subject string
	Weight  int
	Percent float64
}

// Node is a subject in the knowledge graph.
type Node struct {
	Subject string
	Score   int
	Tier    advice.Tier
}

// Edge connects two subjects.
type Edge struct {
	From, To string
}

// Graph is the knowledge graph: every pair of subjects is connected and
// nodes carry their tier.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Bars returns one bar per subject, ordered by subjects first and then by
// name for subjects only present in the score file.
func Bars(sc scores.Scores, subjects []string) []Bar {
	names := sc.Ordered(subjects)
	bars := make([]Bar, 0, len(names))
	for _, name := range names {
		rec := sc[name]
		bars = append(bars, Bar{
			Subject:  name,
			Score:    rec.Score,
			Attempts: rec.Attempts,
			Tier:     advice.TierFor(rec.Score),
		})
	}
	return bars
}

// Shares returns pie slices. Each subject weighs max(score, 1) so an
// untouched score file still renders as an even pie.
func Shares(sc scores.Scores, subjects []string) []Share {
	names := sc.Ordered(subjects)
	shares := make([]Share, 0, len(names))
	total := 0
	for _, name := range names {
		w := max(sc[name].Score, 1)
		total += w
		shares = append(shares, Share{Subject: name, Weight: w})
	}
	for i := range shares {
		shares[i].Percent = float64(shares[i].Weight) * 100 / float64(total)
	}
	return shares
}

// KnowledgeGraph returns the complete graph over the scored subjects.
func KnowledgeGraph(sc scores.Scores, subjects []string) Graph {
	names := sc.Ordered(subjects)
	g := Graph{Nodes: make([]Node, 0, len(names))}
	for i, name := range names {
		score := sc[name].Score
		g.Nodes = append(g.Nodes, Node{Subject: name, Score: score, Tier: advice.TierFor(score)})
		for _, other := range names[i+1:] {
			g.Edges = append(g.Edges, Edge{From: name, To: other})
		}
	}
	return g
}

// Neighbors returns the subjects connected to subject.
func (g Graph) Neighbors(subject string) []string {
	var out []string
	for _, e := range g.Edges {
		switch subject {
		case e.From:
			out = append(out, e.To)
		case e.To:
			out = append(out, e.From)
		}
	}
	return out
}

// Table renders a plain-text summary: subject, score, attempts and tier.
// The subject column is sized by display cells, so wide runes stay aligned.
func Table(bars []Bar) string {
	width := lipgloss.Width("Subject")
	for _, b := range bars {
		width = max(width, lipgloss.Width(b.Subject))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %5s  %8s  %s\n", padCells("Subject", width), "Score", "Attempts", "Tier")
	for _, b := range bars {
		fmt.Fprintf(&sb, "%s  %5d  %8d  %s\n", padCells(b.Subject, width), b.Score, b.Attempts, b.Tier.Label())
	}
	return sb.String()
}

func padCells(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}
