package report

import (
	"path/filepath"
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/studytrack/tutor/internal/advice"
	"github.com/studytrack/tutor/internal/scores"
)

var order = []string{"AI Tools", "ADBMS", "Python Programming"}

func sample() scores.Scores {
	return scores.Scores{
		"AI Tools":           {Score: 90, Attempts: 4},
		"ADBMS":              {Score: 50, Attempts: 2},
		"Python Programming": {Score: 0, Attempts: 0},
		"Networks":           {Score: 80, Attempts: 1},
	}
}

func TestBars(t *testing.T) {
	bars := Bars(sample(), order)
	require.Len(t, bars, 4)

	got := make([]string, len(bars))
	for i, b := range bars {
		got[i] = b.Subject
	}
	assert.Equal(t, []string{"AI Tools", "ADBMS", "Python Programming", "Networks"}, got)

	assert.Equal(t, advice.Mastery, bars[0].Tier)
	assert.Equal(t, advice.Competent, bars[1].Tier)
	assert.Equal(t, advice.Novice, bars[2].Tier)
	// 80 is not above the mastery line
	assert.Equal(t, advice.Competent, bars[3].Tier)
	assert.Equal(t, 4, bars[0].Attempts)
}

func TestShares(t *testing.T) {
	t.Run("zero scores weigh one", func(t *testing.T) {
		shares := Shares(scores.Defaults(order), order)
		require.Len(t, shares, 3)
		for _, s := range shares {
			assert.Equal(t, 1, s.Weight)
			assert.InDelta(t, 100.0/3, s.Percent, 1e-9)
		}
	})

	t.Run("weighted", func(t *testing.T) {
		sc := scores.Scores{"A": {Score: 75}, "B": {Score: 25}}
		shares := Shares(sc, nil)
		require.Len(t, shares, 2)
		assert.InDelta(t, 75.0, shares[0].Percent, 1e-9)
		assert.InDelta(t, 25.0, shares[1].Percent, 1e-9)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Shares(scores.Scores{}, order))
	})
}

func TestKnowledgeGraph(t *testing.T) {
	g := KnowledgeGraph(sample(), order)
	require.Len(t, g.Nodes, 4)
	// complete graph over 4 nodes
	assert.Len(t, g.Edges, 6)

	assert.ElementsMatch(t, []string{"AI Tools", "Python Programming", "Networks"}, g.Neighbors("ADBMS"))
	assert.Equal(t, advice.Novice, g.Nodes[2].Tier)
	assert.Empty(t, g.Neighbors("Unknown"))
}

func TestTable(t *testing.T) {
	out := Table(Bars(sample(), order))
	assert.Contains(t, out, "Subject")
	assert.Contains(t, out, "Python Programming      0         0  Novice")
}

func TestTable_WideSubjects(t *testing.T) {
	sc := scores.Scores{
		"数据库":  {Score: 90, Attempts: 3},
		"Café": {Score: 55, Attempts: 1},
		"AI":   {Score: 10, Attempts: 1},
	}
	bars := Bars(sc, []string{"数据库", "Café", "AI"})
	lines := strings.Split(strings.TrimSuffix(Table(bars), "\n"), "\n")
	require.Len(t, lines, 4)

	// Everything before the tier label must span the same number of cells.
	want := lipgloss.Width(strings.TrimSuffix(lines[0], "Tier"))
	for i, b := range bars {
		line := lines[i+1]
		require.True(t, strings.HasSuffix(line, b.Tier.Label()), line)
		assert.Equal(t, want, lipgloss.Width(strings.TrimSuffix(line, b.Tier.Label())), line)
	}
}

func TestExportWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.xlsx")
	sc := sample()
	recs := advice.Recommend(sc, order)

	require.NoError(t, ExportWorkbook(path, sc, order, recs))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ScoresSheet, RecommendationsSheet}, f.GetSheetList())

	rows, err := f.GetRows(ScoresSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Subject", "Score", "Attempts", "Tier", "Pie weight"}, rows[0])
	assert.Equal(t, []string{"AI Tools", "90", "4", "Mastery", "90"}, rows[1])
	assert.Equal(t, []string{"Python Programming", "0", "0", "Novice", "1"}, rows[3])

	recRows, err := f.GetRows(RecommendationsSheet)
	require.NoError(t, err)
	require.Len(t, recRows, 5)
	assert.Equal(t, advice.Mastery.Recommendation(), recRows[1][3])
}

func TestExportWorkbook_NoSubjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, ExportWorkbook(path, scores.Scores{}, nil, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(ScoresSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExportWorkbook_BadPath(t *testing.T) {
	err := ExportWorkbook(filepath.Join(t.TempDir(), "missing", "x.xlsx"), sample(), order, nil)
	assert.Error(t, err)
}
