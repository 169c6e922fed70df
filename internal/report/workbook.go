package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/studytrack/tutor/internal/advice"
	"github.com/studytrack/tutor/internal/scores"
)

// Sheet names in the exported workbook.
const (
	ScoresSheet          = "Scores"
	RecommendationsSheet = "Recommendations"
)

var scoreHeader = []any{"Subject", "Score", "Attempts", "Tier", "Pie weight"}

// ExportWorkbook writes the scores, a column chart, a pie chart and the
// recommendations to an xlsx file at path.
func ExportWorkbook(path string, sc scores.Scores, subjects []string, recs []advice.Recommendation) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ScoresSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	bars := Bars(sc, subjects)
	shares := Shares(sc, subjects)

	if err := writeRow(f, ScoresSheet, 1, scoreHeader); err != nil {
		return err
	}
	for i, b := range bars {
		row := []any{b.Subject, b.Score, b.Attempts, b.Tier.Label(), shares[i].Weight}
		if err := writeRow(f, ScoresSheet, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(ScoresSheet, "A1", "E1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(ScoresSheet, "A", "A", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if len(bars) > 0 {
		if err := addCharts(f, len(bars)); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(RecommendationsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeRow(f, RecommendationsSheet, 1, []any{"Subject", "Score", "Tier", "Recommendation"}); err != nil {
		return err
	}
	for i, r := range recs {
		if err := writeRow(f, RecommendationsSheet, i+2, []any{r.Subject, r.Score, r.Tier.Label(), r.Text}); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(RecommendationsSheet, "A1", "D1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(RecommendationsSheet, "D", "D", 60); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func addCharts(f *excelize.File, n int) error {
	last := n + 1
	categories := fmt.Sprintf("%s!$A$2:$A$%d", ScoresSheet, last)
	maxScore := float64(scores.MaxScore)

	bar := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       ScoresSheet + "!$B$1",
			Categories: categories,
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", ScoresSheet, last),
		}},
		Title:  []excelize.RichTextRun{{Text: "Performance by Subject"}},
		Legend: excelize.ChartLegend{Position: "none"},
		YAxis:  excelize.ChartAxis{Minimum: new(float64), Maximum: &maxScore},
		PlotArea: excelize.ChartPlotArea{
			ShowVal: true,
		},
	}
	if err := f.AddChart(ScoresSheet, "G2", bar); err != nil {
		return fmt.Errorf("add bar chart: %w", err)
	}

	pie := &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       ScoresSheet + "!$E$1",
			Categories: categories,
			Values:     fmt.Sprintf("%s!$E$2:$E$%d", ScoresSheet, last),
		}},
		Title:  []excelize.RichTextRun{{Text: "Overall Knowledge Distribution"}},
		Legend: excelize.ChartLegend{Position: "right"},
		PlotArea: excelize.ChartPlotArea{
			ShowPercent: true,
		},
	}
	if err := f.AddChart(ScoresSheet, "G20", pie); err != nil {
		return fmt.Errorf("add pie chart: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
