package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studytrack/tutor/internal/advice"
	"github.com/studytrack/tutor/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export scores, charts and recommendations to an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("out")

		svc, err := loadServices(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer svc.Close()

		sc, err := svc.scores.Load()
		if err != nil {
			return err
		}
		subjects := sc.Ordered(svc.bank.Names())
		if err := report.ExportWorkbook(path, sc, subjects, advice.Recommend(sc, subjects)); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d subjects)\n", path, len(subjects))
		return nil
	},
}

func init() {
	reportCmd.Flags().String("out", "tutor-report.xlsx", "Output workbook path")
}
