package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/studytrack/tutor/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		limit, _ := cmd.Flags().GetInt("limit")
		since, _ := cmd.Flags().GetDuration("since")
		showAnswers, _ := cmd.Flags().GetBool("answers")

		svc, err := loadServices(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer svc.Close()
		if err := svc.openHistory(); err != nil {
			return err
		}

		opts := store.QueryOpts{Subject: matchSubject(svc.bank.Names(), subject), Limit: limit}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}

		ctx := cmd.Context()
		attempts, err := svc.history.RecentAttempts(ctx, opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No quiz attempts found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-16s  %-24s  %7s  %5s  %9s\n",
			"ID", "Finished", "Subject", "Correct", "Score", "Running")
		fmt.Fprintln(out, strings.Repeat("─", 76))

		for _, a := range attempts {
			fmt.Fprintf(out, "%-5d  %-16s  %-24s  %7s  %4d%%  %9d\n",
				a.ID,
				a.FinishedAt.Local().Format("2006-01-02 15:04"),
				a.Subject,
				fmt.Sprintf("%d/%d", a.Correct, a.Total),
				a.ScorePercent,
				a.BlendedScore,
			)
			if !showAnswers {
				continue
			}
			answers, err := svc.history.AttemptAnswers(ctx, a.ID)
			if err != nil {
				return err
			}
			for _, ans := range answers {
				mark := "✓"
				if !ans.Correct {
					mark = "✗"
				}
				given := ans.Given
				if given == "" {
					given = "(blank)"
				}
				fmt.Fprintf(out, "       %s %s  %s (answer: %s)\n", mark, ans.Prompt, given, ans.Expected)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("subject", "", "Only show attempts for this subject")
	historyCmd.Flags().Int("limit", 20, "Maximum attempts to show (0 = all)")
	historyCmd.Flags().Duration("since", 0, "Only show attempts finished within this window, e.g. 168h")
	historyCmd.Flags().Bool("answers", false, "Show every graded answer")
}
