package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studytrack/tutor/internal/advice"
	"github.com/studytrack/tutor/internal/coach"
	"github.com/studytrack/tutor/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the score table",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		out := cmd.OutOrStdout()
		fmt.Fprint(out, report.Table(report.Bars(sc, subjects)))

		if shares := report.Shares(sc, subjects); len(shares) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Distribution")
			for _, s := range shares {
				fmt.Fprintf(out, "  %-24s %5.1f%%\n", s.Subject, s.Percent)
			}
		}
		return nil
	},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show what to study next for every subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		useAI, _ := cmd.Flags().GetBool("ai")

		svc, err := loadServices(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer svc.Close()

		sc, err := svc.scores.Load()
		if err != nil {
			return err
		}
		recs := advice.Recommend(sc, svc.bank.Names())

		tips := coach.Canned(recs)
		if useAI {
			if err := svc.openHistory(); err != nil {
				svc.log.Warn("LLM events not recorded", zap.Error(err))
			}
			c := svc.coach(cmd.Context())
			if !c.Enabled() {
				return fmt.Errorf("--ai needs an LLM provider (set --llm-provider or TUTOR_LLM_PROVIDER)")
			}
			tips = c.Advise(cmd.Context(), recs)
		}

		out := cmd.OutOrStdout()
		for _, t := range tips {
			marker := ""
			if t.AI {
				marker = " (AI)"
			}
			fmt.Fprintf(out, "%s [%s]%s\n  %s\n", t.Subject, t.Tier.Label(), marker, t.Text)
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().Bool("ai", false, "Ask the LLM coach for concrete next steps")
}
