package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resetCmd = &cobra.Command{
	Use:   "reset [subject]",
	Short: "Clear the quiz history log",
	Long: `Delete the recorded quiz attempts of one subject, or of every subject
when none is given. Scores in the score file are never touched; they only
change when a quiz is finished.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		return withHistory(cmd, func(ctx context.Context, svc *services) error {
			subject, target := "", "every subject"
			if len(args) == 1 {
				subject = matchSubject(svc.bank.Names(), args[0])
				if !svc.bank.Has(subject) {
					return fmt.Errorf("unknown subject %q", args[0])
				}
				target = subject
			}

			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintf(out, "Clear quiz history for %s? [y/N] ", target)
				scanner := bufio.NewScanner(cmd.InOrStdin())
				if !scanner.Scan() || !strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			n, err := svc.history.ClearAttempts(ctx, subject)
			if err != nil {
				return err
			}
			svc.log.Info("history cleared", zap.String("target", target), zap.Int64("attempts", n))
			fmt.Fprintf(out, "Cleared %d attempt(s) for %s.\n", n, target)
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
