package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List subjects in the question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer svc.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-24s  %9s  %s\n", "Subject", "Questions", "Kinds")
		for _, s := range svc.bank.Subjects() {
			mc, free := 0, 0
			for _, q := range s.Questions {
				if q.IsMultipleChoice() {
					mc++
				} else {
					free++
				}
			}
			fmt.Fprintf(out, "%-24s  %9d  %d multiple choice, %d free text\n", s.Name, len(s.Questions), mc, free)
		}
		return nil
	},
}
