package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studytrack/tutor/internal/opener"
	"github.com/studytrack/tutor/internal/store"
)

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Manage study files linked to subjects",
	Long: fmt.Sprintf(`Link study documents to subjects and open them with the system viewer.

Supported file types: %s`, strings.Join(store.AttachmentExtensions, " ")),
}

var attachAddCmd = &cobra.Command{
	Use:   "add <subject> <file>",
	Short: "Link a study file to a subject",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(ctx context.Context, svc *services) error {
			subject := matchSubject(svc.bank.Names(), args[0])
			if !svc.bank.Has(subject) {
				return fmt.Errorf("unknown subject %q", args[0])
			}
			if _, err := os.Stat(args[1]); err != nil {
				return err
			}
			a, err := svc.history.AddAttachment(ctx, subject, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Attached %s to %s (%s)\n", a.Path, a.Subject, shortID(a.ID))
			return nil
		})
	},
}

var attachListCmd = &cobra.Command{
	Use:   "list [subject]",
	Short: "List linked study files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(ctx context.Context, svc *services) error {
			subject := ""
			if len(args) == 1 {
				subject = matchSubject(svc.bank.Names(), args[0])
			}
			list, err := svc.history.Attachments(ctx, subject)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No study files attached.")
				return nil
			}
			for _, a := range list {
				fmt.Fprintf(out, "%-8s  %-24s  %s\n", shortID(a.ID), a.Subject, a.Path)
			}
			return nil
		})
	},
}

var attachOpenCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Open a study file with the system viewer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(ctx context.Context, svc *services) error {
			a, err := findAttachment(ctx, svc.history, args[0])
			if err != nil {
				return err
			}
			return opener.Open(a.Path)
		})
	},
}

var attachRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Unlink a study file (the file itself is kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(ctx context.Context, svc *services) error {
			a, err := findAttachment(ctx, svc.history, args[0])
			if err != nil {
				return err
			}
			if err := svc.history.RemoveAttachment(ctx, a.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", a.Path, a.Subject)
			return nil
		})
	},
}

func init() {
	attachCmd.AddCommand(attachAddCmd)
	attachCmd.AddCommand(attachListCmd)
	attachCmd.AddCommand(attachOpenCmd)
	attachCmd.AddCommand(attachRemoveCmd)
}

// withHistory runs fn with the history database open.
func withHistory(cmd *cobra.Command, fn func(ctx context.Context, svc *services) error) error {
	svc, err := loadServices(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer svc.Close()
	if err := svc.openHistory(); err != nil {
		return err
	}
	return fn(cmd.Context(), svc)
}

// findAttachment resolves a full or abbreviated attachment ID.
func findAttachment(ctx context.Context, repo store.AttachmentRepo, id string) (*store.Attachment, error) {
	list, err := repo.Attachments(ctx, "")
	if err != nil {
		return nil, err
	}
	var matches []store.Attachment
	for _, a := range list {
		if strings.HasPrefix(a.ID, id) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("attachment %s: %w", id, store.ErrAttachmentNotFound)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("attachment ID %q is ambiguous (%d matches)", id, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
