package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	qz "github.com/studytrack/tutor/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz [subject]",
	Short: "Take a quiz in the terminal without the full-screen app",
	Long: `Ask every question of one subject line by line and update its score.

Multiple-choice questions accept the option number or the option text.
Without a subject argument the subjects are listed and one is picked by number.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuiz,
}

func runQuiz(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	svc, err := loadServices(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer svc.Close()

	var opts []qz.Option
	opts = append(opts, qz.WithLogger(svc.log.Named("quiz")))
	if err := svc.openHistory(); err != nil {
		svc.log.Warn("history disabled", zap.Error(err))
	} else {
		opts = append(opts, qz.WithRecorder(svc.history))
	}

	sc, err := svc.scores.Load()
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())

	subject := ""
	if len(args) == 1 {
		subject = matchSubject(svc.bank.Names(), args[0])
	} else {
		subject, err = pickSubject(out, scanner, svc.bank.Names())
		if err != nil {
			return err
		}
	}

	session := qz.New(svc.bank, sc, svc.scores, opts...)
	if err := session.Start(subject); err != nil {
		return err
	}

	_, total := session.Progress()
	fmt.Fprintf(out, "Subject: %s (%d questions)\n\n", subject, total)

	for !session.Done() {
		q, err := session.CurrentQuestion()
		if err != nil {
			return err
		}
		answered, _ := session.Progress()

		fmt.Fprintf(out, "── Question %d/%d ──\n", answered+1, total)
		fmt.Fprintln(out, q.Prompt())
		for j, opt := range q.Options() {
			fmt.Fprintf(out, "  %d) %s\n", j+1, opt)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed, quiz abandoned)")
			return nil
		}
		answer := strings.TrimSpace(scanner.Text())

		var outcome qz.Outcome
		if n, convErr := strconv.Atoi(answer); convErr == nil && q.IsMultipleChoice() && n >= 1 && n <= len(q.Options()) {
			outcome, err = session.SubmitChoice(n - 1)
		} else {
			outcome, err = session.SubmitAnswer(answer)
		}
		if err != nil {
			return err
		}

		if outcome.Correct {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", outcome.Expected)
		}
		fmt.Fprintln(out)
	}

	res, err := session.Finalize()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "── Your Score: %d%% (%d/%d correct) ──\n", res.ScorePercent, res.Correct, res.Total)
	fmt.Fprintln(out, res.Tier.Feedback())
	fmt.Fprintf(out, "%s is now at %d after %d attempt(s).\n", res.Subject, res.Record.Score, res.Record.Attempts)
	return nil
}

// pickSubject lists subjects and reads a choice by number or name.
func pickSubject(out io.Writer, scanner *bufio.Scanner, names []string) (string, error) {
	fmt.Fprintln(out, "Subjects:")
	for i, n := range names {
		fmt.Fprintf(out, "  %d) %s\n", i+1, n)
	}
	fmt.Fprint(out, "\nPick a subject: ")
	if !scanner.Scan() {
		return "", fmt.Errorf("no subject chosen")
	}
	choice := strings.TrimSpace(scanner.Text())
	if n, err := strconv.Atoi(choice); err == nil {
		if n < 1 || n > len(names) {
			return "", fmt.Errorf("subject number %d out of range 1-%d", n, len(names))
		}
		return names[n-1], nil
	}
	return matchSubject(names, choice), nil
}

// matchSubject returns the subject name equal to s ignoring case, or s
// unchanged when none matches.
func matchSubject(names []string, s string) string {
	for _, n := range names {
		if strings.EqualFold(n, s) {
			return n
		}
	}
	return s
}
