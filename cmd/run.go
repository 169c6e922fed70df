package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studytrack/tutor/internal/app"
	"github.com/studytrack/tutor/internal/opener"
	"github.com/studytrack/tutor/internal/screens/home"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	svc, err := loadServices(cmd, nil)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.openHistory(); err != nil {
		// Quizzes and scores still work without the history log.
		svc.log.Warn("history disabled", zap.Error(err))
		fmt.Fprintln(os.Stderr, "History unavailable:", err)
	}

	opts := app.Options{
		Deps: home.Deps{
			Bank:    svc.bank,
			Scores:  svc.scores,
			History: svc.history,
			Coach:   svc.coach(cmd.Context()),
			Open:    opener.Open,
			Log:     svc.log,
		},
		Splash: svc.cfg.Splash,
	}

	svc.log.Info("starting app", zap.Bool("history", svc.history != nil))
	return app.Run(opts)
}
