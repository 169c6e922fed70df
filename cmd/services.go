package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studytrack/tutor/internal/bank"
	"github.com/studytrack/tutor/internal/coach"
	"github.com/studytrack/tutor/internal/config"
	"github.com/studytrack/tutor/internal/llm"
	"github.com/studytrack/tutor/internal/logging"
	"github.com/studytrack/tutor/internal/scores"
	"github.com/studytrack/tutor/internal/store"
)

// logCleanup flushes the process logger; set once per Execute.
var logCleanup func()

func closeLogger() {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
}

// services are the dependencies shared by the subcommands.
type services struct {
	cfg     *config.Config
	log     *zap.Logger
	bank    *bank.Bank
	scores  *scores.Store
	history *store.Store
}

// loadServices resolves config, starts logging and prepares the question
// bank and score store. console, when non-nil, mirrors warnings for
// one-shot commands.
func loadServices(cmd *cobra.Command, console io.Writer) (*services, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	closeLogger()
	log, cleanup, err := logging.New(logging.Options{
		File:    cfg.LogFile,
		Level:   cfg.LogLevel,
		Console: console,
	})
	if err != nil {
		return nil, fmt.Errorf("start logging: %w", err)
	}
	logCleanup = cleanup
	log.Debug("config resolved",
		zap.String("data_file", cfg.DataFile),
		zap.String("history_db", cfg.HistoryDB),
		zap.String("config_file", cfg.ConfigFile))

	b := bank.Builtin()
	if cfg.BankFile != "" {
		if b, err = bank.Load(cfg.BankFile); err != nil {
			return nil, fmt.Errorf("load question bank: %w", err)
		}
	}

	st := scores.NewStore(cfg.DataFile, b.Names(), scores.WithLogger(log.Named("scores")))
	sc, err := st.Load()
	if err != nil {
		return nil, err
	}
	// Subjects added to the bank after the score file was created start
	// at zero.
	if sc.Ensure(b.Names()...) {
		if err := st.Save(sc); err != nil {
			return nil, fmt.Errorf("add new subjects: %w", err)
		}
	}

	return &services{cfg: cfg, log: log, bank: b, scores: st}, nil
}

// openHistory opens the history database.
func (s *services) openHistory() error {
	if s.history != nil {
		return nil
	}
	if err := store.EnsureDir(s.cfg.HistoryDB); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	h, err := store.Open(s.cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	s.history = h
	return nil
}

// coach returns a study coach backed by the configured LLM provider, or a
// canned-advice coach when none is configured or it fails to start.
func (s *services) coach(ctx context.Context) *coach.Coach {
	cfg := s.cfg.LLM.Resolve()
	if !cfg.Enabled() {
		return coach.New(nil)
	}

	var events store.EventRepo
	if s.history != nil {
		events = s.history.EventRepo()
	}
	p, err := llm.NewProvider(ctx, cfg, events, s.log.Named("llm"))
	if err != nil {
		s.log.Warn("LLM provider unavailable, using canned advice", zap.Error(err))
		return coach.New(nil)
	}
	return coach.New(p, coach.WithTimeout(cfg.Timeout), coach.WithLogger(s.log.Named("coach")))
}

func (s *services) Close() {
	if s.history != nil {
		if err := s.history.Close(); err != nil {
			s.log.Warn("close history", zap.Error(err))
		}
	}
}
