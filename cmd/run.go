package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fincert/internal/app"
	"github.com/abhisek/fincert/internal/bank"
	"github.com/abhisek/fincert/internal/config"
	"github.com/abhisek/fincert/internal/logger"
	"github.com/abhisek/fincert/internal/quiz"
	"github.com/abhisek/fincert/internal/selector"
	"github.com/abhisek/fincert/internal/store"
	"github.com/abhisek/fincert/internal/wrongnote"
)

// deps is everything a command needs to run quizzes.
type deps struct {
	cfg    *config.Config
	logger *zap.Logger
	svc    *quiz.Service
	notes  *wrongnote.Store
	store  *store.Store // nil when history is disabled or failed to open
}

func (d *deps) Close() {
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			d.logger.Warn("close history database", zap.Error(err))
		}
	}
	_ = d.logger.Sync()
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := buildDeps(cmd, logger.ForTUI)
	if err != nil {
		return err
	}
	defer d.Close()

	skip, _ := cmd.Flags().GetBool("no-welcome")
	return app.Run(app.Options{
		Service:     d.svc,
		Logger:      d.logger,
		SkipWelcome: skip,
	})
}

// loadConfig reads configuration with the command's flags bound on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{ConfigFile: path, Flags: cmd.Flags()})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// buildDeps loads the bank, wrong notes and history and wires the quiz
// service. A missing bank or history database is logged, not fatal.
func buildDeps(cmd *cobra.Command, newLogger func(config.Log) (*zap.Logger, error)) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	b, err := bank.Load(cfg.BankPath)
	if err != nil {
		log.Warn("question bank not loaded", zap.String("path", cfg.BankPath), zap.Error(err))
	}
	for _, is := range b.Issues() {
		log.Warn("question bank issue", zap.Stringer("issue", is))
	}
	log.Info("question bank loaded",
		zap.String("path", cfg.BankPath),
		zap.Int("questions", b.Len()),
		zap.Int("categories", len(b.Categories())))

	notes := wrongnote.New(cfg.WrongNotesPath, log)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sel := selector.New(rand.New(rand.NewSource(seed)), notes)

	d := &deps{cfg: cfg, logger: log, notes: notes}

	var history store.HistoryRepo
	if !cfg.NoHistory {
		st, err := openStore(cfg)
		if err != nil {
			log.Warn("attempt history disabled", zap.Error(err))
		} else {
			d.store = st
			history = st.HistoryRepo()
		}
	}

	d.svc = quiz.NewService(quiz.Deps{
		Bank:        b,
		Selector:    sel,
		Notes:       notes,
		History:     history,
		Exams:       cfg.Exams,
		Logger:      log,
		RandomCount: cfg.RandomCount,
	})
	return d, nil
}

// resolveDBPath returns the configured database path (--db, db_path or
// FINCERT_DB_PATH), falling back to FINCERT_DB and the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cfg *config.Config) (*store.Store, error) {
	path, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
