package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzimem/internal/charmeta"
	"github.com/abhisek/hanzimem/internal/config"
	"github.com/abhisek/hanzimem/internal/distractor"
	"github.com/abhisek/hanzimem/internal/events"
	"github.com/abhisek/hanzimem/internal/learner"
	"github.com/abhisek/hanzimem/internal/session"
	"github.com/abhisek/hanzimem/internal/store"
)

// engine bundles the wired components behind the commands.
type engine struct {
	cfg        config.Config
	store      *store.Store
	chars      *charmeta.SQLiteRepository
	states     *learner.SQLiteRepository
	controller *session.Controller
	log        *slog.Logger
}

func (e *engine) Close() error {
	return e.store.Close()
}

// loadConfig resolves configuration with flag overrides applied on top of
// file and environment settings.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if err := store.EnsureDir(p); err != nil {
			return config.Config{}, err
		}
		cfg.DBPath = p
	}
	if l, _ := cmd.Flags().GetString("learner"); l != "" {
		cfg.Learner = l
	}
	return cfg, nil
}

// openEngine opens the store and wires the session controller. A nil log
// gets the default stderr logger; the TUI passes a discard logger so slog
// output cannot corrupt the alternate screen.
func openEngine(cmd *cobra.Command, log *slog.Logger) (*engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = newLogger()
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	chars := charmeta.NewSQLiteRepository(st.DB())
	states := learner.NewSQLiteRepository(st.DB())

	items, err := chars.All(cmd.Context())
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load character bank: %w", err)
	}
	gen := distractor.New(charmeta.BuildIndex(items))

	var sink events.Logger = events.Nop{}
	if cfg.Telemetry {
		sink = events.NewSQLiteLogger(st.DB())
	}

	policy, err := cfg.OrderingPolicy()
	if err != nil {
		st.Close()
		return nil, err
	}

	controller := session.NewController(chars, states, gen, sink, session.Config{
		BatchSize:  cfg.BatchSize,
		PoolWindow: cfg.PoolWindow,
		Policy:     policy,
		Logger:     log,
	})

	return &engine{
		cfg:        cfg,
		store:      st,
		chars:      chars,
		states:     states,
		controller: controller,
		log:        log,
	}, nil
}

// newLogger builds the process logger. Level comes from HANZIMEM_LOG_LEVEL
// (debug, info, warn, error); default info.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch os.Getenv("HANZIMEM_LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
