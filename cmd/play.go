package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzimem/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the engine and launches the TUI.
func runApp(cmd *cobra.Command) error {
	eng, err := openEngine(cmd, slog.New(slog.DiscardHandler))
	if err != nil {
		return err
	}
	defer eng.Close()

	empty, err := bankIsEmpty(cmd, eng)
	if err != nil {
		return err
	}
	if empty {
		return fmt.Errorf("character bank is empty; run `hanzimem import <dataset.json>` first")
	}

	return app.Run(app.Deps{
		Controller: eng.controller,
		States:     eng.states,
		Learner:    eng.cfg.Learner,
	})
}

func bankIsEmpty(cmd *cobra.Command, eng *engine) (bool, error) {
	maxRank, err := eng.chars.MaxFrequencyRank(cmd.Context())
	if err != nil {
		return false, fmt.Errorf("inspect character bank: %w", err)
	}
	return maxRank == 0, nil
}
