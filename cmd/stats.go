package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzimem/internal/learner"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd, nil)
		if err != nil {
			return err
		}
		defer eng.Close()

		ctx := cmd.Context()
		now := time.Now()

		seen, err := eng.states.SeenCharacters(ctx, eng.cfg.Learner)
		if err != nil {
			return fmt.Errorf("load seen characters: %w", err)
		}
		due, err := eng.states.DueBefore(ctx, eng.cfg.Learner, now)
		if err != nil {
			return fmt.Errorf("load due characters: %w", err)
		}

		counts := map[learner.Category]int{}
		for ch := range seen {
			st, err := eng.states.Get(ctx, eng.cfg.Learner, ch)
			if err != nil {
				continue
			}
			counts[st.Category()]++
		}

		fmt.Printf("Learner: %s\n", eng.cfg.Learner)
		fmt.Printf("  Seen:        %d\n", len(seen))
		fmt.Printf("  New:         %d\n", counts[learner.CategoryNew])
		fmt.Printf("  Confirming:  %d\n", counts[learner.CategoryConfirm])
		fmt.Printf("  Revising:    %d\n", counts[learner.CategoryRevise])
		fmt.Printf("  Due now:     %d\n", len(due))
		return nil
	},
}
