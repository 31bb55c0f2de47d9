package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase a learner's progress",
	Long:  "Reset deletes the learner's answer history and review schedule. Character metadata is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd, nil)
		if err != nil {
			return err
		}
		defer eng.Close()

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Printf("Erase all progress for learner %q? [y/N] ", eng.cfg.Learner)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		n, err := eng.states.DeleteLearner(cmd.Context(), eng.cfg.Learner)
		if err != nil {
			return fmt.Errorf("reset learner: %w", err)
		}
		fmt.Printf("Removed %d character records for %q\n", n, eng.cfg.Learner)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
}
