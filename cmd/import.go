package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzimem/internal/charmeta"
)

var importCmd = &cobra.Command{
	Use:   "import <dataset.json>",
	Short: "Import a character metadata dataset",
	Long: `Import validates a JSON character dataset against the expected schema
and loads it into the character bank. Existing characters are replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd, nil)
		if err != nil {
			return err
		}
		defer eng.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()

		n, err := charmeta.Import(cmd.Context(), eng.chars, f)
		if err != nil {
			return fmt.Errorf("import dataset: %w", err)
		}
		fmt.Printf("Imported %d characters into %s\n", n, eng.cfg.DBPath)
		return nil
	},
}
