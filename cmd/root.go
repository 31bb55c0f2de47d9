package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hanzimem",
	Short: "Terminal trainer for Chinese character readings",
	Long:  "Hanzimem — spaced-repetition practice of hanzi pinyin readings in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides HANZIMEM_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides HANZIMEM_CONFIG env var)")
	rootCmd.PersistentFlags().String("learner", "", "Learner id (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
