package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/hanzimem/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd, nil)
		if err != nil {
			return err
		}
		defer eng.Close()

		svc := api.New(eng.controller, eng.log)
		e := svc.Router()

		eng.log.Info("listening", "addr", eng.cfg.ListenAddr)
		return e.Start(eng.cfg.ListenAddr)
	},
}
