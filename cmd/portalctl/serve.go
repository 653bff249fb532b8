package main

import (
	"github.com/spf13/cobra"

	"github.com/noah-isme/placement-portal-api/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if migrate {
				if err := runMigrations(cmd.Context(), a); err != nil {
					return err
				}
			}
			srv, err := server.New(a.cfg, a.logger)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before serving")
	return cmd
}
