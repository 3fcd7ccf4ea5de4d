package main

import (
	"github.com/spf13/cobra"

	"example.com/edunotes/internal/db"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := db.Open(cmd.Context(), a.cfg.DBOptions())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}
			a.logger.Info("migrations applied", "driver", store.Dialect)
			return nil
		},
	}
}
