package main

import (
	"yatube/internal/adapters/database"
	"yatube/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.OpenDB(settings)
			if err != nil {
				return err
			}
			defer config.CloseDB(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			config.Logger.Info("Database migrations completed", zap.String("driver", settings.DBDriver))
			return nil
		},
	}
}
