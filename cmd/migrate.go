package cmd

import (
	"student-housing/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.InitDB(config.Database)
			if err != nil {
				logger.Error("Failed to connect to database", zap.Error(err))
				return err
			}
			defer db.Close()

			if err := database.Migrate(cmd.Context(), db, logger); err != nil {
				logger.Error("Migration failed", zap.Error(err))
				return err
			}

			logger.Info("Database schema is up to date")
			return nil
		},
	}
}
