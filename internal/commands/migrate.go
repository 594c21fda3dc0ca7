package commands

import (
	"github.com/spf13/cobra"

	"socialsupport-backend/internal/shared/config"
	"socialsupport-backend/internal/shared/storage/db"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			ctx := cmd.Context()

			database, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
			if err != nil {
				return err
			}
			defer database.Close()

			return db.RunMigrations(ctx, database)
		},
	}
}
