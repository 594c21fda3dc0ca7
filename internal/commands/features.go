package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"socialsupport-backend/internal/features"
	"socialsupport-backend/internal/records"
	"socialsupport-backend/internal/shared/config"
	"socialsupport-backend/internal/shared/storage/db"
)

func newFeaturesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "Recompute per-applicant features from the normalized record set",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			ctx := cmd.Context()

			database, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultPipelineOptions()))
			if err != nil {
				return err
			}
			defer database.Close()

			svc := features.NewService(&records.PGRepo{DB: database})
			count, err := svc.ComputeAll(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "computed features for %d applicant(s)\n", count)
			return nil
		},
	}
}
