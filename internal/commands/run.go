package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"socialsupport-backend/internal/artifacts"
	"socialsupport-backend/internal/extract"
	"socialsupport-backend/internal/features"
	"socialsupport-backend/internal/ingest"
	"socialsupport-backend/internal/records"
	"socialsupport-backend/internal/shared/config"
	"socialsupport-backend/internal/shared/metrics"
	"socialsupport-backend/internal/shared/storage/db"
	"socialsupport-backend/internal/shared/telemetry"
)

func newRunCommand() *cobra.Command {
	var showMetrics bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: extract, ingest, compute features",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			ctx := cmd.Context()

			store, err := artifacts.New(cfg.ProcessedDir)
			if err != nil {
				return err
			}

			entries, stats, err := extract.Run(ctx, cfg.RawDir, store)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return fmt.Errorf("no raw files could be processed (%d failed)", stats.Failed)
			}

			database, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultPipelineOptions()))
			if err != nil {
				return err
			}
			defer database.Close()

			summary, err := ingest.RunInTransaction(ctx, database, store, entries)
			if err != nil {
				return err
			}

			svc := features.NewService(&records.PGRepo{DB: database})
			applicants, err := svc.ComputeAll(ctx)
			if err != nil {
				return err
			}

			telemetry.Info("pipeline.complete", map[string]any{
				"run_id":     summary.RunID,
				"documents":  summary.Documents,
				"skipped":    summary.SkippedEntries,
				"applicants": applicants,
			})
			if showMetrics {
				fmt.Fprint(cmd.OutOrStdout(), metrics.Render())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print pipeline metrics after the run")
	return cmd
}
