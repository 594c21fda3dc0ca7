package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"socialsupport-backend/internal/artifacts"
	"socialsupport-backend/internal/ingest"
	"socialsupport-backend/internal/manifest"
	"socialsupport-backend/internal/shared/config"
	"socialsupport-backend/internal/shared/storage/db"
)

func newIngestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Ingest the manifest into the normalized record set",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			ctx := cmd.Context()

			entries, err := manifest.Load(filepath.Join(cfg.ProcessedDir, manifest.FileName))
			if err != nil {
				return err
			}

			store, err := artifacts.New(cfg.ProcessedDir)
			if err != nil {
				return err
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
			fmt.Fprintf(cmd.OutOrStdout(),
				"ingested %d document(s): %d transaction(s), %d credit report(s), %d asset entr(ies), %d resume(s), %d skipped\n",
				summary.Documents, summary.Transactions, summary.CreditReports,
				summary.AssetEntries, summary.Resumes, summary.SkippedEntries)
			return nil
		},
	}
}
