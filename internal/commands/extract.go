package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"socialsupport-backend/internal/artifacts"
	"socialsupport-backend/internal/extract"
	"socialsupport-backend/internal/shared/config"
)

func newExtractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Extract raw documents into artifacts and write the manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			store, err := artifacts.New(cfg.ProcessedDir)
			if err != nil {
				return err
			}

			entries, stats, err := extract.Run(cmd.Context(), cfg.RawDir, store)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "extracted %d file(s) into %d manifest entr(ies), %d failed\n",
				stats.Processed, len(entries), stats.Failed)
			return nil
		},
	}
}
