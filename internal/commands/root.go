package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "etl",
		Short: "Social-support document ETL pipeline",
		Long: `Extracts uploaded applicant documents into tabular and text artifacts,
ingests them into the normalized record set and computes per-applicant
features for the recommendation stage.`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newIngestCommand())
	rootCmd.AddCommand(newFeaturesCommand())
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newMigrateCommand())

	return rootCmd
}
