package cmd

import (
	"os"

	"github.com/dotcommander/aeoscore/internal/output"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the json report format",
	Long: `Prints a JSON Schema describing the document written by --format json,
for consumers that validate or generate types from reports.`,
	Example: `  aeoscore schema -o aeoscore-report.schema.json`,
	Args:    cobra.NoArgs,
	Run: runE(func(cmd *cobra.Command, args []string) error {
		return output.WriteSchema(os.Stdout, outputFile)
	}),
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
