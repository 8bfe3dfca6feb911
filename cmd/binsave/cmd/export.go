package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/binsave/pkg/export"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the record as YAML",
	Long: `Write every field of the record as a YAML mapping of text values, in
declaration order.

Examples:
  binsave export
  binsave export --out settings.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		session, err := sessionFrom(cmd)
		if err != nil {
			return err
		}

		if out == "" {
			return export.Encode(cmd.OutOrStdout(), session.Record())
		}

		file, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		if err := export.Encode(file, session.Record()); err != nil {
			_ = file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close export file: %w", err)
		}

		cmd.Printf("Exported %d fields to %s\n", len(export.Names(session.Record().Schema())), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout")
}
