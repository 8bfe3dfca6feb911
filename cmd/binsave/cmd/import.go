package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/binsave/pkg/export"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import the record from YAML and persist it",
	Long: `Read a YAML mapping written by export and store every field. Fields that
are missing from the file are reset to zero. The record is persisted only when
every value parses.

Example:
  binsave import settings.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := sessionFrom(cmd)
		if err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open import file: %w", err)
		}
		defer file.Close()

		values, err := export.Decode(file)
		if err != nil {
			return err
		}
		rec := session.Record()
		if err := export.Import(rec, values); err != nil {
			return err
		}
		printTruncations(cmd, rec.TakeTruncations())

		if err := persist(session); err != nil {
			return err
		}
		cmd.Printf("Imported %d values from %s\n", len(values), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
