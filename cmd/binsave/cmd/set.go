package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/binsave/pkg/codec"
	"github.com/ssargent/binsave/pkg/export"
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set a field value and persist the record",
	Long: `Parse a value in export format, store it in the named field and persist
the record. Values longer than the field are truncated and reported.

Examples:
  binsave set counter 42
  binsave set flags "true;false;false;false;false;false;false;true"
  binsave set name hello`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := sessionFrom(cmd)
		if err != nil {
			return err
		}

		rec := session.Record()
		if err := export.SetField(rec, args[0], args[1]); err != nil {
			return err
		}
		printTruncations(cmd, rec.TakeTruncations())

		return persist(session)
	},
}

func printTruncations(cmd *cobra.Command, truncations []codec.Truncation) {
	for _, t := range truncations {
		cmd.Printf("⚠️  truncated %s\n", t)
	}
}

func init() {
	rootCmd.AddCommand(setCmd)
}
