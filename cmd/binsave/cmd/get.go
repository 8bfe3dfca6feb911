package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/binsave/pkg/export"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <field>",
	Short: "Print a field value",
	Long: `Print a field of the stored record in export format.

Example:
  binsave get name`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := sessionFrom(cmd)
		if err != nil {
			return err
		}

		value, err := export.Field(session.Record(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
