package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/binsave/pkg/store"
)

// keysCmd represents the keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List record keys in a pebble database",
	Long: `List every record key stored in the pebble database named by the
configuration. Only available with the pebble backend.

Example:
  binsave keys`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := sessionFrom(cmd)
		if err != nil {
			return err
		}

		target, ok := session.Target().(*store.PebbleTarget)
		if !ok {
			return fmt.Errorf("keys needs the %s backend, record is stored in %s", store.BackendPebble, session.Target())
		}

		keys, err := target.Keys()
		if err != nil {
			return err
		}
		for _, key := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), key)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
