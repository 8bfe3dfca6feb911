package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// layoutCmd represents the layout command
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the compiled record layout",
	Long: `Print every field of the configured schema with its storage type, element
count, byte offset and byte length.

Example:
  binsave layout`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := sessionFrom(cmd)
		if err != nil {
			return err
		}
		schema := session.Record().Schema()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTYPE\tCOUNT\tOFFSET\tLENGTH")
		for _, slot := range schema.Slots() {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", slot.Name, slot.Type, slot.Count, slot.Offset, slot.Length)
		}
		fmt.Fprintf(w, "\t\t\ttotal\t%d\n", schema.Size())
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
}
