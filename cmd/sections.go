package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Print the section registry in page order",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, reg, err := loadConfig()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLABEL\tROUTE\tON PAGE")
		for _, s := range reg.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", s.ID, s.Label, s.Route, !s.PageOnly)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}
