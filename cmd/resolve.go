package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/karthikurao/portfolio/internal/scrollspy"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [geometry.json]",
	Short: "Resolve the active section for a geometry snapshot",
	Long: `Reads a geometry snapshot (the body accepted by POST /api/scrollspy/resolve)
from a file, or stdin when no file is given, and prints the active section.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, reg, err := loadConfig()
		if err != nil {
			return err
		}

		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		var q scrollspy.Query
		if err := json.NewDecoder(in).Decode(&q); err != nil {
			return fmt.Errorf("decode geometry: %w", err)
		}
		res := scrollspy.Evaluate(reg, cfg.ScrollSpy, q)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		for _, s := range res.Samples {
			fmt.Fprintf(cmd.ErrOrStderr(), "%-10s top=%7.1f bottom=%7.1f ratio=%.3f\n", s.SectionID, s.TopOffset, s.BottomOffset, s.VisibleRatio)
		}
		active := res.Active
		if active == "" {
			active = "(none)"
		}
		fmt.Fprintln(cmd.OutOrStdout(), active)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().Bool("json", false, "print the full result as JSON")
}
