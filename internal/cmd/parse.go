package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bitzorro/relstring/internal/match"
)

var (
	parseShowType string
	parseCompact  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse NAME...",
	Short: "Parse one or more release names and print the results as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hint, err := match.ParseShowType(parseShowType)
		if err != nil {
			return err
		}
		p := newParser()
		enc := json.NewEncoder(os.Stdout)
		if !parseCompact {
			enc.SetIndent("", "  ")
		}
		for _, name := range args {
			result := resolveShowType(p, name, hint)
			if err := enc.Encode(result); err != nil {
				return fmt.Errorf("encoding result for %q: %w", name, err)
			}
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseShowType, "type", "", "show type hint: regular or anime")
	parseCmd.Flags().BoolVar(&parseCompact, "compact", false, "one JSON object per line instead of indented output")
	rootCmd.AddCommand(parseCmd)
}
