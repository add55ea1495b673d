package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/malabomap/internal/atlas"
	"github.com/ziadkadry99/malabomap/internal/boot"
)

var validateCmd = &cobra.Command{
	Use:   "validate [source]",
	Short: "Check a country dataset",
	Long: `Fetches and validates the dataset (the configured data_source, or the
given file or URL), prints its warnings and a per-category summary, and
exits non-zero when validation fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		source := cfg.DataSource
		if len(args) == 1 {
			source = args[0]
		}

		data, err := boot.NewSourceFetcher().Fetch(context.Background(), source)
		if err != nil {
			return err
		}
		ds, err := atlas.Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		if err := ds.Validate(); err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}

		out := cmd.OutOrStdout()
		for _, w := range ds.Warnings() {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		fmt.Fprintf(out, "%s: %d countries, %d tags\n", source, len(ds.Countries), len(ds.Metadata.Tags))
		counts := ds.CategoryCounts(atlas.NewTagSet())
		for _, cat := range ds.OrderedCategories() {
			fmt.Fprintf(out, "  %-12s %d\n", ds.CategoryLabel(cat), counts[cat])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
