package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/malabomap/internal/export"
	"github.com/ziadkadry99/malabomap/internal/progress"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the map as a static site",
	Long: `Runs the startup sequence, then writes index.html, map.svg, one modal
fragment per country and the assets matching the export globs. The exported
page works without a server: selection and the sidebar run in the browser.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if exportDir != "" {
			cfg.Export.Dir = exportDir
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		res, err := runBoot(context.Background(), cfg, logger)
		if err != nil {
			return err
		}

		sum, err := export.Run(res, export.Options{
			Dir:               cfg.Export.Dir,
			Title:             cfg.Title,
			Assets:            os.DirFS(cfg.AssetsDir),
			AssetGlobs:        cfg.Export.Assets,
			CoreAssets:        cfg.Assets.Core,
			EnhancementAssets: cfg.Assets.Enhancement,
			MapOptions:        cfg.MapOptions(),
			Breakpoint:        cfg.Map.Breakpoint,
			Reporter:          progress.NewReporter("Exporting site"),
			Logger:            logger,
		})
		if err != nil {
			return fmt.Errorf("exporting: %w", err)
		}

		fmt.Printf("Exported %d countries and %d assets to %s\n", sum.Countries, sum.Assets, cfg.Export.Dir)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "", "Output directory (overrides export.dir)")
	rootCmd.AddCommand(exportCmd)
}
