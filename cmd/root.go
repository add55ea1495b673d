package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/malabomap/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "malabomap",
	Short: "Interactive map of Malabo Convention ratification across Africa",
	Long: `Malabomap serves an interactive choropleth of African countries coloured
by their Malabo Convention status, with national strategy filters, a
country list and per-country detail. It can also export the map as a
static site and expose the dataset to AI agents over MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
