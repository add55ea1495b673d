package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/malabomap/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize malabomap configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the dataset, assets and port, and writes a .malabomap.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
