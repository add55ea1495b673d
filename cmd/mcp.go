package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/malabomap/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the country dataset to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		// Only the dataset matters here; page bundles are not required.
		seq := newSequence(cfg, logger)
		seq.CoreAssets, seq.EnhancementAssets, seq.ParticlesSource = nil, nil, ""
		res, err := seq.Run(context.Background())
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "malabomap MCP server started on stdio (countries=%d)\n", len(res.Dataset.Countries))

		srv := mcpserver.NewServer(res.Dataset)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
