package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/exply-app/exply/internal/config"
	mcpserver "github.com/exply-app/exply/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the explanation tools to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		client, err := buildClient(cfg)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "exply MCP server started on stdio (mode=%s)\n", cfg.Client.Mode)

		srv := mcpserver.NewServer(client)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
