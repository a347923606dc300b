package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/finchat-dev/finchat/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the assistant and knowledge base search as tools for agent hosts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// Stdout carries protocol messages; everything else goes to stderr.
		log := initLogger(cfg)

		provider, err := newProvider(cfg)
		if err != nil {
			return err
		}

		a, err := newAssistant(cfg, provider, log)
		if err != nil {
			return err
		}
		engine := loadEngine(ctx, cfg, log)
		if engine != nil {
			a.SwapEngine(engine)
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "finchat MCP server started on stdio (intents=%d, knowledge=%t)\n",
			len(a.Intents()), engine != nil)

		srv := mcpserver.NewServer(a, engine)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
