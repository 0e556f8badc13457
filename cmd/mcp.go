package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docfind/internal/index"
	mcpserver "github.com/ziadkadry99/docfind/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing knowledge-base search tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		docs, idx, err := loadSnapshot(ctx, database)
		if err != nil {
			if errors.Is(err, index.ErrEmptyCorpus) {
				return fmt.Errorf("no index found: %w\nRun `docfind index` first", err)
			}
			return err
		}
		holder := index.NewHolder(docs, idx)

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "docfind MCP server started on stdio (documents=%d)\n", idx.DocCount())

		return mcpserver.NewServer(holder).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
