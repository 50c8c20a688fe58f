package cmd

import (
	"log/slog"
	"os"

	"github.com/lavigneer/gdscript-lsp/pkg/config"
	"github.com/lavigneer/gdscript-lsp/pkg/mcp"
	mcp_golang "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport/stdio"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Runs an MCP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		slog.SetDefault(slog.New(newLogHandler(cmd)))

		cwd, _ := os.Getwd()
		workspaceRoot, err := config.FindWorkspaceRoot(cwd)
		if err != nil {
			workspaceRoot = cwd
		}
		cfg, err := config.NewWithDefaults(workspaceRoot)
		if err != nil {
			return err
		}
		server := mcp_golang.NewServer(stdio.NewStdioServerTransport())
		if err := mcp.New(workspaceRoot, cfg).Register(server); err != nil {
			return err
		}

		slog.Info("Serving MCP", "root", workspaceRoot)
		if err := server.Serve(); err != nil {
			return err
		}
		<-cmd.Context().Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
