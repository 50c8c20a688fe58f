package cmd

import (
	"context"
	"log/slog"

	"github.com/lavigneer/gdscript-lsp/pkg/lsp"
	"github.com/spf13/cobra"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Execute the gdscript lsp",
	Run: func(cmd *cobra.Command, _ []string) {
		logHandler := newLogHandler(cmd)
		slog.SetDefault(slog.New(logHandler))
		logger := slog.NewLogLogger(logHandler, slog.LevelDebug)

		// Set up lsp handler and start
		slog.Info("Setting up gdscript lsp")
		handler := lsp.NewHandler(slog.Default())
		<-lsp.New(handler, logger).Start(context.Background())
		slog.Info("Connection closed")
	},
}

func init() {
	rootCmd.AddCommand(lspCmd)
}
