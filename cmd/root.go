package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "gdscript-lsp",
	Short:        "Language server and linter for GDScript",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Sets logging to verbose")
}

// newLogHandler logs to stderr since stdout may be carrying the protocol.
func newLogHandler(cmd *cobra.Command) slog.Handler {
	debugFlag, _ := cmd.Flags().GetBool("verbose")
	logLevel := slog.LevelInfo
	if debugFlag {
		logLevel = slog.LevelDebug
	}
	return slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
}
