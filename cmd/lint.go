package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lavigneer/gdscript-lsp/pkg/config"
	"github.com/lavigneer/gdscript-lsp/pkg/lint"
	"github.com/lavigneer/gdscript-lsp/pkg/reporter"
	"github.com/spf13/cobra"
)

var ErrLintFailed = errors.New("lint found errors")

// lintCmd represents the lint command
var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint the GDScript files of a project",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		if len(args) == 0 {
			args = []string{workspaceRoot}
		}
		paths, err := lint.ScriptPaths(args)
		if err != nil {
			return err
		}

		results, err := lint.New(cfg.Lint).LintPaths(cmd.Context(), paths)
		if err != nil {
			slog.Error("Could not lint project", "root", workspaceRoot, "error", err)
			return err
		}

		var rep reporter.Reporter = &reporter.Default{Out: cmd.OutOrStdout()}
		if format, _ := cmd.Flags().GetString("format"); format == "log" {
			rep = &reporter.Log{Logger: slog.Default()}
		}
		summary := rep.Report(cmd.Context(), reporter.Results(results))
		if summary.Errors > 0 {
			return fmt.Errorf("%w: %d errors", ErrLintFailed, summary.Errors)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().String("format", "text", "Output format: text or log")
}
