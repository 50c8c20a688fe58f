package reporter

import (
	"context"
	"log/slog"
	"maps"
	"slices"
)

// Log emits one record per diagnostic, at a level matching its severity.
type Log struct {
	Logger *slog.Logger
}

func (l *Log) Report(ctx context.Context, results Results) Summary {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	summary := Summary{}
	for _, path := range slices.Sorted(maps.Keys(results)) {
		for _, d := range results[path] {
			summarize(&summary, d)
			logger.Log(ctx, diagnosticSeverityToLogLevel(d.Severity), d.Message,
				"path", path,
				"line", d.Range.Start.Line+1,
				"character", d.Range.Start.Character+1,
				"source", d.Source,
			)
		}
	}
	logger.Info("Lint finished", "errors", summary.Errors, "warnings", summary.Warnings)
	return summary
}
