package reporter

import (
	"context"
	"log/slog"

	"github.com/a-h/templ/lsp/protocol"
)

// Results maps a script path to its diagnostics.
type Results map[string][]protocol.Diagnostic

type Summary struct {
	Errors   int
	Warnings int
}

func (s Summary) Problems() int {
	return s.Errors + s.Warnings
}

type Reporter interface {
	Report(ctx context.Context, results Results) Summary
}

func summarize(s *Summary, d protocol.Diagnostic) {
	switch d.Severity {
	case protocol.DiagnosticSeverityWarning:
		s.Warnings++
	case protocol.DiagnosticSeverityError:
		s.Errors++
	}
}

func diagnosticSeverityToLogLevel(s protocol.DiagnosticSeverity) slog.Level {
	switch s {
	case protocol.DiagnosticSeverityInformation:
		return slog.LevelInfo
	case protocol.DiagnosticSeverityWarning:
		return slog.LevelWarn
	case protocol.DiagnosticSeverityError:
		return slog.LevelError
	case protocol.DiagnosticSeverityHint:
		return slog.LevelInfo
	}
	return slog.LevelInfo
}
