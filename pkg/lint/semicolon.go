package lint

import (
	"strings"

	"github.com/a-h/templ/lsp/protocol"
	"github.com/lavigneer/gdscript-lsp/pkg/config"
	"github.com/lavigneer/gdscript-lsp/pkg/util"
)

type SemicolonLinter struct{}

func (l *SemicolonLinter) Enabled(settings config.Lint) bool {
	return settings.Semicolon
}

func (l *SemicolonLinter) Check(file *File) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for i, code := range file.Code {
		trimmed := strings.TrimRight(code, " \t")
		if !strings.HasSuffix(trimmed, ";") {
			continue
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Source:   "semicolon",
			Message:  "Statement contains a semicolon",
			Severity: protocol.DiagnosticSeverityWarning,
			Range:    util.LineRange(i, code, len(trimmed)-1, len(trimmed)),
		})
	}
	return diagnostics
}
