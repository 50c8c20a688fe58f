package lint

import (
	"strings"

	"github.com/a-h/templ/lsp/protocol"
	"github.com/lavigneer/gdscript-lsp/pkg/config"
	"github.com/lavigneer/gdscript-lsp/pkg/util"
)

type MixedIndentationLinter struct{}

func (l *MixedIndentationLinter) Enabled(settings config.Lint) bool {
	return settings.MixedIndentation
}

func (l *MixedIndentationLinter) Check(file *File) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for i, line := range file.Lines {
		if util.IsBlank(line) {
			continue
		}
		indent := util.Indentation(line)
		if strings.ContainsRune(indent, '\t') && strings.ContainsRune(indent, ' ') {
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Source:   "mixed-indentation",
				Message:  "Indentation mixes tabs and spaces",
				Severity: protocol.DiagnosticSeverityWarning,
				Range:    util.LineRange(i, line, 0, len(indent)),
			})
		}
	}
	return diagnostics
}
