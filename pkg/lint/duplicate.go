package lint

import (
	"fmt"
	"maps"
	"slices"

	"github.com/a-h/templ/lsp/protocol"
	"github.com/lavigneer/gdscript-lsp/pkg/config"
	"github.com/lavigneer/gdscript-lsp/pkg/symbols"
	"github.com/lavigneer/gdscript-lsp/pkg/util"
)

type DuplicateDefinitionLinter struct{}

func (l *DuplicateDefinitionLinter) Enabled(settings config.Lint) bool {
	return settings.DuplicateDefinition
}

func (l *DuplicateDefinitionLinter) Check(file *File) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	s := file.Symbols
	if s == nil {
		return diagnostics
	}
	for _, kind := range []struct {
		name string
		defs map[string][]symbols.Position
	}{
		{"function", s.Functions},
		{"variable", s.Variables},
		{"constant", s.Constants},
		{"signal", s.Signals},
		{"enum", s.Enums},
	} {
		for _, name := range slices.Sorted(maps.Keys(kind.defs)) {
			positions := kind.defs[name]
			for _, p := range positions[1:] {
				diagnostics = append(diagnostics, protocol.Diagnostic{
					Source:   "duplicate-definition",
					Message:  fmt.Sprintf("%s %q is already defined on line %d", kind.name, name, positions[0].Line+1),
					Severity: protocol.DiagnosticSeverityError,
					Range:    util.WordRange(p.Line, file.line(p.Line), p.Character, name),
				})
			}
		}
	}
	return diagnostics
}
