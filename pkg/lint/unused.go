package lint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/a-h/templ/lsp/protocol"
	"github.com/lavigneer/gdscript-lsp/pkg/config"
	"github.com/lavigneer/gdscript-lsp/pkg/util"
)

var (
	funcHeaderRe = regexp.MustCompile(`^\s*(?:static\s+)?func\s+\w+`)
	localVarRe   = regexp.MustCompile(`^\s+var\s+(\w+)`)
)

// UnusedVariableLinter flags function locals that are never read after their
// declaration. Names starting with '_' are exempt.
type UnusedVariableLinter struct{}

func (l *UnusedVariableLinter) Enabled(settings config.Lint) bool {
	return settings.UnusedVariable
}

func (l *UnusedVariableLinter) Check(file *File) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for start := 0; start < len(file.Code); start++ {
		if !funcHeaderRe.MatchString(file.Code[start]) {
			continue
		}
		end := functionEnd(file, start)
		diagnostics = append(diagnostics, l.checkBody(file, start+1, end)...)
	}
	return diagnostics
}

func (l *UnusedVariableLinter) checkBody(file *File, from, to int) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for i := from; i < to; i++ {
		loc := localVarRe.FindStringSubmatchIndex(file.Code[i])
		if loc == nil {
			continue
		}
		name := file.Code[i][loc[2]:loc[3]]
		if strings.HasPrefix(name, "_") {
			continue
		}
		used := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		referenced := false
		for j := i + 1; j < to && !referenced; j++ {
			referenced = used.MatchString(file.Code[j])
		}
		if referenced {
			continue
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Source:   "unused-variable",
			Message:  fmt.Sprintf("%q is never used", name),
			Severity: protocol.DiagnosticSeverityWarning,
			Range:    util.WordRange(i, file.Lines[i], loc[2], name),
		})
	}
	return diagnostics
}

// functionEnd returns the index of the first line after the body of the
// function declared on line start.
func functionEnd(file *File, start int) int {
	indent := len(util.Indentation(file.Lines[start]))
	end := start + 1
	for i := start + 1; i < len(file.Lines); i++ {
		if util.IsBlank(file.Code[i]) {
			continue
		}
		if len(util.Indentation(file.Lines[i])) <= indent {
			break
		}
		end = i + 1
	}
	return end
}
