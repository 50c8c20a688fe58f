package lint

import (
	"iter"
	"strings"

	"github.com/a-h/templ/lsp/protocol"
	"github.com/lavigneer/gdscript-lsp/pkg/config"
	"github.com/lavigneer/gdscript-lsp/pkg/util"
)

var blockKeywords = map[string]bool{
	"if":    true,
	"elif":  true,
	"else":  true,
	"for":   true,
	"while": true,
	"func":  true,
	"class": true,
	"match": true,
}

type MissingColonLinter struct{}

func (l *MissingColonLinter) Enabled(settings config.Lint) bool {
	return settings.MissingColon
}

func (l *MissingColonLinter) Check(file *File) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	var (
		stmt  strings.Builder
		start = -1
		depth = 0
	)
	for i, code := range file.Code {
		trimmed := strings.TrimRight(code, " \t")
		if start < 0 {
			if util.IsBlank(trimmed) {
				continue
			}
			start = i
			stmt.Reset()
		}
		stmt.WriteString(strings.TrimSuffix(trimmed, "\\"))
		stmt.WriteByte(' ')
		depth += bracketDelta(trimmed)
		if depth > 0 || strings.HasSuffix(trimmed, "\\") {
			continue
		}

		text := stmt.String()
		if isBlockStatement(text) && !hasTopLevelColon(text) {
			indent := len(util.Indentation(file.Lines[start]))
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Source:   "missing-colon",
				Message:  "':' expected at end of the line",
				Severity: protocol.DiagnosticSeverityError,
				Range:    util.LineRange(start, file.Lines[start], indent, len(strings.TrimRight(file.Code[start], " \t"))),
			})
		}
		start, depth = -1, 0
	}
	return diagnostics
}

func isBlockStatement(stmt string) bool {
	fields := strings.FieldsFunc(stmt, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ':' || r == '('
	})
	if len(fields) == 0 {
		return false
	}
	if fields[0] == "static" && len(fields) > 1 {
		return fields[1] == "func"
	}
	return blockKeywords[fields[0]]
}

func hasTopLevelColon(stmt string) bool {
	depth := 0
	for _, r := range outsideStrings(stmt) {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ':':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

func bracketDelta(code string) int {
	delta := 0
	for _, r := range outsideStrings(code) {
		switch r {
		case '(', '[', '{':
			delta++
		case ')', ']', '}':
			delta--
		}
	}
	return delta
}

// outsideStrings yields the runes of code that are not part of a string
// literal, quotes included.
func outsideStrings(code string) iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		var quote rune
		escaped := false
		for i, r := range code {
			switch {
			case escaped:
				escaped = false
			case quote != 0:
				if r == '\\' {
					escaped = true
				} else if r == quote {
					quote = 0
				}
			case r == '"' || r == '\'':
				quote = r
			default:
				if !yield(i, r) {
					return
				}
			}
		}
	}
}
