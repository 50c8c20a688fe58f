package lint

import (
	"slices"

	"github.com/a-h/templ/lsp/protocol"
	"github.com/lavigneer/gdscript-lsp/pkg/config"
	"github.com/lavigneer/gdscript-lsp/pkg/symbols"
	"github.com/lavigneer/gdscript-lsp/pkg/util"
)

// File is one script prepared for linting.
type File struct {
	Path    string
	Lines   []string
	Code    []string
	Symbols *symbols.Symbols
}

// NewFile splits text into lines. When syms is nil the symbols are parsed from
// text.
func NewFile(path, text string, syms *symbols.Symbols) *File {
	lines := symbols.Lines(text)
	code := make([]string, len(lines))
	for i, l := range lines {
		code[i] = symbols.StripComment(l)
	}
	if syms == nil {
		syms = symbols.Parse(path, text)
	}
	return &File{Path: path, Lines: lines, Code: code, Symbols: syms}
}

// line returns line i, or "" when symbols point past the end of the file.
func (f *File) line(i int) string {
	if i < 0 || i >= len(f.Lines) {
		return ""
	}
	return f.Lines[i]
}

type Linter interface {
	Check(file *File) []protocol.Diagnostic
	Enabled(settings config.Lint) bool
}

var linters = []Linter{
	&SemicolonLinter{},
	&MissingColonLinter{},
	&UnusedVariableLinter{},
	&DuplicateDefinitionLinter{},
	&MixedIndentationLinter{},
}

type Executor struct {
	settings config.Lint
	linters  []Linter
}

func New(settings config.Lint) *Executor {
	return &Executor{
		settings: settings,
		linters:  linters,
	}
}

// Lint runs every enabled linter over file and returns the diagnostics in
// document order.
func (e *Executor) Lint(file *File) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for _, l := range e.linters {
		if !l.Enabled(e.settings) {
			continue
		}
		diagnostics = append(diagnostics, l.Check(file)...)
	}
	slices.SortStableFunc(diagnostics, func(a, b protocol.Diagnostic) int {
		switch {
		case util.Less(a.Range.Start, b.Range.Start):
			return -1
		case util.Less(b.Range.Start, a.Range.Start):
			return 1
		}
		return 0
	})
	return diagnostics
}
