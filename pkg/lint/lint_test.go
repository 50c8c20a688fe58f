package lint

import (
	"testing"

	"github.com/a-h/templ/lsp/protocol"
	"github.com/lavigneer/gdscript-lsp/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sources(diagnostics []protocol.Diagnostic) []string {
	out := make([]string, len(diagnostics))
	for i, d := range diagnostics {
		out[i] = d.Source
	}
	return out
}

func TestLinters(t *testing.T) {
	tests := []struct {
		name     string
		linter   Linter
		text     string
		expected []protocol.Range
	}{
		{
			name:     "semicolon at end of statement",
			linter:   &SemicolonLinter{},
			text:     "func f():\n\tprint(1);\n\tprint(\";\") # ;\n",
			expected: []protocol.Range{{Start: protocol.Position{Line: 1, Character: 9}, End: protocol.Position{Line: 1, Character: 10}}},
		},
		{
			name:     "semicolon after non-ascii text",
			linter:   &SemicolonLinter{},
			text:     "func f():\n\tprint(\"é😀\");\n",
			expected: []protocol.Range{{Start: protocol.Position{Line: 1, Character: 13}, End: protocol.Position{Line: 1, Character: 14}}},
		},
		{
			name:     "missing colon after if",
			linter:   &MissingColonLinter{},
			text:     "func f():\n\tif true\n\t\tpass\n\telse:\n\t\tpass\n",
			expected: []protocol.Range{{Start: protocol.Position{Line: 1, Character: 1}, End: protocol.Position{Line: 1, Character: 8}}},
		},
		{
			name:     "multi-line header with colon",
			linter:   &MissingColonLinter{},
			text:     "func f(a: int,\n\t\tb: int) -> void:\n\tif (a and\n\t\tb): pass\n",
			expected: nil,
		},
		{
			name:     "colon only inside brackets",
			linter:   &MissingColonLinter{},
			text:     "for k in {\"a\": 1}\n\tpass\n",
			expected: []protocol.Range{{Start: protocol.Position{Line: 0, Character: 0}, End: protocol.Position{Line: 0, Character: 17}}},
		},
		{
			name:     "unused local",
			linter:   &UnusedVariableLinter{},
			text:     "func f():\n\tvar a = 1\n\tvar b = 2\n\tvar _c = 3\n\tprint(b)\n\nfunc g():\n\tprint(a)\n",
			expected: []protocol.Range{{Start: protocol.Position{Line: 1, Character: 5}, End: protocol.Position{Line: 1, Character: 6}}},
		},
		{
			name:     "duplicate function",
			linter:   &DuplicateDefinitionLinter{},
			text:     "func f():\n\tpass\nfunc f():\n\tpass\n",
			expected: []protocol.Range{{Start: protocol.Position{Line: 2, Character: 5}, End: protocol.Position{Line: 2, Character: 6}}},
		},
		{
			name:     "tabs and spaces",
			linter:   &MixedIndentationLinter{},
			text:     "func f():\n\t pass\n\tpass\n",
			expected: []protocol.Range{{Start: protocol.Position{Line: 1, Character: 0}, End: protocol.Position{Line: 1, Character: 2}}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			diagnostics := test.linter.Check(NewFile("test.gd", test.text, nil))
			ranges := make([]protocol.Range, 0, len(diagnostics))
			for _, d := range diagnostics {
				ranges = append(ranges, d.Range)
			}
			if test.expected == nil {
				assert.Empty(t, ranges)
				return
			}
			assert.Equal(t, test.expected, ranges)
		})
	}
}

func TestExecutorRespectsSettingsAndOrders(t *testing.T) {
	text := "func f():\n\tvar a = 1;\n\tif true\n\t\tpass\n"

	all := New(config.DefaultLint()).Lint(NewFile("test.gd", text, nil))
	require.Len(t, all, 3)
	assert.Equal(t, []string{"unused-variable", "semicolon", "missing-colon"}, sources(all))

	settings := config.DefaultLint()
	settings.Semicolon = false
	settings.MissingColon = false
	some := New(settings).Lint(NewFile("test.gd", text, nil))
	assert.Equal(t, []string{"unused-variable"}, sources(some))
}
