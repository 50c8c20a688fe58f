package reporter

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/a-h/templ/lsp/protocol"
	"github.com/lavigneer/gdscript-lsp/pkg/util"
	"github.com/stretchr/testify/assert"
)

var results = Results{
	"b.gd": {
		{Source: "missing-colon", Message: "':' expected at end of the line", Severity: protocol.DiagnosticSeverityError, Range: util.LineRange(3, 0, 4)},
	},
	"a.gd": {
		{Source: "semicolon", Message: "Statement contains a semicolon", Severity: protocol.DiagnosticSeverityWarning, Range: util.LineRange(0, 5, 6)},
	},
	"clean.gd": {},
}

func TestDefaultReport(t *testing.T) {
	var out bytes.Buffer
	summary := (&Default{Out: &out}).Report(context.Background(), results)

	assert.Equal(t, Summary{Errors: 1, Warnings: 1}, summary)
	text := out.String()
	assert.Contains(t, text, "2 problems (1 errors, 1 warnings)")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("a.gd")), bytes.Index(out.Bytes(), []byte("b.gd")))
	assert.Contains(t, text, "1:6")
	assert.NotContains(t, text, "clean.gd")
}

func TestLogReport(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, nil))
	summary := (&Log{Logger: logger}).Report(context.Background(), results)

	assert.Equal(t, 2, summary.Problems())
	assert.Contains(t, out.String(), "level=WARN msg=\"Statement contains a semicolon\" path=a.gd")
	assert.Contains(t, out.String(), "level=ERROR")
}
