package reporter

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
)

// Default prints diagnostics grouped by file, followed by a summary line.
type Default struct {
	Out io.Writer
}

func (d *Default) Report(_ context.Context, results Results) Summary {
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	writer := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)
	summary := Summary{}
	for _, path := range slices.Sorted(maps.Keys(results)) {
		ds := results[path]
		if len(ds) == 0 {
			continue
		}
		fmt.Fprintln(out, path)
		for _, diag := range ds {
			summarize(&summary, diag)
			fmt.Fprintf(writer, "\t%d:%d\t%s\t\t%s\t%s\n", diag.Range.Start.Line+1, diag.Range.Start.Character+1, strings.ToLower(diag.Severity.String()), diag.Message, diag.Source)
		}
		writer.Flush()
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%d problems (%d errors, %d warnings)\n\n", summary.Problems(), summary.Errors, summary.Warnings)
	return summary
}
