package util

import (
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/a-h/templ/lsp/protocol"
)

// LineRange returns the range covering bytes [start, end) of text, the
// contents of line. Positions count UTF-16 code units.
func LineRange(line int, text string, start, end int) protocol.Range {
	//nolint:gosec
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line), Character: uint32(UTF16Offset(text, start))},
		End:   protocol.Position{Line: uint32(line), Character: uint32(UTF16Offset(text, end))},
	}
}

// WordRange returns the range of word starting at byte start of text.
func WordRange(line int, text string, start int, word string) protocol.Range {
	return LineRange(line, text, start, start+len(word))
}

// UTF16Offset converts a byte offset into text to UTF-16 code units. Offsets
// outside text are clamped.
func UTF16Offset(text string, offset int) int {
	offset = min(max(offset, 0), len(text))
	units := 0
	for _, r := range text[:offset] {
		if n := utf16.RuneLen(r); n > 0 {
			units += n
		} else {
			units++
		}
	}
	return units
}

// Indentation returns the leading whitespace of line.
func Indentation(line string) string {
	return line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
}

// IsBlank reports whether line has no code, ignoring whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// Less orders positions top to bottom, left to right.
func Less(a, b protocol.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Character < b.Character
}
