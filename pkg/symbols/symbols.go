// Package symbols extracts the declarations of a GDScript file.
package symbols

import (
	"regexp"
	"strings"
)

type Position struct {
	Line      int `yaml:"line"`
	Character int `yaml:"character"`
}

// Symbols holds the class-level declarations of one script. Each map is keyed
// by name and keeps every position the name was declared at, so duplicates
// stay visible.
type Symbols struct {
	Path      string                `yaml:"path"`
	ClassName string                `yaml:"class_name,omitempty"`
	Extends   string                `yaml:"extends,omitempty"`
	Functions map[string][]Position `yaml:"functions,omitempty"`
	Variables map[string][]Position `yaml:"variables,omitempty"`
	Constants map[string][]Position `yaml:"constants,omitempty"`
	Signals   map[string][]Position `yaml:"signals,omitempty"`
	Enums     map[string][]Position `yaml:"enums,omitempty"`
}

func New(path string) *Symbols {
	return &Symbols{
		Path:      path,
		Functions: make(map[string][]Position),
		Variables: make(map[string][]Position),
		Constants: make(map[string][]Position),
		Signals:   make(map[string][]Position),
		Enums:     make(map[string][]Position),
	}
}

var (
	classNameRe = regexp.MustCompile(`^class_name\s+(\w+)`)
	extendsRe   = regexp.MustCompile(`^extends\s+("[^"]*"|\S+)`)
	funcRe      = regexp.MustCompile(`^(?:static\s+)?func\s+(\w+)\s*\(`)
	varRe       = regexp.MustCompile(`^(?:@\w+(?:\([^)]*\))?\s+)*(?:(?:export(?:\([^)]*\))?|onready)\s+)*(?:static\s+)?var\s+(\w+)`)
	constRe     = regexp.MustCompile(`^const\s+(\w+)`)
	signalRe    = regexp.MustCompile(`^signal\s+(\w+)`)
	enumRe      = regexp.MustCompile(`^enum\s+(\w+)`)
)

// Parse scans text for class-level declarations. Only unindented lines are
// considered; locals inside functions are not symbols of the script.
func Parse(path, text string) *Symbols {
	s := New(path)
	for i, raw := range Lines(text) {
		if raw == "" || raw[0] == ' ' || raw[0] == '\t' {
			continue
		}
		// Unindented, so offsets into line are offsets into raw.
		line := strings.TrimRight(StripComment(raw), " \t")
		if line == "" {
			continue
		}
		if m := classNameRe.FindStringSubmatch(line); m != nil {
			s.ClassName = m[1]
			continue
		}
		if m := extendsRe.FindStringSubmatch(line); m != nil {
			s.Extends = strings.Trim(m[1], `"`)
			continue
		}
		for _, d := range []struct {
			re   *regexp.Regexp
			into map[string][]Position
		}{
			{funcRe, s.Functions},
			{varRe, s.Variables},
			{constRe, s.Constants},
			{signalRe, s.Signals},
			{enumRe, s.Enums},
		} {
			loc := d.re.FindStringSubmatchIndex(line)
			if loc == nil {
				continue
			}
			name := line[loc[2]:loc[3]]
			d.into[name] = append(d.into[name], Position{Line: i, Character: loc[2]})
			break
		}
	}
	return s
}

// Defined reports whether name is declared at class level.
func (s *Symbols) Defined(name string) bool {
	if s == nil {
		return false
	}
	for _, m := range []map[string][]Position{s.Functions, s.Variables, s.Constants, s.Signals, s.Enums} {
		if _, ok := m[name]; ok {
			return true
		}
	}
	return false
}

// Lines splits text on newlines, dropping carriage returns.
func Lines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// StripComment removes a trailing '#' comment that is not inside a string
// literal.
func StripComment(line string) string {
	var quote rune
	escaped := false
	for i, r := range line {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && quote != 0:
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '#':
			return line[:i]
		}
	}
	return line
}
