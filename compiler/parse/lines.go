// Package parse turns essence source text into an AST.
//
// Parsing happens in two steps. Lines splits the input into trimmed,
// non-empty physical lines. Build folds those lines over an ordered
// directive table, first match wins, producing an *ast.AST.
//
// Lines that match no directive, and lines whose directive prefix matches
// but whose arguments do not, leave the AST untouched. They are reported as
// Warnings and never cause an error. Note that a malformed line is dropped
// as a whole: "whisper: connect to not-quoted" does not set the URL.
package parse

import "strings"

// Line is one directive candidate.
type Line struct {
	Num  int    // 1-based line number in the source.
	Text string // trimmed text.
}

// Lines splits src into trimmed, non-empty lines. Directives never span
// lines and there is no comment syntax.
func Lines(src string) []Line {
	var lines []Line
	for i, raw := range strings.Split(src, "\n") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		lines = append(lines, Line{Num: i + 1, Text: text})
	}
	return lines
}
