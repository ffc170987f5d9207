// Package indent finds the indentation of the line a directive sits on and
// re-indents multi-line content to match it.
package indent

import "strings"

// LineStart returns the byte offset where the line containing offset begins.
// Offsets outside the source are clamped.
func LineStart(source string, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	return strings.LastIndexByte(source[:offset], '\n') + 1
}

// Whitespace returns the run of spaces and tabs starting at offset at.
func Whitespace(source string, at int) string {
	if at < 0 || at >= len(source) {
		return ""
	}
	end := at
	for end < len(source) && (source[end] == ' ' || source[end] == '\t') {
		end++
	}
	return source[at:end]
}

// Of returns the leading whitespace of the line containing offset.
func Of(source string, offset int) string {
	return Whitespace(source, LineStart(source, offset))
}

// Apply prefixes every line of content after the first with prefix. The first
// line is prefixed only when indentFirst is set.
func Apply(content, prefix string, indentFirst bool) string {
	if prefix == "" {
		return content
	}
	lines := strings.Split(content, "\n")
	var b strings.Builder
	b.Grow(len(content) + len(prefix)*len(lines))
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i > 0 || indentFirst {
			b.WriteString(prefix)
		}
		b.WriteString(l)
	}
	return b.String()
}
