// Package stringtest builds expected multi-line strings for tests.
package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected frames row by row.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"",
//		"  @",
//		"",
//	) // -> "\n  @\n"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// Input removes one leading and one trailing newline from s, then removes the
// indentation common to all non-blank lines. Whitespace-only lines become
// empty.
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	indent := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}

		lines[i] = line[max(indent, 0):]
	}

	return strings.Join(lines, "\n")
}

// Frame is like [Input] for terminal frames, where leading spaces matter.
// Each line's content starts after its first '|'; trailing spaces are
// trimmed. Lines without a '|' are kept as empty rows.
//
// Example:
//
//	want := stringtest.Frame(`
//	    |
//	    |  @
//	    |`) // -> "\n  @\n"
func Frame(s string) string {
	s = strings.TrimPrefix(s, "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		_, row, ok := strings.Cut(line, "|")
		if !ok {
			row = ""
		}

		lines[i] = strings.TrimRight(row, " ")
	}

	return strings.Join(lines, "\n")
}
