package parser

import (
	"strings"
	"unicode"
)

// ParseLine splits one CSV line into trimmed cells.
//
// A double quote toggles quoting and is never copied into a cell, so commas
// inside a quoted section stay part of the cell. There is no escape for a
// literal quote: `"a""b"` yields `ab`. After trimming, one leading and one
// trailing quote are removed from each cell.
func ParseLine(line string) []string {
	var (
		cells   []string
		current strings.Builder
		quoted  bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			cells = append(cells, cleanCell(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	cells = append(cells, cleanCell(current.String()))

	return cells
}

func cleanCell(cell string) string {
	cell = trim(cell)
	cell = strings.TrimPrefix(cell, `"`)
	return strings.TrimSuffix(cell, `"`)
}

// trim removes surrounding whitespace, including the carriage return left by
// CRLF exports and the byte order mark some exports put before the header.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

// splitLines splits text on '\n' and drops lines that are blank once trimmed.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if trim(l) == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
