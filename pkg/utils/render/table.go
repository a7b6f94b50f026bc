// Package render draws plain-text tables for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table writes headers and rows inside a rounded outline.
// Rows shorter than the header are padded with empty cells.
func Table(w io.Writer, headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		if len(row) > len(headers) {
			return fmt.Errorf("row has %d cells but the table has %d columns", len(row), len(headers))
		}
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	var b strings.Builder
	rule(&b, widths, "╭", "┬", "╮")
	line(&b, widths, headers)
	rule(&b, widths, "├", "┼", "┤")
	for _, row := range rows {
		line(&b, widths, row)
	}
	rule(&b, widths, "╰", "┴", "╯")

	_, err := io.WriteString(w, b.String())
	return err
}

func rule(b *strings.Builder, widths []int, left, middle, right string) {
	b.WriteString(left)
	for i, width := range widths {
		if i > 0 {
			b.WriteString(middle)
		}
		b.WriteString(strings.Repeat("─", width+2))
	}
	b.WriteString(right)
	b.WriteByte('\n')
}

func line(b *strings.Builder, widths []int, cells []string) {
	b.WriteString("│")
	for i, width := range widths {
		if i > 0 {
			b.WriteString("│")
		}
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteByte(' ')
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(cell)+1))
	}
	b.WriteString("│\n")
}
