package engine

import (
	"regexp"
	"strings"

	"github.com/tablefuse/tablefuse/internal/model"
	"github.com/tablefuse/tablefuse/internal/sanitize"
)

const (
	// colSep terminates every cell, including the last in a row.
	colSep = "|"
	// rowSep terminates every row.
	rowSep = "\n"
)

var whitespace = regexp.MustCompile(`\s+`)

// serializeTable converts one extracted table into its delimited text
// block. Cell fragments are escaped and stripped of whitespace so the
// structural separators stay unambiguous. Returns "" when the table
// has no usable rows.
func serializeTable(t model.Table, estCellSize int) string {
	rows := t.Rows
	if len(rows) == 0 {
		return ""
	}

	// Pre-size from the first row; a first row with zero cells must
	// not zero out the estimate.
	estCols := len(rows[0].Cells)
	if estCols == 0 {
		estCols = 1
	}
	var b strings.Builder
	b.Grow(len(rows) * estCols * estCellSize)

	for _, row := range rows {
		if len(row.Cells) == 0 {
			continue
		}
		for _, cell := range row.Cells {
			for _, frag := range cell.Fragments {
				safe := sanitize.Escape(frag, sanitize.ContextPlain)
				b.WriteString(whitespace.ReplaceAllString(safe, ""))
			}
			b.WriteString(colSep)
		}
		b.WriteString(rowSep)
	}
	return b.String()
}
