// Package model defines the extraction contract types handed to the
// reconciliation engine: a page yields ordered tables, a table ordered
// rows, a row ordered cells, a cell an ordered list of text fragments.
package model

// Cell is one table cell. Fragments preserve the extractor's original
// text ordering within the cell.
type Cell struct {
	Fragments []string
}

// Row is an ordered list of cells.
type Row struct {
	Cells []Cell
}

// Table is an ordered list of rows as delivered by the
// document-parsing collaborator for a single page region.
type Table struct {
	Rows []Row
}

// RowCount returns the number of rows.
func (t Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of cells in the first row, or 0 for an
// empty table.
func (t Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0].Cells)
}

// CellCount returns the total number of cells across all rows.
func (t Table) CellCount() int {
	n := 0
	for _, r := range t.Rows {
		n += len(r.Cells)
	}
	return n
}

// NewTable builds a table from plain string cells, one fragment per
// cell. Convenience for tests and simple sources.
func NewTable(rows [][]string) Table {
	t := Table{Rows: make([]Row, 0, len(rows))}
	for _, cells := range rows {
		row := Row{Cells: make([]Cell, 0, len(cells))}
		for _, c := range cells {
			row.Cells = append(row.Cells, Cell{Fragments: []string{c}})
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
