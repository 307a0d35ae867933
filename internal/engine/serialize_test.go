package engine

import (
	"testing"

	"github.com/tablefuse/tablefuse/internal/model"
)

func TestSerializeTable(t *testing.T) {
	table := model.NewTable([][]string{
		{"name", "alice"},
		{"age", "30"},
	})

	got := serializeTable(table, 50)
	want := "name|alice|\nage|30|\n"
	if got != want {
		t.Errorf("serializeTable() = %q, want %q", got, want)
	}
}

func TestSerializeTable_StripsWhitespace(t *testing.T) {
	table := model.NewTable([][]string{
		{"first name", "alice\nsmith"},
	})

	got := serializeTable(table, 50)
	want := "firstname|alicesmith|\n"
	if got != want {
		t.Errorf("serializeTable() = %q, want %q", got, want)
	}
}

func TestSerializeTable_MultipleFragmentsPerCell(t *testing.T) {
	table := model.Table{Rows: []model.Row{
		{Cells: []model.Cell{
			{Fragments: []string{"hel", "lo"}},
			{Fragments: []string{"world"}},
		}},
	}}

	got := serializeTable(table, 50)
	want := "hello|world|\n"
	if got != want {
		t.Errorf("serializeTable() = %q, want %q", got, want)
	}
}

func TestSerializeTable_EmptyTable(t *testing.T) {
	if got := serializeTable(model.Table{}, 50); got != "" {
		t.Errorf("serializeTable(empty) = %q, want empty", got)
	}
}

func TestSerializeTable_EmptyFirstRow(t *testing.T) {
	// A first row with zero cells must not break buffer estimation.
	table := model.Table{Rows: []model.Row{
		{Cells: nil},
		{Cells: []model.Cell{{Fragments: []string{"a"}}}},
	}}

	got := serializeTable(table, 50)
	want := "a|\n"
	if got != want {
		t.Errorf("serializeTable() = %q, want %q", got, want)
	}
}

func TestSerializeTable_AllRowsEmpty(t *testing.T) {
	table := model.Table{Rows: []model.Row{{Cells: nil}, {Cells: nil}}}
	if got := serializeTable(table, 50); got != "" {
		t.Errorf("serializeTable() = %q, want empty", got)
	}
}
