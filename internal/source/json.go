package source

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tablefuse/tablefuse/internal/model"
)

//go:embed schemas/pagedump.json
var schemaFS embed.FS

// pageDump mirrors the JSON layout produced by the document-parsing
// collaborator: pages of tables of rows of cells, each cell an
// ordered list of text fragments.
type pageDump struct {
	Pages []struct {
		Page   int `json:"page"`
		Tables []struct {
			Rows [][][]string `json:"rows"`
		} `json:"tables"`
	} `json:"pages"`
}

// JSONSource reads a validated JSON page dump.
type JSONSource struct {
	dump pageDump
}

// NewJSONSource loads a page dump, validating it against the embedded
// schema before decoding.
func NewJSONSource(path string) (*JSONSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page dump: %w", err)
	}

	sch, err := compileSchema()
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse page dump: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("page dump failed schema validation: %w", err)
	}

	var dump pageDump
	if err := json.Unmarshal(raw, &dump); err != nil {
		return nil, fmt.Errorf("decode page dump: %w", err)
	}
	return &JSONSource{dump: dump}, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/pagedump.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("pagedump.json", strings.NewReader(string(raw))); err != nil {
		return nil, fmt.Errorf("register schema: %w", err)
	}
	sch, err := compiler.Compile("pagedump.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return sch, nil
}

// PageCount returns the number of pages in the dump.
func (s *JSONSource) PageCount() int {
	return len(s.dump.Pages)
}

// Walk hands each page's tables to fn in dump order.
func (s *JSONSource) Walk(ctx context.Context, fn func(pageIndex int, tables []model.Table) error) error {
	for _, page := range s.dump.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		tables := make([]model.Table, 0, len(page.Tables))
		for _, t := range page.Tables {
			table := model.Table{Rows: make([]model.Row, 0, len(t.Rows))}
			for _, row := range t.Rows {
				r := model.Row{Cells: make([]model.Cell, 0, len(row))}
				for _, cell := range row {
					r.Cells = append(r.Cells, model.Cell{Fragments: cell})
				}
				table.Rows = append(table.Rows, r)
			}
			tables = append(tables, table)
		}
		if err := fn(page.Page, tables); err != nil {
			return err
		}
	}
	return nil
}

var _ Source = (*JSONSource)(nil)
