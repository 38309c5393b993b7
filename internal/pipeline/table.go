package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ColumnType tags the scalar type held by a column.
type ColumnType string

const (
	TypeString ColumnType = "string"
	TypeInt    ColumnType = "int"
	TypeFloat  ColumnType = "float"
	TypeDate   ColumnType = "date"
	TypeBool   ColumnType = "bool"
	// TypeAny marks columns read straight from the store whose type is
	// not known yet.
	TypeAny ColumnType = "any"
)

const isoDate = "2006-01-02"

// Column describes one column of a Table.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Table is a small row-oriented table. Cells hold string, int64, float64,
// time.Time (dates, UTC midnight), bool or nil.
type Table struct {
	Columns []Column
	Rows    [][]any
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...Column) *Table {
	return &Table{Columns: columns, Rows: [][]any{}}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ColumnNames lists the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Append adds a row. Plain ints are widened to int64.
func (t *Table) Append(cells ...any) {
	row := make([]any, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case int:
			row[i] = int64(v)
		case int32:
			row[i] = int64(v)
		case float32:
			row[i] = float64(v)
		case *string:
			if v == nil {
				row[i] = nil
			} else {
				row[i] = *v
			}
		case *float64:
			if v == nil {
				row[i] = nil
			} else {
				row[i] = *v
			}
		default:
			row[i] = c
		}
	}
	t.Rows = append(t.Rows, row)
}

// Filter returns a new table holding the rows for which keep is true.
func (t *Table) Filter(keep func(row []any) bool) *Table {
	out := &Table{Columns: append([]Column(nil), t.Columns...), Rows: [][]any{}}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Records converts the table to a slice of column-name keyed maps, the shape
// chart and table renderers consume. Dates are rendered as YYYY-MM-DD.
func (t *Table) Records() []map[string]any {
	records := make([]map[string]any, 0, t.Len())
	if t == nil {
		return records
	}
	for _, row := range t.Rows {
		rec := make(map[string]any, len(t.Columns))
		for i, c := range t.Columns {
			v := row[i]
			if d, ok := v.(time.Time); ok {
				v = d.Format(isoDate)
			}
			rec[c.Name] = v
		}
		records = append(records, rec)
	}
	return records
}

type tableJSON struct {
	Columns []Column `json:"columns"`
	Data    [][]any  `json:"data"`
}

// MarshalJSON encodes the table in split orientation: column descriptors
// followed by the rows.
func (t *Table) MarshalJSON() ([]byte, error) {
	out := tableJSON{Columns: t.Columns, Data: make([][]any, len(t.Rows))}
	if out.Columns == nil {
		out.Columns = []Column{}
	}
	for r, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(row), len(t.Columns))
		}
		cells := make([]any, len(row))
		for i, v := range row {
			if d, ok := v.(time.Time); ok {
				cells[i] = d.Format(isoDate)
				continue
			}
			cells[i] = v
		}
		out.Data[r] = cells
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a table written by MarshalJSON, converting every
// cell back to the Go type of its column.
func (t *Table) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var in tableJSON
	if err := dec.Decode(&in); err != nil {
		return err
	}

	rows := make([][]any, len(in.Data))
	for r, raw := range in.Data {
		if len(raw) != len(in.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d", r, len(raw), len(in.Columns))
		}
		row := make([]any, len(raw))
		for i, cell := range raw {
			v, err := decodeCell(cell, in.Columns[i].Type)
			if err != nil {
				return fmt.Errorf("row %d column %q: %w", r, in.Columns[i].Name, err)
			}
			row[i] = v
		}
		rows[r] = row
	}

	t.Columns = in.Columns
	if t.Columns == nil {
		t.Columns = []Column{}
	}
	t.Rows = rows
	return nil
}

func decodeCell(cell any, typ ColumnType) (any, error) {
	if cell == nil {
		return nil, nil
	}
	switch typ {
	case TypeString:
		s, ok := cell.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", cell)
		}
		return s, nil
	case TypeInt:
		n, ok := cell.(json.Number)
		if !ok {
			return nil, fmt.Errorf("expected number, got %T", cell)
		}
		return n.Int64()
	case TypeFloat:
		n, ok := cell.(json.Number)
		if !ok {
			return nil, fmt.Errorf("expected number, got %T", cell)
		}
		return n.Float64()
	case TypeDate:
		s, ok := cell.(string)
		if !ok {
			return nil, fmt.Errorf("expected date string, got %T", cell)
		}
		return time.Parse(isoDate, s)
	case TypeBool:
		b, ok := cell.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", cell)
		}
		return b, nil
	default:
		if n, ok := cell.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				return i, nil
			}
			return n.Float64()
		}
		return cell, nil
	}
}
