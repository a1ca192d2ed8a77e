package dataset

import (
	"fmt"
	"math"
	"strings"
)

// Row is one record of a Table. Index is the 0-based position in the table
// and identifies the row across queries.
type Row struct {
	Index  int
	Values map[string]Value
}

// Get returns the value for column, or a missing value.
func (r Row) Get(column string) Value { return r.Values[column] }

// Table is an append-only, column-named set of rows.
type Table struct {
	name      string
	columns   []string
	index     map[string]int
	units     map[string]string
	rows      []Row
	truncated bool
}

// NewTable creates an empty table with the given column order. Column names
// must be unique and non-empty.
func NewTable(name string, columns ...string) (*Table, error) {
	t := &Table{name: name, index: make(map[string]int, len(columns)), units: map[string]string{}}
	for _, c := range columns {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("column %d: empty name", len(t.columns)+1)
		}
		if _, dup := t.index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// Append adds a row. Values for unknown columns are rejected; absent columns
// are stored as missing.
func (t *Table) Append(values map[string]Value) error {
	row := Row{Index: len(t.rows), Values: make(map[string]Value, len(t.columns))}
	for k, v := range values {
		if _, ok := t.index[k]; !ok {
			return fmt.Errorf("row %d: unknown column %q", row.Index, k)
		}
		row.Values[k] = v
	}
	t.rows = append(t.rows, row)
	return nil
}

// SetUnit records the unit parsed from a column header.
func (t *Table) SetUnit(column, unit string) {
	if _, ok := t.index[column]; ok && unit != "" {
		t.units[column] = unit
	}
}

func (t *Table) Name() string { return t.name }
func (t *Table) Len() int     { return len(t.rows) }

// Unit returns the header unit of a column, if any.
func (t *Table) Unit(column string) string { return t.units[column] }

// Truncated reports whether the loader stopped early because of MaxRows.
func (t *Table) Truncated() bool { return t.truncated }

func (t *Table) HasColumn(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Columns returns a copy of the column names in table order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Kind reports a column's type: numeric when it holds at least one number and
// no text, text when any text is present, missing otherwise.
func (t *Table) Kind(column string) Kind {
	var nums int
	for _, r := range t.rows {
		switch r.Values[column].kind {
		case KindText:
			return KindText
		case KindNumeric:
			nums++
		}
	}
	if nums > 0 {
		return KindNumeric
	}
	return KindMissing
}

// NumericColumns lists numeric columns in table order.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, c := range t.columns {
		if t.Kind(c) == KindNumeric {
			out = append(out, c)
		}
	}
	return out
}

// Column returns the raw values of a column, one per row.
func (t *Table) Column(column string) ([]Value, error) {
	if _, ok := t.index[column]; !ok {
		return nil, fmt.Errorf("unknown column %q", column)
	}
	out := make([]Value, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Values[column]
	}
	return out, nil
}

// Floats returns one float per row for a numeric column; missing cells are NaN.
func (t *Table) Floats(column string) ([]float64, error) {
	if _, ok := t.index[column]; !ok {
		return nil, fmt.Errorf("unknown column %q", column)
	}
	if k := t.Kind(column); k != KindNumeric {
		return nil, fmt.Errorf("column %q is %s, not numeric", column, k)
	}
	out := make([]float64, len(t.rows))
	for i, r := range t.rows {
		if f, ok := r.Values[column].Float(); ok {
			out[i] = f
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// Select returns copies of the rows matching pred, in table order. Editing a
// returned row does not change the table.
func (t *Table) Select(pred func(Row) bool) []Row {
	var out []Row
	for _, r := range t.rows {
		if pred(r) {
			out = append(out, r.clone())
		}
	}
	return out
}

func (r Row) clone() Row {
	values := make(map[string]Value, len(r.Values))
	for k, v := range r.Values {
		values[k] = v
	}
	return Row{Index: r.Index, Values: values}
}
