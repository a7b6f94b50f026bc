package table

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrNullCell is returned when a typed accessor is called on a null cell
var ErrNullCell = errors.New("cell is null")

// Cell is a single nullable value. Values keep their textual form so a table
// read from a delimited file is written back unchanged.
type Cell struct {
	value string
	valid bool
}

// Null returns an empty cell
func Null() Cell {
	return Cell{}
}

// String returns a cell holding s
func String(s string) Cell {
	return Cell{value: s, valid: true}
}

// Float returns a cell holding the shortest representation of f that parses back to f
func Float(f float64) Cell {
	return String(strconv.FormatFloat(f, 'g', -1, 64))
}

// Int returns a cell holding i
func Int(i int) Cell {
	return String(strconv.Itoa(i))
}

// Bool returns a cell holding b
func Bool(b bool) Cell {
	return String(strconv.FormatBool(b))
}

// IsNull reports whether the cell has no value
func (c Cell) IsNull() bool {
	return !c.valid
}

// String returns the raw value, or an empty string for a null cell
func (c Cell) String() string {
	return c.value
}

// Float64 parses the cell as a float
func (c Cell) Float64() (float64, error) {
	if !c.valid {
		return 0, ErrNullCell
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(c.value), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float: %w", err)
	}
	return f, nil
}

// Int parses the cell as an integer
func (c Cell) Int() (int, error) {
	if !c.valid {
		return 0, ErrNullCell
	}
	i, err := strconv.Atoi(strings.TrimSpace(c.value))
	if err != nil {
		return 0, fmt.Errorf("failed to parse int: %w", err)
	}
	return i, nil
}

// Bool parses the cell as a boolean ("true", "false", "1", "0", ...)
func (c Cell) Bool() (bool, error) {
	if !c.valid {
		return false, ErrNullCell
	}
	b, err := strconv.ParseBool(strings.TrimSpace(c.value))
	if err != nil {
		return false, fmt.Errorf("failed to parse bool: %w", err)
	}
	return b, nil
}

// Row maps column names to cells
type Row map[string]Cell

// Get returns the cell for column, or a null cell when the row has no such column
func (r Row) Get(column string) Cell {
	return r[column]
}

// clone returns a shallow copy of the row
func (r Row) clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered sequence of rows keyed by column name.
// Columns fixes the column order used when the table is written out.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given columns
func New(columns ...string) *Table {
	return &Table{
		Columns: slices.Clone(columns),
		Rows:    []Row{},
	}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the table declares the column
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// AddColumn declares a column if it is not declared yet
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Append adds a row at the end of the table
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Column returns every cell of a column, in row order
func (t *Table) Column(name string) ([]Cell, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("unknown column %q", name)
	}

	cells := make([]Cell, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = row.Get(name)
	}
	return cells, nil
}

// Filter returns a new table holding the rows for which keep returns true, in order
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New(t.Columns...)
	for _, row := range t.Rows {
		if keep(row) {
			out.Append(row.clone())
		}
	}
	return out
}

