package table

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortKey describes one level of a multi-key sort
type SortKey struct {
	Column     string
	Descending bool
	// Numeric compares the cells as floats instead of strings
	Numeric bool
}

// sortValue is a pre-parsed cell so that the comparator cannot fail
type sortValue struct {
	null bool
	num  float64
	str  string
}

// SortStable returns a new table sorted by the given keys.
// Rows that compare equal on every key keep their input order.
// Null cells sort after non-null cells whatever the direction.
func (t *Table) SortStable(keys ...SortKey) (*Table, error) {
	type entry struct {
		row    Row
		values []sortValue
	}

	entries := make([]entry, len(t.Rows))
	for i, row := range t.Rows {
		values := make([]sortValue, len(keys))
		for k, key := range keys {
			if !t.HasColumn(key.Column) {
				return nil, fmt.Errorf("unknown sort column %q", key.Column)
			}

			cell := row.Get(key.Column)
			if cell.IsNull() {
				values[k] = sortValue{null: true}
				continue
			}

			if key.Numeric {
				f, err := cell.Float64()
				if err != nil {
					return nil, fmt.Errorf("row %d, column %s: %w", i, key.Column, err)
				}
				values[k] = sortValue{num: f}
			} else {
				values[k] = sortValue{str: cell.String()}
			}
		}
		entries[i] = entry{row: row, values: values}
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		for k, key := range keys {
			va, vb := a.values[k], b.values[k]

			if va.null || vb.null {
				if va.null == vb.null {
					continue
				}
				if va.null {
					return 1
				}
				return -1
			}

			var c int
			if key.Numeric {
				c = cmp.Compare(va.num, vb.num)
			} else {
				c = strings.Compare(va.str, vb.str)
			}
			if key.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})

	out := New(t.Columns...)
	for _, e := range entries {
		out.Append(e.row.clone())
	}
	return out, nil
}

// PartitionBy splits the table on the values of a column.
// Keys are returned in first-seen order and each partition keeps the row order.
func (t *Table) PartitionBy(column string) ([]string, map[string]*Table, error) {
	if !t.HasColumn(column) {
		return nil, nil, fmt.Errorf("unknown partition column %q", column)
	}

	keys := []string{}
	partitions := make(map[string]*Table)
	for _, row := range t.Rows {
		key := row.Get(column).String()
		partition, ok := partitions[key]
		if !ok {
			partition = New(t.Columns...)
			partitions[key] = partition
			keys = append(keys, key)
		}
		partition.Append(row.clone())
	}

	return keys, partitions, nil
}

// JoinResult holds an inner join and the keys that found no partner
type JoinResult struct {
	Table *Table

	// LeftOnly contains the keys of left rows with no match on the right, in left order
	LeftOnly []string

	// RightOnly contains the keys of right rows with no match on the left, in right order
	RightOnly []string
}

// Join performs an inner join of left and right on a key column.
// Output rows follow the left table order. Right columns whose name is already
// used on the left (other than the key) are renamed with a "_right" suffix.
// Keys must be non-null and unique on the right side.
func Join(left, right *Table, on string) (*JoinResult, error) {
	if !left.HasColumn(on) {
		return nil, fmt.Errorf("left table has no column %q", on)
	}
	if !right.HasColumn(on) {
		return nil, fmt.Errorf("right table has no column %q", on)
	}

	rightIndex := make(map[string]int, len(right.Rows))
	for i, row := range right.Rows {
		key := row.Get(on)
		if key.IsNull() {
			return nil, fmt.Errorf("right table row %d has a null %q", i, on)
		}
		if _, dup := rightIndex[key.String()]; dup {
			return nil, fmt.Errorf("right table has duplicate %q value %q", on, key.String())
		}
		rightIndex[key.String()] = i
	}

	// Work out output column names for the right side
	rightNames := make(map[string]string, len(right.Columns))
	columns := slices.Clone(left.Columns)
	for _, column := range right.Columns {
		if column == on {
			continue
		}
		name := column
		if left.HasColumn(column) {
			name = column + "_right"
		}
		rightNames[column] = name
		columns = append(columns, name)
	}

	result := &JoinResult{
		Table:     New(columns...),
		LeftOnly:  []string{},
		RightOnly: []string{},
	}

	matched := make(map[string]bool, len(right.Rows))
	for i, row := range left.Rows {
		key := row.Get(on)
		if key.IsNull() {
			return nil, fmt.Errorf("left table row %d has a null %q", i, on)
		}

		ri, ok := rightIndex[key.String()]
		if !ok {
			result.LeftOnly = append(result.LeftOnly, key.String())
			continue
		}
		matched[key.String()] = true

		joined := row.clone()
		for column, name := range rightNames {
			joined[name] = right.Rows[ri].Get(column)
		}
		result.Table.Append(joined)
	}

	for _, row := range right.Rows {
		key := row.Get(on).String()
		if !matched[key] {
			result.RightOnly = append(result.RightOnly, key)
		}
	}

	return result, nil
}

// Pivot reshapes a long table into a wide one.
//
// One output row is produced per distinct tuple of index values (first-seen order)
// and one output column per distinct tuple of groupBy values (first-seen order),
// named by name(tuple). Cells are taken from the value column; combinations
// that do not appear in the input are null.
func Pivot(t *Table, index, groupBy []string, value string, name func(group []Cell) string) (*Table, error) {
	for _, column := range slices.Concat(index, groupBy, []string{value}) {
		if !t.HasColumn(column) {
			return nil, fmt.Errorf("unknown column %q", column)
		}
	}

	out := New(index...)
	rowsByIndex := make(map[string]Row)
	groupColumns := make(map[string]string) // group tuple key -> output column
	columnGroups := make(map[string]string) // output column -> group tuple key

	for i, row := range t.Rows {
		indexKey := tupleKey(row, index)
		wide, ok := rowsByIndex[indexKey]
		if !ok {
			wide = make(Row, len(index))
			for _, column := range index {
				wide[column] = row.Get(column)
			}
			rowsByIndex[indexKey] = wide
			out.Append(wide)
		}

		groupKey := tupleKey(row, groupBy)
		column, ok := groupColumns[groupKey]
		if !ok {
			group := make([]Cell, len(groupBy))
			for g, c := range groupBy {
				group[g] = row.Get(c)
			}
			column = name(group)
			if column == "" {
				return nil, fmt.Errorf("row %d: empty column name for group %s", i, groupKey)
			}
			if other, taken := columnGroups[column]; taken && other != groupKey {
				return nil, fmt.Errorf("row %d: column %q produced by two groups (%s and %s)", i, column, other, groupKey)
			}
			if slices.Contains(index, column) {
				return nil, fmt.Errorf("row %d: column %q collides with an index column", i, column)
			}
			groupColumns[groupKey] = column
			columnGroups[column] = groupKey
			out.AddColumn(column)
		}

		if _, dup := wide[column]; dup {
			return nil, fmt.Errorf("row %d: more than one value for %s in column %q", i, indexKey, column)
		}
		wide[column] = row.Get(value)
	}

	return out, nil
}

// tupleKey builds a map key from the cells of several columns, keeping nulls distinct from empty strings
func tupleKey(row Row, columns []string) string {
	var b strings.Builder
	for i, column := range columns {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		cell := row.Get(column)
		if cell.IsNull() {
			b.WriteString("\x00")
			continue
		}
		b.WriteString(cell.String())
	}
	return b.String()
}
