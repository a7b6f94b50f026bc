package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Separator is the field delimiter used by every file the project reads or writes
const Separator = ';'

// ReadCSV reads a delimited table. The first record is the header.
// Empty fields are read as null cells.
func ReadCSV(r io.Reader, sep rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = sep

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("table has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	seen := make(map[string]bool, len(header))
	for _, column := range header {
		if seen[column] {
			return nil, fmt.Errorf("duplicate column %q in header", column)
		}
		seen[column] = true
	}

	t := New(header...)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		row := make(Row, len(header))
		for i, column := range header {
			if record[i] == "" {
				row[column] = Null()
			} else {
				row[column] = String(record[i])
			}
		}
		t.Append(row)
	}

	return t, nil
}

// WriteCSV writes the table with a header record. Null cells are written as empty fields.
func WriteCSV(w io.Writer, t *Table, sep rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = sep

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for c, column := range t.Columns {
			record[c] = row.Get(column).String()
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}
	return nil
}

// ReadFile opens path, reads the whole table and closes the file
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f, Separator)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

// WriteFile creates (or truncates) path and writes the whole table to it
func WriteFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteCSV(f, t, Separator); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
