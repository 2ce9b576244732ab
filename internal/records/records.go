// Package records is a small in-memory tabular store backed by CSV files:
// a header row, data rows, column lookup and columnar append.
package records

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/gocarina/gocsv"
)

var (
	ErrColumnNotFound = errors.New("column not found")
	ErrEmptyInput     = errors.New("input has no header row")
	ErrLengthMismatch = errors.New("column length does not match row count")
	ErrRowTooLong     = errors.New("row has more cells than the header")
)

// Table holds a header and its rows. Rows may be shorter than the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Read parses CSV from r. The first record is the header.
// Rows may be shorter than the header but never wider.
func Read(r io.Reader) (*Table, error) {
	reader := gocsv.DefaultCSVReader(r)
	if csvReader, ok := reader.(*csv.Reader); ok {
		csvReader.FieldsPerRecord = -1
	}

	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	if len(all) == 0 {
		return nil, ErrEmptyInput
	}

	header, rows := all[0], all[1:]
	for i, row := range rows {
		if len(row) > len(header) {
			return nil, fmt.Errorf("%w: record %d has %d cells, header has %d", ErrRowTooLong, i+1, len(row), len(header))
		}
	}
	return &Table{Header: header, Rows: rows}, nil
}

// ReadFile opens and parses the CSV file at path.
func ReadFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer file.Close()

	t, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, error) {
	i := slices.Index(t.Header, name)
	if i < 0 {
		return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return i, nil
}

// Value returns the cell at row, col. ok is false when the row is too short.
func (t *Table) Value(row, col int) (value string, ok bool) {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return "", false
	}
	return t.Rows[row][col], true
}

// SetColumn stores values under name, one per row. An existing column of the
// same name is overwritten; otherwise the column is appended.
func (t *Table) SetColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("%w: %d values for %d rows", ErrLengthMismatch, len(values), len(t.Rows))
	}

	col := slices.Index(t.Header, name)
	if col < 0 {
		t.Header = append(t.Header, name)
		col = len(t.Header) - 1
	}
	for i, value := range values {
		row := t.Rows[i]
		for len(row) <= col {
			row = append(row, "")
		}
		row[col] = value
		t.Rows[i] = row
	}
	return nil
}

// Field is one named cell of a record.
type Field struct {
	Name  string
	Value string
}

// Record is a row as fields in header order.
type Record []Field

// Get returns the value of the field called name, or "" if there is none.
func (r Record) Get(name string) string {
	for _, f := range r {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// MarshalJSON encodes the record as an object whose keys keep header order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Records returns each row as fields in header order. Missing cells are "".
// A repeated header name gets a numeric suffix (name_2, name_3) so every
// field name in a record is distinct.
func (t *Table) Records() []Record {
	names := uniqueNames(t.Header)
	out := make([]Record, 0, len(t.Rows))
	for i := range t.Rows {
		record := make(Record, len(names))
		for col, name := range names {
			value, _ := t.Value(i, col)
			record[col] = Field{Name: name, Value: value}
		}
		out = append(out, record)
	}
	return out
}

func uniqueNames(header []string) []string {
	taken := make(map[string]bool, len(header))
	for _, name := range header {
		taken[name] = true
	}

	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, name := range header {
		seen[name]++
		if seen[name] == 1 {
			names[i] = name
			continue
		}
		n := seen[name]
		candidate := fmt.Sprintf("%s_%d", name, n)
		for taken[candidate] {
			n++
			candidate = fmt.Sprintf("%s_%d", name, n)
		}
		taken[candidate] = true
		names[i] = candidate
	}
	return names
}

// Write encodes the table as CSV. Short rows are padded to the header width.
func (t *Table) Write(w io.Writer) error {
	writer := gocsv.DefaultCSVWriter(w)
	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	for _, row := range t.Rows {
		if len(row) < len(t.Header) {
			row = append(slices.Clone(row), make([]string, len(t.Header)-len(row))...)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
