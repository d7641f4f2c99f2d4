package headlines

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/theimaginaryfoundation/headline-vader/headlines/fileutils"
)

// Column names read and written by the pipeline.
const (
	HeadlineColumn  = "headline"
	ScoresColumn    = "scores"
	CompoundColumn  = "compound"
	CompScoreColumn = "comp_score"
)

const utf8BOM = "\ufeff"

// Table is a whole CSV file held in memory. Rows keep file order and every row
// has len(Header) fields.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of the first column called name, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, col := range t.Header {
		if col == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of the named column's values in row order.
func (t Table) Column(name string) ([]string, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, true
}

// SetColumn overwrites the named column in place, or appends it as the last
// column when the table does not have it yet.
func (t *Table) SetColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("SetColumn %q: got %d values for %d rows", name, len(values), len(t.Rows))
	}
	idx := t.ColumnIndex(name)
	if idx < 0 {
		t.Header = append(t.Header, name)
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], values[i])
		}
		return nil
	}
	for i := range t.Rows {
		t.Rows[i][idx] = values[i]
	}
	return nil
}

// LoadTable reads the CSV file at path. See ReadTable.
func LoadTable(path string) (Table, error) {
	if path == "" {
		return Table{}, fmt.Errorf("%w: LoadTable: path is empty", ErrInput)
	}
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("%w: LoadTable: open input: %w", ErrInput, err)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return Table{}, fmt.Errorf("LoadTable %s: %w", path, err)
	}
	return t, nil
}

// ReadTable parses a comma-delimited UTF-8 CSV with a header row. A leading
// byte-order mark is dropped. The header must contain a headline column and
// every record must have as many fields as the header.
func ReadTable(r io.Reader) (Table, error) {
	reader := csv.NewReader(bufio.NewReaderSize(r, 1<<20))

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, fmt.Errorf("%w: empty input, no header row", ErrInput)
	}
	if err != nil {
		return Table{}, fmt.Errorf("%w: read header: %w", ErrInput, err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	t := Table{Header: header}
	if t.ColumnIndex(HeadlineColumn) < 0 {
		return Table{}, fmt.Errorf("%w: no column named %q found", ErrInput, HeadlineColumn)
	}

	rowNum := 1 // header
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			return Table{}, fmt.Errorf("%w: read row %d: %w", ErrInput, rowNum, err)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// WriteCSV writes the header and all rows without an index column.
func (t Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTable replaces the file at path with t. The table is written to a
// temporary file in the same directory first, so an existing file is either
// fully replaced or left untouched.
func WriteTable(path string, t Table) error {
	if path == "" {
		return fmt.Errorf("%w: WriteTable: path is empty", ErrOutput)
	}
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		return fmt.Errorf("%w: WriteTable: %w", ErrOutput, err)
	}
	if err := fileutils.WriteFileAtomicSameDir(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: WriteTable %s: %w", ErrOutput, path, err)
	}
	return nil
}
