package frame

import (
	"fmt"
	"strconv"
	"time"
)

// Frame is an in-memory tabular dataset. Cells are kept as raw strings and
// parsed on access; regression code decides per column whether it needs
// numeric or categorical values.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New builds a frame from a header and rows. Every row must match the header
// width.
func New(columns []string, rows [][]string) (*Frame, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, exists := index[c]; exists {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		index[c] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(columns))
		}
	}
	return &Frame{columns: columns, index: index, rows: rows}, nil
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// RowCount returns the number of rows.
func (f *Frame) RowCount() int {
	return len(f.rows)
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// missing markers recognized during row-wise deletion
var missingMarkers = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
}

// DropMissing returns a copy of the frame with every row containing at least
// one missing cell removed. Full row-wise deletion, no imputation.
func (f *Frame) DropMissing() *Frame {
	kept := make([][]string, 0, len(f.rows))
rows:
	for _, row := range f.rows {
		for _, cell := range row {
			if missingMarkers[cell] {
				continue rows
			}
		}
		kept = append(kept, row)
	}
	return &Frame{columns: f.columns, index: f.index, rows: kept}
}

// Strings returns the raw cell values of a column.
func (f *Frame) Strings(name string) ([]string, error) {
	col, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	out := make([]string, len(f.rows))
	for i, row := range f.rows {
		out[i] = row[col]
	}
	return out, nil
}

// Numeric parses a column as float64 values.
func (f *Frame) Numeric(name string) ([]float64, error) {
	raw, err := f.Strings(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, cell := range raw {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %q is not numeric", name, i, cell)
		}
		out[i] = v
	}
	return out, nil
}

var temporalLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Temporal parses a column as point-in-time values, returned as unix seconds
// so they can enter a design matrix. Plain numeric cells pass through.
func (f *Frame) Temporal(name string) ([]float64, error) {
	raw, err := f.Strings(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
cells:
	for i, cell := range raw {
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			out[i] = v
			continue
		}
		for _, layout := range temporalLayouts {
			if ts, err := time.Parse(layout, cell); err == nil {
				out[i] = float64(ts.Unix())
				continue cells
			}
		}
		return nil, fmt.Errorf("column %q row %d: %q is not a timestamp", name, i, cell)
	}
	return out, nil
}
