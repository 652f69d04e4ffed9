package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownColumn is returned when a requested column is not in the header
var ErrUnknownColumn = errors.New("unknown column")

// Frame is a fully numeric table held column-wise
type Frame struct {
	Name    string // Dataset label, usually the variant
	Path    string // Source file, empty for derived frames
	Size    int64  // Source file size in bytes
	Columns []string

	data map[string][]float64
	rows int
}

// NewFrame builds a frame from named columns of equal length.
// Column order follows names.
func NewFrame(name string, names []string, columns map[string][]float64) (*Frame, error) {
	f := &Frame{
		Name:    name,
		Columns: append([]string(nil), names...),
		data:    make(map[string][]float64, len(names)),
		rows:    -1,
	}
	for _, col := range names {
		values, ok := columns[col]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
		if f.rows >= 0 && len(values) != f.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col, len(values), f.rows)
		}
		f.rows = len(values)
		f.data[col] = values
	}
	if f.rows < 0 {
		f.rows = 0
	}
	return f, nil
}

// Len returns the number of rows
func (f *Frame) Len() int {
	return f.rows
}

// Has reports whether the frame carries the named column
func (f *Frame) Has(name string) bool {
	_, ok := f.data[name]
	return ok
}

// Column returns the values of a column. The slice is shared with the frame.
func (f *Frame) Column(name string) ([]float64, error) {
	values, ok := f.data[name]
	if !ok {
		return nil, fmt.Errorf("%w %q in %s (available: %s)",
			ErrUnknownColumn, name, f.Name, strings.Join(f.Columns, ", "))
	}
	return values, nil
}

// Rows returns a new frame holding the given row positions in order
func (f *Frame) Rows(idx []int) (*Frame, error) {
	out := make(map[string][]float64, len(f.Columns))
	for _, col := range f.Columns {
		src := f.data[col]
		dst := make([]float64, len(idx))
		for i, row := range idx {
			if row < 0 || row >= f.rows {
				return nil, fmt.Errorf("row %d out of range [0, %d)", row, f.rows)
			}
			dst[i] = src[row]
		}
		out[col] = dst
	}
	return NewFrame(f.Name, f.Columns, out)
}

// Select returns a frame restricted to the named columns
func (f *Frame) Select(names ...string) (*Frame, error) {
	out := make(map[string][]float64, len(names))
	for _, name := range names {
		values, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		out[name] = values
	}
	sub, err := NewFrame(f.Name, names, out)
	if err != nil {
		return nil, err
	}
	sub.rows = f.rows
	return sub, nil
}

// WithColumn returns a copy of the frame with one column replaced
func (f *Frame) WithColumn(name string, values []float64) (*Frame, error) {
	if !f.Has(name) {
		return nil, fmt.Errorf("%w %q in %s", ErrUnknownColumn, name, f.Name)
	}
	if len(values) != f.rows {
		return nil, fmt.Errorf("column %q has %d rows, expected %d", name, len(values), f.rows)
	}
	out := make(map[string][]float64, len(f.Columns))
	for _, col := range f.Columns {
		out[col] = f.data[col]
	}
	out[name] = values
	next, err := NewFrame(f.Name, f.Columns, out)
	if err != nil {
		return nil, err
	}
	next.Path, next.Size = f.Path, f.Size
	return next, nil
}
