// Package frame holds the in-progress tabular container one chunk of
// generated data is assembled in. Columns are added lazily and rows are
// index-aligned 0..Len()-1.
package frame

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Frame type is the mutable tabular container for one chunk (or the whole
// dataset in single-pass mode).
type Frame struct {
	rows         int
	order        []string
	columns      map[string][]any
	intermediate map[string]struct{}
}

// New function creates an empty frame with the given row count. Declared
// columns are pre-registered in order but stay nil-valued until populated.
func New(rows int, columns []string) *Frame {
	f := &Frame{
		rows:         rows,
		order:        make([]string, 0, len(columns)),
		columns:      make(map[string][]any, len(columns)),
		intermediate: make(map[string]struct{}),
	}

	for _, name := range columns {
		f.EnsureColumn(name)
	}

	return f
}

func (f *Frame) Len() int {
	return f.rows
}

// Columns returns column names in insertion order.
func (f *Frame) Columns() []string {
	res := make([]string, len(f.order))
	copy(res, f.order)

	return res
}

func (f *Frame) Has(name string) bool {
	_, ok := f.columns[name]

	return ok
}

// Column returns the backing slice of a column, nil if it doesn't exist.
func (f *Frame) Column(name string) []any {
	return f.columns[name]
}

// EnsureColumn returns the column's backing slice, creating it nil-filled
// if it doesn't exist yet, so partial population leaves explicit nulls.
func (f *Frame) EnsureColumn(name string) []any {
	if values, ok := f.columns[name]; ok {
		return values
	}

	values := make([]any, f.rows)
	f.columns[name] = values
	f.order = append(f.order, name)

	return values
}

// SetColumn replaces the whole column with the given values.
func (f *Frame) SetColumn(name string, values []any) error {
	if len(values) != f.rows {
		return errors.Errorf("column %q: expected %d values, got %d", name, f.rows, len(values))
	}

	if _, ok := f.columns[name]; !ok {
		f.order = append(f.order, name)
	}

	f.columns[name] = values

	return nil
}

// SetAt writes a single cell; the column must exist.
func (f *Frame) SetAt(name string, idx int, value any) {
	f.columns[name][idx] = value
}

// Value reads a single cell; missing columns read as nil.
func (f *Frame) Value(name string, idx int) any {
	values, ok := f.columns[name]
	if !ok {
		return nil
	}

	return values[idx]
}

// Row materializes one row as a column-name map, used by mask evaluation.
func (f *Frame) Row(idx int) map[string]any {
	row := make(map[string]any, len(f.order))

	for _, name := range f.order {
		row[name] = f.columns[name][idx]
	}

	return row
}

// MarkIntermediate records a column as derivation-only so it can be
// stripped before final emission.
func (f *Frame) MarkIntermediate(name string) {
	f.intermediate[name] = struct{}{}
}

func (f *Frame) IsIntermediate(name string) bool {
	_, ok := f.intermediate[name]

	return ok
}

// IntermediateColumns returns marked columns in insertion order.
func (f *Frame) IntermediateColumns() []string {
	res := make([]string, 0, len(f.intermediate))

	for _, name := range f.order {
		if _, ok := f.intermediate[name]; ok {
			res = append(res, name)
		}
	}

	return res
}

// DropIntermediate removes all columns marked as intermediate.
func (f *Frame) DropIntermediate() {
	if len(f.intermediate) == 0 {
		return
	}

	order := make([]string, 0, len(f.order))

	for _, name := range f.order {
		if _, ok := f.intermediate[name]; ok {
			delete(f.columns, name)

			continue
		}

		order = append(order, name)
	}

	f.order = order
	f.intermediate = make(map[string]struct{})
}

// Shuffle permutes row order in place. Intermediate metadata is column
// scoped and therefore survives the reorder.
func (f *Frame) Shuffle(rng *rand.Rand) {
	rng.Shuffle(f.rows, func(i, j int) {
		for _, values := range f.columns {
			values[i], values[j] = values[j], values[i]
		}
	})
}

// Slice copies rows [start, end) into a new frame, keeping column order
// and intermediate markers.
func (f *Frame) Slice(start, end int) *Frame {
	if start < 0 {
		start = 0
	}

	if end > f.rows {
		end = f.rows
	}

	sliced := &Frame{
		rows:         end - start,
		order:        make([]string, len(f.order)),
		columns:      make(map[string][]any, len(f.order)),
		intermediate: make(map[string]struct{}, len(f.intermediate)),
	}

	copy(sliced.order, f.order)

	for name, values := range f.columns {
		part := make([]any, end-start)
		copy(part, values[start:end])
		sliced.columns[name] = part
	}

	for name := range f.intermediate {
		sliced.intermediate[name] = struct{}{}
	}

	return sliced
}
