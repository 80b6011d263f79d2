package core

import "fmt"

// Series is an ordered sequence of samples, one per channel, time tick or
// frequency bin.
type Series []float64

// Len returns the sample count.
func (s Series) Len() int { return len(s) }

// Sum returns the sum of all samples.
func (s Series) Sum() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v
	}

	return sum
}

// Clone returns a copy of s that shares no memory with it.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}

	out := make(Series, len(s))
	copy(out, s)

	return out
}

// Table is a row-major table of equal-length named columns.
//
// Columns are always addressed by name. The zero value is an empty table
// ready for use.
type Table struct {
	names []string
	cols  []Series
	index map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Add appends a named column. The column is stored without copying.
// All columns must share the same length and names must be unique.
func (t *Table) Add(name string, s Series) error {
	if t.index == nil {
		t.index = make(map[string]int)
	}

	if _, dup := t.index[name]; dup {
		return fmt.Errorf("%w: table: duplicate column %q", ErrInvalidInput, name)
	}

	if len(t.cols) > 0 && len(s) != len(t.cols[0]) {
		return fmt.Errorf("%w: table: column %q has %d rows, want %d",
			ErrInvalidInput, name, len(s), len(t.cols[0]))
	}

	t.index[name] = len(t.cols)
	t.names = append(t.names, name)
	t.cols = append(t.cols, s)

	return nil
}

// MustAdd is like Add but panics on error. Intended for fixtures and tests.
func (t *Table) MustAdd(name string, s Series) *Table {
	if err := t.Add(name, s); err != nil {
		panic(err)
	}

	return t
}

// Has reports whether the table has a column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column.
func (t *Table) Column(name string) (Series, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: table: no column %q", ErrInvalidInput, name)
	}

	return t.cols[i], nil
}

// Names returns the column names in insertion order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)

	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}

	return len(t.cols[0])
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.cols) }

// Filter returns a new table holding only the rows for which keep returns
// true. Column data is copied.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := NewTable()
	rows := make([]int, 0, t.Len())
	for r := 0; r < t.Len(); r++ {
		if keep(r) {
			rows = append(rows, r)
		}
	}

	for i, name := range t.names {
		col := make(Series, len(rows))
		for j, r := range rows {
			col[j] = t.cols[i][r]
		}
		out.index[name] = len(out.cols)
		out.names = append(out.names, name)
		out.cols = append(out.cols, col)
	}

	return out
}
