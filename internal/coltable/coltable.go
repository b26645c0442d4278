// Package coltable implements the read-only, in-memory table data
// model: an ordered sequence of named, typed columns sharing a common
// row count.
package coltable

import (
	"fmt"
	"time"

	"github.com/colmap/colmap/internal/ast"
)

// Type is a column's value type, one of the seven supported kinds. It
// is the same vocabulary as ast.ValueType so the compiler's type
// annotations carry straight through to columns.
type Type = ast.ValueType

const (
	TypeInt      = ast.Int
	TypeFloat    = ast.Float
	TypeBool     = ast.Bool
	TypeText     = ast.Text
	TypeDate     = ast.Date
	TypeDatetime = ast.Datetime
	TypeListText = ast.ListText
)

// Column is one named, typed, dense sequence of values. Exactly one
// of the typed slices is populated, matching Type.
type Column struct {
	Name string
	Typ  Type

	Ints      []int64
	Floats    []float64
	Bools     []bool
	Texts     []string
	Dates     []time.Time
	Datetimes []time.Time
	Lists     [][]string

	// Nulls marks per-row nullity; nil means no nulls in this column.
	Nulls []bool
}

func (c *Column) Len() int {
	switch c.Typ {
	case TypeInt:
		return len(c.Ints)
	case TypeFloat:
		return len(c.Floats)
	case TypeBool:
		return len(c.Bools)
	case TypeText:
		return len(c.Texts)
	case TypeDate, TypeDatetime:
		if c.Typ == TypeDate {
			return len(c.Dates)
		}
		return len(c.Datetimes)
	case TypeListText:
		return len(c.Lists)
	default:
		return 0
	}
}

// IsNull reports whether row i is null.
func (c *Column) IsNull(i int) bool {
	return c.Nulls != nil && i < len(c.Nulls) && c.Nulls[i]
}

// Take returns a new Column containing only the given row indices, in
// the order given.
func (c *Column) Take(indices []int) *Column {
	out := &Column{Name: c.Name, Typ: c.Typ}
	if c.Nulls != nil {
		out.Nulls = make([]bool, len(indices))
	}
	for pos, i := range indices {
		if c.Nulls != nil {
			out.Nulls[pos] = c.Nulls[i]
		}
	}
	switch c.Typ {
	case TypeInt:
		out.Ints = takeInto(c.Ints, indices)
	case TypeFloat:
		out.Floats = takeInto(c.Floats, indices)
	case TypeBool:
		out.Bools = takeInto(c.Bools, indices)
	case TypeText:
		out.Texts = takeInto(c.Texts, indices)
	case TypeDate:
		out.Dates = takeInto(c.Dates, indices)
	case TypeDatetime:
		out.Datetimes = takeInto(c.Datetimes, indices)
	case TypeListText:
		out.Lists = takeInto(c.Lists, indices)
	}
	return out
}

func takeInto[T any](src []T, indices []int) []T {
	out := make([]T, len(indices))
	for pos, i := range indices {
		out[pos] = src[i]
	}
	return out
}

// Table is an ordered set of named columns sharing one row count. The
// core never mutates a Table it did not itself just construct; it
// treats the input table as read-only.
type Table struct {
	names   []string
	byName  map[string]int
	columns []*Column
	height  int
}

// New builds a Table from columns, validating that every column has
// the same length.
func New(columns []*Column) (*Table, error) {
	height := 0
	if len(columns) > 0 {
		height = columns[0].Len()
	}
	byName := make(map[string]int, len(columns))
	names := make([]string, len(columns))
	for i, c := range columns {
		if c.Len() != height {
			return nil, fmt.Errorf("coltable: column %q has height %d, want %d", c.Name, c.Len(), height)
		}
		if _, dup := byName[c.Name]; dup {
			return nil, fmt.Errorf("coltable: duplicate column name %q", c.Name)
		}
		byName[c.Name] = i
		names[i] = c.Name
	}
	return &Table{names: names, byName: byName, columns: columns, height: height}, nil
}

// Empty returns a zero-row, zero-column table.
func Empty() *Table {
	t, _ := New(nil)
	return t
}

func (t *Table) Height() int { return t.height }
func (t *Table) Width() int  { return len(t.columns) }

func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Columns returns the table's columns in declared order.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Take returns a new Table retaining only the given row indices, in
// order. Used by the filter phase.
func (t *Table) Take(indices []int) *Table {
	cols := make([]*Column, len(t.columns))
	for i, c := range t.columns {
		cols[i] = c.Take(indices)
	}
	out, _ := New(cols) // lengths are trivially consistent by construction
	return out
}

// RowRange returns the identity index slice [0, n).
func RowRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
