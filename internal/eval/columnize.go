package eval

import (
	"time"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/coltable"
)

// valuesToColumn assembles a dense per-row Value slice into a typed
// coltable.Column. The column's type is the first non-null value's
// type, falling back to text for an all-null column.
func valuesToColumn(name string, values []Value) *coltable.Column {
	typ := ast.Text
	for _, v := range values {
		if !v.Null {
			typ = v.Typ
			break
		}
	}

	col := &coltable.Column{Name: name, Typ: typ}
	var nulls []bool
	for _, v := range values {
		if v.Null {
			nulls = make([]bool, len(values))
			break
		}
	}

	switch typ {
	case ast.Int:
		col.Ints = make([]int64, len(values))
	case ast.Float:
		col.Floats = make([]float64, len(values))
	case ast.Bool:
		col.Bools = make([]bool, len(values))
	case ast.Text:
		col.Texts = make([]string, len(values))
	case ast.Date:
		col.Dates = make([]time.Time, len(values))
	case ast.Datetime:
		col.Datetimes = make([]time.Time, len(values))
	case ast.ListText:
		col.Lists = make([][]string, len(values))
	}

	for i, v := range values {
		if nulls != nil && v.Null {
			nulls[i] = true
		}
		switch typ {
		case ast.Int:
			col.Ints[i] = v.Int
		case ast.Float:
			col.Floats[i] = v.Float
		case ast.Bool:
			col.Bools[i] = v.Bool
		case ast.Text:
			col.Texts[i] = asText(v)
		case ast.Date:
			col.Dates[i] = v.Time
		case ast.Datetime:
			col.Datetimes[i] = v.Time
		case ast.ListText:
			col.Lists[i] = v.List
		}
	}
	col.Nulls = nulls
	return col
}
