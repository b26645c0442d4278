package eval

import (
	"time"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

func evalBoolean(call *ast.Call, tbl *coltable.Table, row int) (Value, error) {
	args, err := evalArgs(call.Args, tbl, row)
	if err != nil {
		return Value{}, err
	}
	if args[0].Null || args[1].Null {
		return boolV(false), nil
	}

	switch call.Method {
	case "EQ":
		eq, err := valuesEqual(args[0], args[1])
		if err != nil {
			return Value{}, colerr.NewTransform("", "", "%s", err.Error())
		}
		return boolV(eq), nil
	case "NE":
		eq, err := valuesEqual(args[0], args[1])
		if err != nil {
			return Value{}, colerr.NewTransform("", "", "%s", err.Error())
		}
		return boolV(!eq), nil
	case "GT", "LT", "GTE", "LTE":
		cmp, err := compareValues(args[0], args[1])
		if err != nil {
			return Value{}, colerr.NewTransform("", "", "%s", err.Error())
		}
		switch call.Method {
		case "GT":
			return boolV(cmp > 0), nil
		case "LT":
			return boolV(cmp < 0), nil
		case "GTE":
			return boolV(cmp >= 0), nil
		case "LTE":
			return boolV(cmp <= 0), nil
		}
	}
	return Value{}, colerr.NewTransform("", call.Method, "unsupported BOOLEAN method %q", call.Method)
}

// valuesEqual compares two values for equality, coercing text/number
// pairs the way the original comparison operators do.
func valuesEqual(a, b Value) (bool, error) {
	if a.Typ == ast.Text || b.Typ == ast.Text {
		if isComparableNumeric(a) && isComparableNumeric(b) {
			af, _ := asFloat(a)
			bf, _ := asFloat(b)
			return af == bf, nil
		}
		return asText(a) == asText(b), nil
	}
	switch {
	case a.Typ == ast.Bool || b.Typ == ast.Bool:
		return a.Bool == b.Bool, nil
	case a.Typ == ast.Date || a.Typ == ast.Datetime || b.Typ == ast.Date || b.Typ == ast.Datetime:
		at, err := asTime(a, "")
		if err != nil {
			return false, err
		}
		bt, err := asTime(b, "")
		if err != nil {
			return false, err
		}
		return at.Equal(bt), nil
	default:
		af, err := asFloat(a)
		if err != nil {
			return false, err
		}
		bf, err := asFloat(b)
		if err != nil {
			return false, err
		}
		return af == bf, nil
	}
}

func isComparableNumeric(v Value) bool {
	switch v.Typ {
	case ast.Int, ast.Float:
		return true
	case ast.Text:
		_, err := asFloat(v)
		return err == nil
	}
	return false
}

// compareValues orders a against b, returning <0, 0, >0.
func compareValues(a, b Value) (int, error) {
	if a.Typ == ast.Date || a.Typ == ast.Datetime || b.Typ == ast.Date || b.Typ == ast.Datetime {
		at, err := asTime(a, "")
		if err != nil {
			return 0, err
		}
		bt, err := asTime(b, "")
		if err != nil {
			return 0, err
		}
		return timeCompare(at, bt), nil
	}
	af, err := asFloat(a)
	if err != nil {
		return 0, err
	}
	bf, err := asFloat(b)
	if err != nil {
		return 0, err
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	default:
		return 0, nil
	}
}

func timeCompare(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
