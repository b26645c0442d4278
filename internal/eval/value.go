// Package eval implements the columnar evaluation backend: it walks
// the expression AST produced by the Mapping Compiler and evaluates
// one output column at a time against an input coltable.Table.
package eval

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

// defaultDateFormat is the strftime-notation format used when a DSL
// call doesn't name one explicitly, matching the original engine's
// _DEFAULT_DATE_FMT.
const defaultDateFormat = "%m%d%Y"

// defaultDateLayout is defaultDateFormat translated once to its Go
// reference-time equivalent, used when rendering a Date value back to
// text with no format given.
var defaultDateLayout = mustGoLayout(defaultDateFormat)

// Value is one scalar result produced while evaluating a single row.
// Exactly one of the typed fields is meaningful, per Typ.
type Value struct {
	Typ   ast.ValueType
	Int   int64
	Float float64
	Bool  bool
	Text  string
	Time  time.Time
	List  []string
	Null  bool
}

func intV(v int64) Value      { return Value{Typ: ast.Int, Int: v} }
func floatV(v float64) Value  { return Value{Typ: ast.Float, Float: v} }
func boolV(v bool) Value      { return Value{Typ: ast.Bool, Bool: v} }
func textV(v string) Value    { return Value{Typ: ast.Text, Text: v} }
func dateV(v time.Time) Value { return Value{Typ: ast.Date, Time: v} }
func dtV(v time.Time) Value   { return Value{Typ: ast.Datetime, Time: v} }
func listV(v []string) Value  { return Value{Typ: ast.ListText, List: v} }
func nullV(typ ast.ValueType) Value { return Value{Typ: typ, Null: true} }

// asFloat coerces v to a float64, the way arithmetic operators treat
// their operands regardless of declared type.
func asFloat(v Value) (float64, error) {
	switch v.Typ {
	case ast.Int:
		return float64(v.Int), nil
	case ast.Float:
		return v.Float, nil
	case ast.Bool:
		if v.Bool {
			return 1, nil
		}
		return 0, nil
	case ast.Text:
		f, err := cast.ToFloat64E(v.Text)
		if err != nil {
			return 0, fmt.Errorf("cannot treat %q as a number", v.Text)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot treat %s value as a number", v.Typ)
	}
}

// asText renders v in the same textual form the DSL and writers use.
func asText(v Value) string {
	if v.Null {
		return ""
	}
	switch v.Typ {
	case ast.Int:
		return strconv.FormatInt(v.Int, 10)
	case ast.Float:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case ast.Bool:
		return strconv.FormatBool(v.Bool)
	case ast.Text:
		return v.Text
	case ast.Date:
		return v.Time.Format(defaultDateLayout)
	case ast.Datetime:
		return v.Time.Format(time.RFC3339)
	case ast.ListText:
		return strings.Join(v.List, ",")
	default:
		return ""
	}
}

// asBool coerces v the way LOGICAL/BOOLEAN operators expect a
// condition operand.
func asBool(v Value) (bool, error) {
	if v.Typ == ast.Bool {
		return v.Bool, nil
	}
	return false, fmt.Errorf("expected a boolean value, got %s", v.Typ)
}

// asTime coerces v to a time.Time. format is a strftime-notation
// format string (empty means defaultDateFormat); it is only consulted
// when v is text and needs parsing.
func asTime(v Value, format string) (time.Time, error) {
	switch v.Typ {
	case ast.Date, ast.Datetime:
		return v.Time, nil
	case ast.Text:
		if format == "" {
			format = defaultDateFormat
		}
		layout, err := strftimeToGoLayout(format)
		if err != nil {
			return time.Time{}, err
		}
		t, err := time.Parse(layout, v.Text)
		if err != nil {
			return time.Time{}, fmt.Errorf("cannot parse %q as a date with format %q", v.Text, format)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("cannot treat %s value as a date", v.Typ)
	}
}

// truthyBool implements the to_bool shorthand and Cast-to-Bool
// semantics: a string is true when it case-insensitively matches one
// of 1/true/y/yes; a number is true when non-zero.
func truthyBool(v Value) (bool, error) {
	switch v.Typ {
	case ast.Bool:
		return v.Bool, nil
	case ast.Text:
		switch strings.ToLower(strings.TrimSpace(v.Text)) {
		case "1", "true", "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	case ast.Int:
		return v.Int != 0, nil
	case ast.Float:
		return v.Float != 0, nil
	default:
		return false, fmt.Errorf("cannot treat %s value as a boolean", v.Typ)
	}
}

// Cast implements the explicit Cast node inserted by the mapping
// compiler for polymorphic coercion.
func Cast(v Value, to ast.ValueType) (Value, error) {
	if v.Null {
		return nullV(to), nil
	}
	switch to {
	case ast.Int:
		f, err := asFloat(v)
		if err != nil {
			return Value{}, colerr.NewTransform("", asText(v), "%s", err.Error())
		}
		return intV(int64(f)), nil
	case ast.Float:
		f, err := asFloat(v)
		if err != nil {
			return Value{}, colerr.NewTransform("", asText(v), "%s", err.Error())
		}
		return floatV(f), nil
	case ast.Text:
		return textV(asText(v)), nil
	case ast.Bool:
		b, err := truthyBool(v)
		if err != nil {
			return Value{}, colerr.NewTransform("", asText(v), "%s", err.Error())
		}
		return boolV(b), nil
	case ast.Date:
		t, err := asTime(v, "")
		if err != nil {
			return Value{}, colerr.NewTransform("", asText(v), "%s", err.Error())
		}
		return dateV(t), nil
	case ast.Datetime:
		t, err := asTime(v, "")
		if err != nil {
			return Value{}, colerr.NewTransform("", asText(v), "%s", err.Error())
		}
		return dtV(t), nil
	default:
		return v, nil
	}
}

// columnValue reads row i of the named column referenced by col.
func columnValue(tbl *coltable.Table, col *ast.Column, row int) (Value, error) {
	c, ok := tbl.Column(col.Name)
	if !ok {
		return Value{}, colerr.NewTransform("", col.Name, "unknown column %q", col.Name)
	}
	if c.IsNull(row) {
		return nullV(c.Typ), nil
	}
	switch c.Typ {
	case coltable.TypeInt:
		return intV(c.Ints[row]), nil
	case coltable.TypeFloat:
		return floatV(c.Floats[row]), nil
	case coltable.TypeBool:
		return boolV(c.Bools[row]), nil
	case coltable.TypeText:
		return textV(c.Texts[row]), nil
	case coltable.TypeDate:
		return dateV(c.Dates[row]), nil
	case coltable.TypeDatetime:
		return dtV(c.Datetimes[row]), nil
	case coltable.TypeListText:
		return listV(c.Lists[row]), nil
	default:
		return Value{}, colerr.NewTransform("", col.Name, "column %q has unknown type", col.Name)
	}
}

func literalValue(lit *ast.Literal) Value {
	switch lit.Val {
	case ast.Int:
		return intV(lit.IntV)
	case ast.Float:
		return floatV(lit.FltV)
	case ast.Bool:
		return boolV(lit.BoolV)
	default:
		return textV(lit.Text)
	}
}

// stripQuotes removes one layer of matching single/double quotes from
// a literal-looking method argument such as a date format string.
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
