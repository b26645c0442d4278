package eval

import (
	"fmt"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

// EvalColumn evaluates expr once per row of tbl and assembles the
// results into a single coltable.Column named name. This is the unit
// of work the pipeline executor runs, potentially in parallel, once
// per projection.
func EvalColumn(name string, expr ast.Expr, tbl *coltable.Table) (*coltable.Column, error) {
	n := tbl.Height()
	values := make([]Value, n)
	for row := 0; row < n; row++ {
		v, err := evalRow(expr, tbl, row)
		if err != nil {
			return nil, colerr.WrapTransform(name, "", err, "evaluating row %d of %q", row, name)
		}
		values[row] = v
	}
	return valuesToColumn(name, values), nil
}

// EvalBool evaluates a boolean predicate once per row, returning the
// raw bool slice used by the filter phase.
func EvalBool(expr ast.Expr, tbl *coltable.Table) ([]bool, error) {
	n := tbl.Height()
	out := make([]bool, n)
	for row := 0; row < n; row++ {
		v, err := evalRow(expr, tbl, row)
		if err != nil {
			return nil, colerr.WrapTransform("", "", err, "evaluating filter condition at row %d", row)
		}
		if v.Null {
			out[row] = false
			continue
		}
		b, err := asBool(v)
		if err != nil {
			return nil, colerr.NewTransform("", "", "%s", err.Error())
		}
		out[row] = b
	}
	return out, nil
}

func evalRow(expr ast.Expr, tbl *coltable.Table, row int) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e), nil
	case *ast.Column:
		return columnValue(tbl, e, row)
	case *ast.Cast:
		v, err := evalRow(e.Child, tbl, row)
		if err != nil {
			return Value{}, err
		}
		return Cast(v, e.To)
	case *ast.Call:
		return evalCall(e, tbl, row)
	default:
		return Value{}, fmt.Errorf("eval: unsupported expression node %T", expr)
	}
}

func evalArgs(args []ast.Expr, tbl *coltable.Table, row int) ([]Value, error) {
	out := make([]Value, len(args))
	for i, a := range args {
		v, err := evalRow(a, tbl, row)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func evalCall(call *ast.Call, tbl *coltable.Table, row int) (Value, error) {
	switch call.Op {
	case "MATH":
		return evalMath(call, tbl, row)
	case "STRING":
		return evalString(call, tbl, row)
	case "BOOLEAN":
		return evalBoolean(call, tbl, row)
	case "LOGICAL":
		return evalLogical(call, tbl, row)
	case "DATE":
		return evalDate(call, tbl, row)
	case "ARRAY":
		return evalArray(call, tbl, row)
	case "AGGREGATION":
		return evalAggregation(call, tbl, row)
	case "DIRECT":
		return evalRow(call.Args[0], tbl, row)
	default:
		return Value{}, colerr.NewTransform("", call.Op, "unsupported operation %q", call.Op)
	}
}
