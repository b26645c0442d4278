package eval

import (
	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

func evalLogical(call *ast.Call, tbl *coltable.Table, row int) (Value, error) {
	switch call.Method {
	case "IF":
		condV, err := evalRow(call.Args[0], tbl, row)
		if err != nil {
			return Value{}, err
		}
		cond, err := asBool(condV)
		if err != nil {
			return Value{}, colerr.NewTransform("", "", "%s", err.Error())
		}
		if cond {
			return evalRow(call.Args[1], tbl, row)
		}
		return evalRow(call.Args[2], tbl, row)

	case "AND":
		for _, a := range call.Args {
			v, err := evalRow(a, tbl, row)
			if err != nil {
				return Value{}, err
			}
			b, err := asBool(v)
			if err != nil {
				return Value{}, colerr.NewTransform("", "", "%s", err.Error())
			}
			if !b {
				return boolV(false), nil
			}
		}
		return boolV(true), nil

	case "OR":
		for _, a := range call.Args {
			v, err := evalRow(a, tbl, row)
			if err != nil {
				return Value{}, err
			}
			b, err := asBool(v)
			if err != nil {
				return Value{}, colerr.NewTransform("", "", "%s", err.Error())
			}
			if b {
				return boolV(true), nil
			}
		}
		return boolV(false), nil

	case "NOT":
		v, err := evalRow(call.Args[0], tbl, row)
		if err != nil {
			return Value{}, err
		}
		b, err := asBool(v)
		if err != nil {
			return Value{}, colerr.NewTransform("", "", "%s", err.Error())
		}
		return boolV(!b), nil
	}
	return Value{}, colerr.NewTransform("", call.Method, "unsupported LOGICAL method %q", call.Method)
}
