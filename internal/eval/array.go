package eval

import (
	"strings"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

func evalArray(call *ast.Call, tbl *coltable.Table, row int) (Value, error) {
	args, err := evalArgs(call.Args, tbl, row)
	if err != nil {
		return Value{}, err
	}

	switch call.Method {
	case "SPLIT":
		if args[0].Null {
			return nullV(ast.ListText), nil
		}
		delim := stripQuotes(asText(args[1]))
		return listV(strings.Split(asText(args[0]), delim)), nil

	case "JOIN":
		if args[0].Null {
			return nullV(ast.Text), nil
		}
		if args[0].Typ != ast.ListText {
			// Non-list input is passed through untouched, matching the
			// original engine's conservative fallback for this case.
			return textV(asText(args[0])), nil
		}
		delim := stripQuotes(asText(args[1]))
		return textV(strings.Join(args[0].List, delim)), nil

	case "LENGTH":
		if args[0].Null {
			return nullV(ast.Int), nil
		}
		return intV(int64(len(args[0].List))), nil

	case "GET":
		if args[0].Null {
			return nullV(ast.Text), nil
		}
		idxF, err := asFloat(args[1])
		if err != nil {
			return Value{}, colerr.NewTransform("", "", "%s", err.Error())
		}
		idx := int(idxF)
		if idx < 0 || idx >= len(args[0].List) {
			return nullV(ast.Text), nil
		}
		return textV(args[0].List[idx]), nil
	}
	return Value{}, colerr.NewTransform("", call.Method, "unsupported ARRAY method %q", call.Method)
}
