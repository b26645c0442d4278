package eval

import (
	"strings"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

func evalString(call *ast.Call, tbl *coltable.Table, row int) (Value, error) {
	args, err := evalArgs(call.Args, tbl, row)
	if err != nil {
		return Value{}, err
	}

	switch call.Method {
	case "CONCAT":
		var b strings.Builder
		for _, a := range args {
			b.WriteString(asText(a))
		}
		return textV(b.String()), nil

	case "SUBSTR":
		if args[0].Null {
			return nullV(ast.Text), nil
		}
		base := asText(args[0])
		start, err := asFloat(args[1])
		if err != nil {
			return Value{}, colerr.NewTransform("", "", "%s", err.Error())
		}
		runes := []rune(base)
		s := clampIndex(int(start), len(runes))
		end := len(runes)
		if len(args) > 2 && !args[2].Null {
			length, err := asFloat(args[2])
			if err != nil {
				return Value{}, colerr.NewTransform("", "", "%s", err.Error())
			}
			end = clampIndex(s+int(length), len(runes))
		}
		if end < s {
			end = s
		}
		return textV(string(runes[s:end])), nil

	case "REPLACE":
		if args[0].Null {
			return nullV(ast.Text), nil
		}
		base := asText(args[0])
		find := asText(args[1])
		repl := asText(args[2])
		return textV(strings.ReplaceAll(base, find, repl)), nil

	case "UPPER":
		if args[0].Null {
			return nullV(ast.Text), nil
		}
		return textV(strings.ToUpper(asText(args[0]))), nil

	case "LOWER":
		if args[0].Null {
			return nullV(ast.Text), nil
		}
		return textV(strings.ToLower(asText(args[0]))), nil

	case "TRIM":
		if args[0].Null {
			return nullV(ast.Text), nil
		}
		return textV(strings.TrimSpace(asText(args[0]))), nil

	case "LENGTH":
		if args[0].Null {
			return nullV(ast.Int), nil
		}
		return intV(int64(len([]rune(asText(args[0]))))), nil
	}
	return Value{}, colerr.NewTransform("", call.Method, "unsupported STRING method %q", call.Method)
}

func clampIndex(i, n int) int {
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	return i
}
