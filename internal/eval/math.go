package eval

import (
	"math"
	"strconv"
	"strings"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

func evalMath(call *ast.Call, tbl *coltable.Table, row int) (Value, error) {
	args, err := evalArgs(call.Args, tbl, row)
	if err != nil {
		return Value{}, err
	}
	if args[0].Null {
		return nullV(ast.Float), nil
	}

	switch call.Method {
	case "ADD", "SUB", "MUL", "DIV", "MOD":
		a, err := asFloat(args[0])
		if err != nil {
			return Value{}, colerr.NewTransform("", "", "%s", err.Error())
		}
		if args[1].Null {
			return nullV(ast.Float), nil
		}
		b, err := asFloat(args[1])
		if err != nil {
			return Value{}, colerr.NewTransform("", "", "%s", err.Error())
		}
		switch call.Method {
		case "ADD":
			return floatV(a + b), nil
		case "SUB":
			return floatV(a - b), nil
		case "MUL":
			return floatV(a * b), nil
		case "DIV":
			// A literal zero divisor is rejected at compile time
			// (internal/compile's checkLiteralDivisors); a runtime
			// zero divisor follows ordinary float64 division, which
			// yields +Inf/-Inf/NaN rather than an error.
			return floatV(a / b), nil
		case "MOD":
			return floatV(math.Mod(a, b)), nil
		}
	case "ROUND":
		a, err := asFloat(args[0])
		if err != nil {
			return Value{}, colerr.NewTransform("", "", "%s", err.Error())
		}
		prec := 0
		if !args[1].Null {
			p, err := strconv.Atoi(strings.TrimSpace(asText(args[1])))
			if err != nil {
				return Value{}, colerr.NewTransform("", asText(args[1]), "ROUND precision must be an integer")
			}
			prec = p
		}
		mult := math.Pow(10, float64(prec))
		return floatV(math.Round(a*mult) / mult), nil
	case "ABS":
		a, err := asFloat(args[0])
		if err != nil {
			return Value{}, colerr.NewTransform("", "", "%s", err.Error())
		}
		return floatV(math.Abs(a)), nil
	}
	return Value{}, colerr.NewTransform("", call.Method, "unsupported MATH method %q", call.Method)
}
