package dsl

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/lexer"
	"github.com/colmap/colmap/internal/token"
)

// arity describes how many arguments a (OP, METHOD) pair accepts.
// max == -1 means unbounded (n-ary).
type arity struct{ min, max int }

var methodArity = map[string]map[string]arity{
	"MATH": {
		"ADD": {2, 2}, "SUB": {2, 2}, "MUL": {2, 2}, "DIV": {2, 2}, "MOD": {2, 2},
		"ROUND": {2, 2}, "ABS": {1, 1},
	},
	"STRING": {
		"CONCAT": {1, -1}, "SUBSTR": {2, 3}, "REPLACE": {3, 3},
		"UPPER": {1, 1}, "LOWER": {1, 1}, "TRIM": {1, 1}, "LENGTH": {1, 1},
	},
	"LOGICAL": {
		"IF": {3, 3}, "AND": {1, -1}, "OR": {1, -1}, "NOT": {1, 1},
	},
	"BOOLEAN": {
		"EQ": {2, 2}, "EQUALS": {2, 2}, "NE": {2, 2}, "NOT_EQUALS": {2, 2},
		"GT": {2, 2}, "GREATER_THAN": {2, 2}, "LT": {2, 2}, "LESS_THAN": {2, 2},
		"GTE": {2, 2}, "GREATER_OR_EQUAL": {2, 2}, "LTE": {2, 2}, "LESS_OR_EQUAL": {2, 2},
	},
	"DATE": {
		"FORMAT": {2, 2}, "PARSE": {1, 2}, "ADD_DAYS": {2, 2}, "SUB_DAYS": {2, 2},
		"DIFF": {2, 3}, "DIFF_DAYS": {2, 2}, "CURRENT_DATE": {0, 0}, "EXTRACT": {2, 2},
	},
	"ARRAY": {
		"SPLIT": {2, 2}, "JOIN": {2, 2}, "LENGTH": {1, 1}, "GET": {2, 2},
	},
	"AGGREGATION": {
		"SUM": {1, 1}, "AVG": {1, 1}, "MIN": {1, 1}, "MAX": {1, 1}, "COUNT": {1, 1},
	},
	"DIRECT": {
		"ATTR": {1, 1},
	},
}

// boolAliases maps the long-form BOOLEAN method spellings onto the
// short canonical form used internally and by the infix comparison
// operators, so EQ and EQUALS (for example) produce identical Call
// nodes.
var boolAliases = map[string]string{
	"EQUALS": "EQ", "NOT_EQUALS": "NE", "GREATER_THAN": "GT",
	"LESS_THAN": "LT", "GREATER_OR_EQUAL": "GTE", "LESS_OR_EQUAL": "LTE",
}

// ParseExpr parses a DSL string that must resolve to a column
// expression, not a table-level filter action. Used by the Value
// Parser (for nested recursion) and anywhere a mapping's transform is
// already known to be a projection.
func ParseExpr(s string) (ast.Expr, error) {
	expr, filter, err := parse(s)
	if err != nil {
		return nil, err
	}
	if filter != nil {
		return nil, colerr.NewTransform("", s, "FILTER/FILTERS is a table-level action and cannot be used as a value")
	}
	return expr, nil
}

// ParseTransform is the top-level entry point used by the mapping
// compiler: it classifies s as either a filter action or a projection
// expression and returns exactly one of the two, never mixing the two
// concerns.
func ParseTransform(s string) (expr ast.Expr, filter *ast.Filter, err error) {
	return parse(s)
}

func parse(s string) (ast.Expr, *ast.Filter, error) {
	s = strings.TrimSpace(s)
	body := s
	if strings.HasPrefix(strings.ToLower(body), "trns:") {
		body = strings.TrimSpace(body[len("trns:"):])
	}

	op, method, argsStr, err := splitOpCall(body)
	if err != nil {
		return nil, nil, colerr.NewTransform("", s, "%s", err.Error())
	}

	if !opFamilies[op] {
		return nil, nil, colerr.NewTransform("", s, "unknown operation %q", op)
	}

	if op == "FILTER" || op == "FILTERS" {
		f, ferr := parseFilter(method, argsStr)
		if ferr != nil {
			return nil, nil, ferr
		}
		return nil, f, nil
	}

	call, cerr := buildCall(op, method, argsStr, s)
	if cerr != nil {
		return nil, nil, cerr
	}
	return call, nil, nil
}

// splitOpCall extracts OP and METHOD(args) from body, expecting the
// surface form OP[METHOD(arg, arg, ...)]. It does not validate OP or
// METHOD against the known vocabulary; that happens in the caller.
func splitOpCall(body string) (op, method, argsStr string, err error) {
	lb := strings.IndexByte(body, '[')
	if lb <= 0 || !strings.HasSuffix(body, "]") {
		return "", "", "", errors.Errorf("missing or unbalanced '[' ... ']' in %s", strconv.Quote(body))
	}
	op = strings.ToUpper(strings.TrimSpace(body[:lb]))
	inner := strings.TrimSpace(body[lb+1 : len(body)-1])

	lp := strings.IndexByte(inner, '(')
	if lp <= 0 || !strings.HasSuffix(inner, ")") {
		return "", "", "", errors.Errorf("missing or unbalanced '(' ... ')' in %s", strconv.Quote(inner))
	}
	method = strings.ToUpper(strings.TrimSpace(inner[:lp]))
	argsStr = inner[lp+1 : len(inner)-1]
	return op, method, argsStr, nil
}

// buildCall validates METHOD against OP's vocabulary, checks arity,
// parses arguments via the Lexer/Splitter + Value Parser, and builds
// a raw Call node. Type resolution and Cast insertion happen later,
// during the Mapping Compiler's lowering pass.
func buildCall(op, method, argsStr, original string) (*ast.Call, error) {
	methods, ok := methodArity[op]
	if !ok {
		return nil, colerr.NewTransform("", original, "unknown operation %q", op)
	}
	canonicalMethod := method
	if op == "BOOLEAN" {
		if alt, ok := boolAliases[method]; ok {
			canonicalMethod = alt
		}
	}
	ar, ok := methods[canonicalMethod]
	if !ok {
		return nil, colerr.NewTransform("", original, "unknown method %q for operation %q", method, op)
	}

	rawArgs := lexer.SplitNonEmpty(argsStr)
	if len(rawArgs) < ar.min || (ar.max >= 0 && len(rawArgs) > ar.max) {
		return nil, colerr.NewTransform("", original, "wrong arity for %s[%s(...)]: got %d args", op, method, len(rawArgs))
	}

	call := &ast.Call{Pos: token.NewPosition(), Op: op, Method: canonicalMethod}

	switch {
	case op == "LOGICAL" && canonicalMethod == "IF":
		cond, err := ParseBoolean(rawArgs[0])
		if err != nil {
			return nil, colerr.WrapTransform("", original, err, "invalid IF condition")
		}
		thenV, err := ParseValue(rawArgs[1])
		if err != nil {
			return nil, err
		}
		elseV, err := ParseValue(rawArgs[2])
		if err != nil {
			return nil, err
		}
		call.Args = []ast.Expr{cond, thenV, elseV}
	case op == "LOGICAL" && (canonicalMethod == "AND" || canonicalMethod == "OR" || canonicalMethod == "NOT"):
		for _, a := range rawArgs {
			cond, err := ParseBoolean(a)
			if err != nil {
				return nil, colerr.WrapTransform("", original, err, "invalid boolean operand %q", a)
			}
			call.Args = append(call.Args, cond)
		}
	case op == "BOOLEAN":
		left, err := ParseValue(rawArgs[0])
		if err != nil {
			return nil, err
		}
		right, err := ParseValue(rawArgs[1])
		if err != nil {
			return nil, err
		}
		call.Args = []ast.Expr{left, right}
	case op == "DIRECT":
		left, err := ParseValue(rawArgs[0])
		if err != nil {
			return nil, err
		}
		call.Args = []ast.Expr{left}
	default:
		for _, a := range rawArgs {
			v, err := ParseValue(a)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, v)
		}
	}
	return call, nil
}

// parseFilter builds a *ast.Filter from a FILTER/FILTERS method call.
func parseFilter(method, argsStr string) (*ast.Filter, error) {
	m := strings.ToUpper(strings.TrimSpace(method))
	args := lexer.SplitNonEmpty(argsStr)

	var fm ast.FilterMethod
	switch m {
	case "INCLUDE":
		fm = ast.Include
	case "INCLUDE_IF":
		fm = ast.IncludeIf
	case "EXCLUDE_IF":
		fm = ast.ExcludeIf
	case "LIMIT":
		fm = ast.Limit
	case "OFFSET":
		fm = ast.Offset
	default:
		return nil, colerr.NewTransform("", method, "unsupported FILTER/FILTERS method %q", method)
	}

	f := &ast.Filter{Pos: token.NewPosition(), Method: fm}
	switch fm {
	case ast.Include, ast.IncludeIf, ast.ExcludeIf:
		if len(args) != 1 {
			return nil, colerr.NewTransform("", argsStr, "%s requires exactly one condition argument", m)
		}
		cond, err := ParseBoolean(args[0])
		if err != nil {
			return nil, colerr.WrapTransform("", argsStr, err, "invalid %s condition", m)
		}
		f.Cond = cond
	case ast.Limit, ast.Offset:
		if len(args) != 1 {
			return nil, colerr.NewTransform("", argsStr, "%s requires exactly one integer argument", m)
		}
		n, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return nil, colerr.NewTransform("", args[0], "%s argument must be an integer", m)
		}
		f.N = n
	}
	return f, nil
}
