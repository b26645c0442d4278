package dsl

import (
	"strings"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/token"
)

// infixOps lists the infix comparison operators in scan priority
// order: longer operators must be tried before their prefixes (">="
// before ">").
var infixOps = []struct {
	sym    string
	method string
}{
	{"==", "EQ"}, {"!=", "NE"}, {">=", "GTE"}, {"<=", "LTE"}, {">", "GT"}, {"<", "LT"},
}

// bareBoolMethods is the set of comparison/logical method names that
// may appear without their OP[...] wrapper, e.g. "EQ(a,b)" instead of
// "BOOLEAN[EQ(a,b)]".
var bareBoolMethods = map[string]string{
	"EQ": "BOOLEAN", "NE": "BOOLEAN", "GT": "BOOLEAN", "LT": "BOOLEAN",
	"GTE": "BOOLEAN", "LTE": "BOOLEAN",
	"EQUALS": "BOOLEAN", "NOT_EQUALS": "BOOLEAN", "GREATER_THAN": "BOOLEAN",
	"LESS_THAN": "BOOLEAN", "GREATER_OR_EQUAL": "BOOLEAN", "LESS_OR_EQUAL": "BOOLEAN",
	"IF": "LOGICAL", "AND": "LOGICAL", "OR": "LOGICAL", "NOT": "LOGICAL",
}

// ParseBoolean parses s in boolean-argument position: a sub-grammar
// layered on top of the ordinary expression grammar. It
// tries, in order: a full OP[METHOD(...)] expression, a bare
// METHOD(...) call (no OP[] wrapper), an infix "left OP right"
// comparison, and finally falls back to an ordinary value (a bare
// boolean column or literal).
func ParseBoolean(s string) (ast.Expr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, colerr.NewTransform("", s, "empty boolean expression")
	}

	if looksLikeTransform(s) {
		return ParseExpr(s)
	}

	if call, ok, err := parseBareCall(s); ok {
		return call, err
	}

	if expr, ok, err := parseInfix(s); ok {
		return expr, err
	}

	return ParseValue(s)
}

// parseBareCall recognizes METHOD(args) without its OP[...] wrapper.
func parseBareCall(s string) (ast.Expr, bool, error) {
	lp := strings.IndexByte(s, '(')
	if lp <= 0 || !strings.HasSuffix(s, ")") {
		return nil, false, nil
	}
	name := strings.ToUpper(strings.TrimSpace(s[:lp]))
	op, known := bareBoolMethods[name]
	if !known {
		return nil, false, nil
	}
	argsStr := s[lp+1 : len(s)-1]
	call, err := buildCall(op, name, argsStr, s)
	return call, true, err
}

// parseInfix scans s for a top-level comparison operator (outside of
// quotes, parens, and brackets) in priority order and, if found,
// builds a BOOLEAN Call from the two sides.
func parseInfix(s string) (ast.Expr, bool, error) {
	for _, op := range infixOps {
		if idx := findTopLevel(s, op.sym); idx >= 0 {
			left := strings.TrimSpace(s[:idx])
			right := strings.TrimSpace(s[idx+len(op.sym):])
			if left == "" || right == "" {
				continue
			}
			leftExpr, err := ParseValue(left)
			if err != nil {
				return nil, true, err
			}
			rightExpr, err := ParseValue(right)
			if err != nil {
				return nil, true, err
			}
			call := &ast.Call{
				Pos:    token.NewPosition(),
				Op:     "BOOLEAN",
				Method: op.method,
				Args:   []ast.Expr{leftExpr, rightExpr},
			}
			return call, true, nil
		}
	}
	return nil, false, nil
}

// findTopLevel returns the index of the first occurrence of sym in s
// that is not inside a quoted string, parenthesized group, or bracket
// group, or -1 if none is found. ">" and "<" matches that are really
// half of ">=" / "<=" are skipped by the caller trying those operators
// first.
func findTopLevel(s string, sym string) int {
	var (
		parenDepth int
		brackDepth int
		quote      rune
	)
	runes := []rune(s)
	symRunes := []rune(sym)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if quote != 0 {
			if ch == quote && (i == 0 || runes[i-1] != '\\') {
				quote = 0
			}
			continue
		}
		switch {
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '(':
			parenDepth++
		case ch == ')':
			parenDepth--
		case ch == '[':
			brackDepth++
		case ch == ']':
			brackDepth--
		case parenDepth == 0 && brackDepth == 0 && matchAt(runes, i, symRunes):
			return len(string(runes[:i]))
		}
	}
	return -1
}

func matchAt(runes []rune, i int, sym []rune) bool {
	if i+len(sym) > len(runes) {
		return false
	}
	for j, r := range sym {
		if runes[i+j] != r {
			return false
		}
	}
	return true
}
