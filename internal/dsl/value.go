// Package dsl implements the value parser and expression parser,
// together with its boolean sub-grammar.
package dsl

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/token"
)

// opFamilies is the recognized set of OP identifiers an argument
// token may resolve to when deciding whether it is a nested DSL
// expression.
var opFamilies = map[string]bool{
	"MATH": true, "STRING": true, "LOGICAL": true, "BOOLEAN": true,
	"DATE": true, "ARRAY": true, "AGGREGATION": true,
	"FILTER": true, "FILTERS": true, "DIRECT": true,
}

var attrPattern = regexp.MustCompile(`(?is)^attr\(\s*(.+?)\s*\)$`)

// ParseValue resolves a single trimmed argument token to an
// expression node, applying precedence: nested DSL, column reference,
// boolean literal, numeric literal, quoted string literal, then bare
// column reference as the fallback.
func ParseValue(tok string) (ast.Expr, error) {
	t := strings.TrimSpace(tok)
	pos := token.NewPosition()

	if looksLikeTransform(t) {
		return ParseExpr(t)
	}

	if m := attrPattern.FindStringSubmatch(t); m != nil {
		name := strings.TrimSpace(m[1])
		name = unquote(name)
		return &ast.Column{Pos: pos, Name: name}, nil
	}

	lower := strings.ToLower(t)
	if lower == "true" {
		return ast.NewBoolLiteral(pos, true), nil
	}
	if lower == "false" {
		return ast.NewBoolLiteral(pos, false), nil
	}

	if isNumber(t) {
		if strings.Contains(t, ".") {
			f, err := cast.ToFloat64E(t)
			if err != nil {
				return nil, colerr.NewTransform("", t, "invalid numeric literal %q", t)
			}
			return ast.NewFloatLiteral(pos, t, f), nil
		}
		i, err := cast.ToInt64E(t)
		if err != nil {
			return nil, colerr.NewTransform("", t, "invalid numeric literal %q", t)
		}
		return ast.NewIntLiteral(pos, t, i), nil
	}

	if q, ok := unquoteLiteral(t); ok {
		return ast.NewTextLiteral(pos, q), nil
	}

	return &ast.Column{Pos: pos, Name: t}, nil
}

// looksLikeTransform reports whether t should recurse into the
// expression parser: either the normalized "trns:" prefix, or an
// OP[...] form whose OP is a recognized operation family.
func looksLikeTransform(t string) bool {
	if strings.HasPrefix(strings.ToLower(t), "trns:") {
		return true
	}
	idx := strings.IndexByte(t, '[')
	if idx <= 0 || !strings.HasSuffix(t, "]") {
		return false
	}
	op := strings.ToUpper(strings.TrimSpace(t[:idx]))
	return opFamilies[op]
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	_, err := cast.ToFloat64E(s)
	return err == nil
}

// unquote strips one layer of matching single or double quotes, if
// present; otherwise returns s unchanged.
func unquote(s string) string {
	if q, ok := unquoteLiteral(s); ok {
		return q
	}
	return s
}

// unquoteLiteral reports whether s is a single- or double-quoted
// literal with matching quotes, and if so returns its inner content
// with backslash-escaped quotes of the same kind unescaped.
func unquoteLiteral(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	first, last := s[0], s[len(s)-1]
	if (first != '\'' && first != '"') || first != last {
		return "", false
	}
	inner := s[1 : len(s)-1]
	inner = strings.ReplaceAll(inner, "\\"+string(first), string(first))
	return inner, true
}
