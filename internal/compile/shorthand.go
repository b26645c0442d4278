package compile

import (
	"regexp"
	"strings"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/token"
)

var (
	dateFormatPattern = regexp.MustCompile(`(?i)^date_format\s*\(\s*['"](.+?)['"]\s*\)$`)
	toDatePattern     = regexp.MustCompile(`(?i)^to_date\s*\(\s*['"](.+?)['"]\s*\)$`)
)

// isOpForm reports whether t is a full OP[...] expression (possibly
// "trns:"-prefixed), in which case it bypasses the simple-transform
// shorthand vocabulary entirely.
func isOpForm(t string) bool {
	lower := strings.ToLower(strings.TrimSpace(t))
	if strings.HasPrefix(lower, "trns:") {
		return true
	}
	for _, op := range []string{"math[", "string[", "logical[", "boolean[", "filter[", "filters[", "date[", "array[", "aggregation[", "direct["} {
		if strings.HasPrefix(lower, op) {
			return true
		}
	}
	return false
}

// applyShorthand interprets a transform string that is neither
// "trns:"-prefixed nor an OP[...] form as one of the fixed
// simple-transform vocabulary, applied to the already-bound source
// expression.
func applyShorthand(transform string, source ast.Expr, target string) (ast.Expr, error) {
	t := strings.TrimSpace(transform)
	pos := token.NewPosition()

	switch strings.ToLower(t) {
	case "to_int":
		return &ast.Cast{Child: source, To: ast.Int}, nil
	case "to_float":
		return &ast.Cast{Child: source, To: ast.Float}, nil
	case "to_str":
		return &ast.Cast{Child: source, To: ast.Text}, nil
	case "to_bool":
		return &ast.Cast{Child: source, To: ast.Bool}, nil
	case "trim":
		return &ast.Call{Pos: pos, Op: "STRING", Method: "TRIM", Args: []ast.Expr{source}}, nil
	case "upper":
		return &ast.Call{Pos: pos, Op: "STRING", Method: "UPPER", Args: []ast.Expr{source}}, nil
	case "lower":
		return &ast.Call{Pos: pos, Op: "STRING", Method: "LOWER", Args: []ast.Expr{source}}, nil
	}

	if m := dateFormatPattern.FindStringSubmatch(t); m != nil {
		fmtLit := ast.NewTextLiteral(pos, m[1])
		return &ast.Call{Pos: pos, Op: "DATE", Method: "FORMAT", Args: []ast.Expr{source, fmtLit}}, nil
	}
	if m := toDatePattern.FindStringSubmatch(t); m != nil {
		fmtLit := ast.NewTextLiteral(pos, m[1])
		return &ast.Call{Pos: pos, Op: "DATE", Method: "PARSE", Args: []ast.Expr{source, fmtLit}}, nil
	}

	return nil, colerr.NewTransform(target, t, "unsupported simple transform %q", t)
}
