package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Canonical renders expr back into OP[METHOD(arg, arg, ...)] surface
// syntax. Re-parsing this string must yield an AST equal to expr: the
// parser is idempotent over its own canonical output.
func Canonical(expr Expr) string {
	var b strings.Builder
	writeCanonical(&b, expr)
	return b.String()
}

func writeCanonical(b *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case *Literal:
		switch e.Val {
		case Text:
			b.WriteByte('\'')
			b.WriteString(strings.ReplaceAll(e.Text, "'", "\\'"))
			b.WriteByte('\'')
		case Bool:
			b.WriteString(strconv.FormatBool(e.BoolV))
		default:
			b.WriteString(e.Text)
		}
	case *Column:
		fmt.Fprintf(b, "attr('%s')", e.Name)
	case *Cast:
		writeCanonical(b, e.Child)
	case *Call:
		b.WriteString(e.Op)
		b.WriteByte('[')
		b.WriteString(e.Method)
		b.WriteByte('(')
		for i, a := range e.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeCanonical(b, a)
		}
		b.WriteByte(')')
		b.WriteByte(']')
	}
}
