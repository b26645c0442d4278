// Package ast defines the expression tree produced by the value
// parser and expression parser.
package ast

import "github.com/colmap/colmap/internal/token"

// ValueType is the result type of an expression node, drawn from the
// same vocabulary as a table column's type.
type ValueType int

const (
	Unknown ValueType = iota
	Int
	Float
	Bool
	Text
	Date
	Datetime
	ListText
)

func (t ValueType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Text:
		return "text"
	case Date:
		return "date"
	case Datetime:
		return "datetime"
	case ListText:
		return "list_text"
	default:
		return "unknown"
	}
}

// Expr is the base interface implemented by every non-filter node of
// the expression tree. Every Expr is annotated, lazily or eagerly,
// with its result Type.
type Expr interface {
	Start() token.Position
	End() token.Position
	Type() ValueType
	expr()
}

// Literal is a constant value parsed from a quoted string, a bare
// number, or a bare true/false. Text is kept in its original textual
// form so that arithmetic operators can round-trip it exactly.
type Literal struct {
	Pos   token.Position
	Val   ValueType
	Text  string // exact source text, e.g. "3.140" or "true" or the unquoted string content
	IntV  int64
	FltV  float64
	BoolV bool
}

func (l *Literal) expr()               {}
func (l *Literal) Start() token.Position { return l.Pos }
func (l *Literal) End() token.Position   { return l.Pos }
func (l *Literal) Type() ValueType       { return l.Val }

func NewIntLiteral(pos token.Position, text string, v int64) *Literal {
	return &Literal{Pos: pos, Val: Int, Text: text, IntV: v}
}

func NewFloatLiteral(pos token.Position, text string, v float64) *Literal {
	return &Literal{Pos: pos, Val: Float, Text: text, FltV: v}
}

func NewBoolLiteral(pos token.Position, v bool) *Literal {
	text := "false"
	if v {
		text = "true"
	}
	return &Literal{Pos: pos, Val: Bool, Text: text, BoolV: v}
}

func NewTextLiteral(pos token.Position, v string) *Literal {
	return &Literal{Pos: pos, Val: Text, Text: v}
}

// Column is a reference to an input (or previously-bound) column by
// name: attr('name') / ATTR(name), or a bare identifier that resolves
// to a real column.
type Column struct {
	Pos  token.Position
	Name string
	// ResolvedType is filled in by the compiler once the input schema
	// is known; Unknown until then.
	ResolvedType ValueType
}

func (c *Column) expr()                 {}
func (c *Column) Start() token.Position { return c.Pos }
func (c *Column) End() token.Position   { return c.Pos }
func (c *Column) Type() ValueType       { return c.ResolvedType }

// Call is an OP[METHOD(args...)] invocation. ResultType is computed
// by the compiler's lowering pass once operand types are known.
type Call struct {
	Pos        token.Position
	Op         string // normalized upper-case operation family, e.g. "MATH"
	Method     string // normalized upper-case method, e.g. "ADD"
	Args       []Expr
	ResultType ValueType
}

func (c *Call) expr()                 {}
func (c *Call) Start() token.Position { return c.Pos }
func (c *Call) End() token.Position   { return c.Pos }
func (c *Call) Type() ValueType       { return c.ResultType }

// Cast is an explicit type coercion of its child. The compiler inserts
// it for the to_int/to_float/to_str/to_bool shorthands; operators that
// coerce their operands implicitly (CONCAT to text, MATH to numbers,
// DATE to dates) do so inside the evaluator, without a Cast node, so
// those coercion errors surface at evaluation time.
type Cast struct {
	Child Expr
	To    ValueType
}

func (c *Cast) expr()                 {}
func (c *Cast) Start() token.Position { return c.Child.Start() }
func (c *Cast) End() token.Position   { return c.Child.End() }
func (c *Cast) Type() ValueType       { return c.To }

// FilterMethod enumerates the table-level actions produced by a
// FILTER/FILTERS transform.
type FilterMethod int

const (
	Include FilterMethod = iota
	IncludeIf
	ExcludeIf
	Limit
	Offset
)

func (m FilterMethod) String() string {
	switch m {
	case Include:
		return "INCLUDE"
	case IncludeIf:
		return "INCLUDE_IF"
	case ExcludeIf:
		return "EXCLUDE_IF"
	case Limit:
		return "LIMIT"
	case Offset:
		return "OFFSET"
	default:
		return "UNKNOWN"
	}
}

// Filter is a table-level action rather than a column expression; it
// does not implement Expr.
type Filter struct {
	Pos    token.Position
	Method FilterMethod
	// Cond holds the boolean predicate for INCLUDE/INCLUDE_IF/EXCLUDE_IF.
	Cond Expr
	// N holds the row count for LIMIT/OFFSET.
	N int
}
