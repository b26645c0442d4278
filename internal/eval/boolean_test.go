package eval

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/coltable"
)

func lit(v ast.ValueType, text string) *ast.Literal {
	switch v {
	case ast.Int:
		n, _ := strconv.ParseInt(text, 10, 64)
		return &ast.Literal{Val: ast.Int, Text: text, IntV: n}
	default:
		return &ast.Literal{Val: v, Text: text}
	}
}

func TestEvalBoolean_EQCoercesTextAndNumber(t *testing.T) {
	tbl := mustTable(t, &coltable.Column{Name: "code", Typ: coltable.TypeText, Texts: []string{"5"}})
	expr := call("BOOLEAN", "EQ", attr("code"), lit(ast.Int, "5"))
	c, err := EvalColumn("match", expr, tbl)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, c.Bools)
}

func TestEvalBoolean_NEIsNegatedEQ(t *testing.T) {
	tbl := mustTable(t, col("a", []int64{1, 2}))
	expr := call("BOOLEAN", "NE", attr("a"), &ast.Literal{Val: ast.Int, IntV: 1, Text: "1"})
	c, err := EvalColumn("ne", expr, tbl)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, c.Bools)
}

func TestEvalBoolean_OrderingOperators(t *testing.T) {
	tbl := mustTable(t, col("a", []int64{1, 2, 3}))
	cases := []struct {
		method string
		want   []bool
	}{
		{"GT", []bool{false, false, true}},
		{"LT", []bool{true, false, false}},
		{"GTE", []bool{false, true, true}},
		{"LTE", []bool{true, true, false}},
	}
	for _, tc := range cases {
		expr := call("BOOLEAN", tc.method, attr("a"), &ast.Literal{Val: ast.Int, IntV: 2, Text: "2"})
		c, err := EvalColumn("cmp", expr, tbl)
		require.NoError(t, err)
		assert.Equal(t, tc.want, c.Bools, tc.method)
	}
}

func TestEvalBoolean_NullOperandShortCircuitsToFalse(t *testing.T) {
	tbl := mustTable(t, &coltable.Column{
		Name: "a", Typ: coltable.TypeInt, Ints: []int64{0, 1}, Nulls: []bool{true, false},
	})
	expr := call("BOOLEAN", "EQ", attr("a"), &ast.Literal{Val: ast.Int, IntV: 1, Text: "1"})
	c, err := EvalColumn("eq", expr, tbl)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, c.Bools)
}

func TestEvalBoolean_DateComparisonUsesTimeOrdering(t *testing.T) {
	tbl := mustTable(t,
		&coltable.Column{Name: "d1", Typ: coltable.TypeText, Texts: []string{"01012024"}},
		&coltable.Column{Name: "d2", Typ: coltable.TypeText, Texts: []string{"01022024"}},
	)
	cast1 := &ast.Cast{Child: attr("d1"), To: ast.Date}
	cast2 := &ast.Cast{Child: attr("d2"), To: ast.Date}
	expr := call("BOOLEAN", "LT", cast1, cast2)
	c, err := EvalColumn("before", expr, tbl)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, c.Bools)
}
