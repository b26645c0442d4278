package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/coltable"
)

func mustTable(t *testing.T, cols ...*coltable.Column) *coltable.Table {
	t.Helper()
	tbl, err := coltable.New(cols)
	require.NoError(t, err)
	return tbl
}

func col(name string, ints []int64) *coltable.Column {
	return &coltable.Column{Name: name, Typ: coltable.TypeInt, Ints: ints}
}

func attr(name string) *ast.Column { return &ast.Column{Name: name} }

func call(op, method string, args ...ast.Expr) *ast.Call {
	return &ast.Call{Op: op, Method: method, Args: args}
}

func TestEvalColumn_Math(t *testing.T) {
	tbl := mustTable(t, col("a", []int64{1, 2, 3}), col("b", []int64{10, 20, 30}))
	c, err := EvalColumn("sum", call("MATH", "ADD", attr("a"), attr("b")), tbl)
	require.NoError(t, err)
	assert.Equal(t, coltable.TypeFloat, c.Typ)
	assert.Equal(t, []float64{11, 22, 33}, c.Floats)
}

func TestEvalColumn_MathDivByRuntimeZeroYieldsInf(t *testing.T) {
	tbl := mustTable(t, col("a", []int64{1, -1, 0}), col("b", []int64{0, 0, 0}))
	c, err := EvalColumn("x", call("MATH", "DIV", attr("a"), attr("b")), tbl)
	require.NoError(t, err)
	require.Len(t, c.Floats, 3)
	assert.True(t, math.IsInf(c.Floats[0], 1))
	assert.True(t, math.IsInf(c.Floats[1], -1))
	assert.True(t, math.IsNaN(c.Floats[2]))
}

func TestEvalColumn_StringConcat(t *testing.T) {
	tbl := mustTable(t, &coltable.Column{Name: "first", Typ: coltable.TypeText, Texts: []string{"Ada", "Bo"}})
	expr := call("STRING", "CONCAT", attr("first"), &ast.Literal{Val: ast.Text, Text: "!"})
	c, err := EvalColumn("greet", expr, tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada!", "Bo!"}, c.Texts)
}

func TestEvalColumn_SubstrIsZeroBased(t *testing.T) {
	tbl := mustTable(t, &coltable.Column{Name: "s", Typ: coltable.TypeText, Texts: []string{"hello"}})
	expr := call("STRING", "SUBSTR", attr("s"), &ast.Literal{Val: ast.Int, IntV: 1, Text: "1"}, &ast.Literal{Val: ast.Int, IntV: 3, Text: "3"})
	c, err := EvalColumn("sub", expr, tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"ell"}, c.Texts)
}

func TestEvalColumn_NullPropagatesThroughCast(t *testing.T) {
	tbl := mustTable(t, &coltable.Column{
		Name: "n", Typ: coltable.TypeInt, Ints: []int64{0, 5}, Nulls: []bool{true, false},
	})
	expr := &ast.Cast{Child: attr("n"), To: ast.Float}
	c, err := EvalColumn("n2", expr, tbl)
	require.NoError(t, err)
	require.NotNil(t, c.Nulls)
	assert.True(t, c.Nulls[0])
	assert.False(t, c.Nulls[1])
	assert.Equal(t, 5.0, c.Floats[1])
}

func TestEvalBool_NullTreatedAsNotTrue(t *testing.T) {
	tbl := mustTable(t, &coltable.Column{
		Name: "flag", Typ: coltable.TypeBool, Bools: []bool{true, false}, Nulls: []bool{false, true},
	})
	mask, err := EvalBool(attr("flag"), tbl)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, mask)
}

func TestEvalColumn_LogicalIfShortCircuits(t *testing.T) {
	tbl := mustTable(t, col("a", []int64{1, 0}))
	cond := call("BOOLEAN", "GT", attr("a"), &ast.Literal{Val: ast.Int, IntV: 0, Text: "0"})
	expr := call("LOGICAL", "IF", cond,
		&ast.Literal{Val: ast.Text, Text: "pos"},
		&ast.Literal{Val: ast.Text, Text: "non-pos"})
	c, err := EvalColumn("label", expr, tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"pos", "non-pos"}, c.Texts)
}

func TestEvalColumn_ArrayJoinPassesThroughNonList(t *testing.T) {
	tbl := mustTable(t, &coltable.Column{Name: "s", Typ: coltable.TypeText, Texts: []string{"abc"}})
	expr := call("ARRAY", "JOIN", attr("s"), &ast.Literal{Val: ast.Text, Text: ","})
	c, err := EvalColumn("joined", expr, tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, c.Texts)
}
