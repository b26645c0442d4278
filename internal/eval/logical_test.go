package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colmap/colmap/internal/ast"
	"github.com/colmap/colmap/internal/coltable"
)

func boolCol(name string, vals ...bool) *coltable.Column {
	return &coltable.Column{Name: name, Typ: coltable.TypeBool, Bools: vals}
}

func TestEvalLogical_ANDShortCircuitsOnFirstFalse(t *testing.T) {
	tbl := mustTable(t, boolCol("a", true, false), boolCol("b", true, true))
	expr := call("LOGICAL", "AND", attr("a"), attr("b"))
	c, err := EvalColumn("out", expr, tbl)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, c.Bools)
}

func TestEvalLogical_ORIsTrueIfAnyArgIsTrue(t *testing.T) {
	tbl := mustTable(t, boolCol("a", false, false), boolCol("b", true, false))
	expr := call("LOGICAL", "OR", attr("a"), attr("b"))
	c, err := EvalColumn("out", expr, tbl)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, c.Bools)
}

func TestEvalLogical_NOTNegates(t *testing.T) {
	tbl := mustTable(t, boolCol("a", true, false))
	expr := call("LOGICAL", "NOT", attr("a"))
	c, err := EvalColumn("out", expr, tbl)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, c.Bools)
}

func TestEvalLogical_ANDRejectsNonBooleanArg(t *testing.T) {
	tbl := mustTable(t, col("a", []int64{1}))
	expr := call("LOGICAL", "AND", attr("a"))
	_, err := EvalColumn("out", expr, tbl)
	assert.Error(t, err)
}

func TestEvalLogical_IfFallsBackToElseBranch(t *testing.T) {
	tbl := mustTable(t, boolCol("flag", false))
	expr := call("LOGICAL", "IF", attr("flag"),
		&ast.Literal{Val: ast.Text, Text: "yes"},
		&ast.Literal{Val: ast.Text, Text: "no"})
	c, err := EvalColumn("out", expr, tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"no"}, c.Texts)
}
