package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colmap/colmap/internal/ast"
)

func TestParseBoolean_BareCall(t *testing.T) {
	expr, err := ParseBoolean("EQ(attr('status'), 'active')")
	require.NoError(t, err)
	call, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "BOOLEAN", call.Op)
	assert.Equal(t, "EQ", call.Method)
}

func TestParseBoolean_Infix(t *testing.T) {
	tests := []struct {
		input      string
		wantMethod string
	}{
		{"attr('a') == attr('b')", "EQ"},
		{"attr('a') != attr('b')", "NE"},
		{"attr('a') >= 10", "GTE"},
		{"attr('a') <= 10", "LTE"},
		{"attr('a') > 10", "GT"},
		{"attr('a') < 10", "LT"},
	}
	for _, tt := range tests {
		expr, err := ParseBoolean(tt.input)
		require.NoError(t, err)
		call, ok := expr.(*ast.Call)
		require.True(t, ok)
		assert.Equal(t, tt.wantMethod, call.Method)
	}
}

func TestParseBoolean_InfixPriorityPicksLongestOperatorFirst(t *testing.T) {
	expr, err := ParseBoolean("attr('a') >= attr('b')")
	require.NoError(t, err)
	call := expr.(*ast.Call)
	assert.Equal(t, "GTE", call.Method)
}

func TestFindTopLevel_IgnoresOperatorInsideQuotedLiteral(t *testing.T) {
	idx := findTopLevel(`attr('a') == 'x > y'`, ">")
	assert.Equal(t, -1, idx)
}

func TestFindTopLevel_IgnoresOperatorInsideNestedCall(t *testing.T) {
	idx := findTopLevel(`MATH[ADD(attr('a'), 1)] == 2`, "==")
	assert.True(t, idx >= 0)

	idxInsideCall := findTopLevel(`MATH[ADD(attr('a'), 1)]`, "==")
	assert.Equal(t, -1, idxInsideCall)
}

func TestParseBoolean_FallsBackToBareColumn(t *testing.T) {
	expr, err := ParseBoolean("is_active")
	require.NoError(t, err)
	col, ok := expr.(*ast.Column)
	require.True(t, ok)
	assert.Equal(t, "is_active", col.Name)
}
