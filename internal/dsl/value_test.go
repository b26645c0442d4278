package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colmap/colmap/internal/ast"
)

func TestParseValue_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType ast.ValueType
	}{
		{"nested transform", "MATH[ADD(1,2)]", ast.Int},
		{"attr call", "attr('amount')", ast.Unknown},
		{"bool literal true", "true", ast.Bool},
		{"bool literal false", "FALSE", ast.Bool},
		{"integer literal", "42", ast.Int},
		{"float literal", "3.140", ast.Float},
		{"quoted string", `"hello"`, ast.Text},
		{"single quoted string", `'hello'`, ast.Text},
		{"bare column", "amount", ast.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := ParseValue(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, expr.Type())
		})
	}
}

func TestParseValue_FloatRetainsTextualForm(t *testing.T) {
	expr, err := ParseValue("3.140")
	require.NoError(t, err)
	lit, ok := expr.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "3.140", lit.Text)
}

func TestParseValue_QuotedStringUnescapesQuote(t *testing.T) {
	expr, err := ParseValue(`'it\'s here'`)
	require.NoError(t, err)
	lit, ok := expr.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "it's here", lit.Text)
}

func TestParseValue_AttrNameIsUnquoted(t *testing.T) {
	expr, err := ParseValue(`attr("order_id")`)
	require.NoError(t, err)
	col, ok := expr.(*ast.Column)
	require.True(t, ok)
	assert.Equal(t, "order_id", col.Name)
}
