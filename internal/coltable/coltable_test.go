package coltable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ComputesHeightFromFirstColumn(t *testing.T) {
	tbl, err := New([]*Column{
		{Name: "a", Typ: TypeInt, Ints: []int64{1, 2, 3}},
		{Name: "b", Typ: TypeText, Texts: []string{"x", "y", "z"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Height())
	assert.Equal(t, 2, tbl.Width())
	assert.Equal(t, []string{"a", "b"}, tbl.Names())
}

func TestNew_MismatchedHeightErrors(t *testing.T) {
	_, err := New([]*Column{
		{Name: "a", Typ: TypeInt, Ints: []int64{1, 2}},
		{Name: "b", Typ: TypeInt, Ints: []int64{1}},
	})
	assert.Error(t, err)
}

func TestNew_DuplicateColumnNameErrors(t *testing.T) {
	_, err := New([]*Column{
		{Name: "a", Typ: TypeInt, Ints: []int64{1}},
		{Name: "a", Typ: TypeInt, Ints: []int64{2}},
	})
	assert.Error(t, err)
}

func TestEmpty_HasZeroHeightAndWidth(t *testing.T) {
	tbl := Empty()
	assert.Equal(t, 0, tbl.Height())
	assert.Equal(t, 0, tbl.Width())
}

func TestColumn_LookupByName(t *testing.T) {
	tbl, err := New([]*Column{{Name: "a", Typ: TypeInt, Ints: []int64{1}}})
	require.NoError(t, err)

	col, ok := tbl.Column("a")
	require.True(t, ok)
	assert.Equal(t, []int64{1}, col.Ints)

	_, ok = tbl.Column("missing")
	assert.False(t, ok)
}

func TestColumn_IsNullRespectsNullsSlice(t *testing.T) {
	col := &Column{Name: "a", Typ: TypeInt, Ints: []int64{1, 0}, Nulls: []bool{false, true}}
	assert.False(t, col.IsNull(0))
	assert.True(t, col.IsNull(1))
}

func TestColumn_IsNullFalseWhenNoNullsSlice(t *testing.T) {
	col := &Column{Name: "a", Typ: TypeInt, Ints: []int64{1, 2}}
	assert.False(t, col.IsNull(0))
	assert.False(t, col.IsNull(1))
}

func TestTable_TakeSelectsRowsInGivenOrder(t *testing.T) {
	tbl, err := New([]*Column{
		{Name: "a", Typ: TypeInt, Ints: []int64{10, 20, 30}},
		{Name: "b", Typ: TypeText, Texts: []string{"x", "y", "z"}, Nulls: []bool{false, true, false}},
	})
	require.NoError(t, err)

	out := tbl.Take([]int{2, 0})
	assert.Equal(t, 2, out.Height())

	a, _ := out.Column("a")
	assert.Equal(t, []int64{30, 10}, a.Ints)

	b, _ := out.Column("b")
	assert.Equal(t, []string{"z", "x"}, b.Texts)
	assert.False(t, b.IsNull(0))
	assert.False(t, b.IsNull(1))
}

func TestTable_TakeEmptyIndicesYieldsZeroHeight(t *testing.T) {
	tbl, err := New([]*Column{{Name: "a", Typ: TypeInt, Ints: []int64{1, 2, 3}}})
	require.NoError(t, err)

	out := tbl.Take(nil)
	assert.Equal(t, 0, out.Height())
}

func TestRowRange_ProducesIdentitySequence(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, RowRange(3))
	assert.Empty(t, RowRange(0))
}
