package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit_TopLevelCommasOnly(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Split("a, b, c"))
}

func TestSplit_RespectsNestedParens(t *testing.T) {
	got := Split("MATH[ADD(1,2)], attr('b')")
	assert.Equal(t, []string{"MATH[ADD(1,2)]", "attr('b')"}, got)
}

func TestSplit_RespectsQuotedCommas(t *testing.T) {
	got := Split(`'a, b', c`)
	assert.Equal(t, []string{"'a, b'", "c"}, got)
}

func TestSplit_RespectsEscapedQuoteInsideQuotedArg(t *testing.T) {
	got := Split(`'it\'s fine', 2`)
	assert.Equal(t, []string{`'it\'s fine'`, "2"}, got)
}

func TestSplit_TrailingCommaPreservesEmptyArg(t *testing.T) {
	got := Split("a,")
	assert.Equal(t, []string{"a", ""}, got)
}

func TestSplitNonEmpty_EmptyStringMeansZeroArgs(t *testing.T) {
	assert.Nil(t, SplitNonEmpty(""))
	assert.Nil(t, SplitNonEmpty("   "))
}

func TestSplitNonEmpty_SingleArgPreserved(t *testing.T) {
	assert.Equal(t, []string{"a"}, SplitNonEmpty("a"))
}
