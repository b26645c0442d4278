package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrftimeToGoLayout_TranslatesDefaultFormat(t *testing.T) {
	layout, err := strftimeToGoLayout("%m%d%Y")
	require.NoError(t, err)
	assert.Equal(t, "01022006", layout)
}

func TestStrftimeToGoLayout_TranslatesPunctuatedFormat(t *testing.T) {
	layout, err := strftimeToGoLayout("%Y-%m-%d %H:%M:%S")
	require.NoError(t, err)
	assert.Equal(t, "2006-01-02 15:04:05", layout)
}

func TestStrftimeToGoLayout_LiteralPercentEscape(t *testing.T) {
	layout, err := strftimeToGoLayout("%Y%%")
	require.NoError(t, err)
	assert.Equal(t, "2006%", layout)
}

func TestStrftimeToGoLayout_UnsupportedDirectiveErrors(t *testing.T) {
	_, err := strftimeToGoLayout("%Q")
	assert.Error(t, err)
}

func TestStrftimeToGoLayout_TrailingPercentIsLiteral(t *testing.T) {
	layout, err := strftimeToGoLayout("%Y%")
	require.NoError(t, err)
	assert.Equal(t, "2006%", layout)
}
