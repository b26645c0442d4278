package compile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_OldFieldSpelling(t *testing.T) {
	raw := RawRecord{"target": "out", "source": "in", "transform": "trns:to_int", "default": "0"}
	rec := Normalize(raw)
	assert.Equal(t, "out", rec.Target)
	require.NotNil(t, rec.Source)
	assert.Equal(t, "in", *rec.Source)
	require.NotNil(t, rec.Transform)
	assert.Equal(t, "trns:to_int", *rec.Transform)
	require.NotNil(t, rec.Default)
	assert.Equal(t, "0", *rec.Default)
}

func TestNormalize_NewFieldSpelling(t *testing.T) {
	raw := RawRecord{"affected_target": "out", "affected_source": "in", "trns": "to_str"}
	rec := Normalize(raw)
	assert.Equal(t, "out", rec.Target)
	require.NotNil(t, rec.Source)
	assert.Equal(t, "in", *rec.Source)
	require.NotNil(t, rec.Transform)
	assert.Equal(t, "to_str", *rec.Transform)
}

func TestNormalize_OldSpellingTakesPrecedenceWhenBothPresent(t *testing.T) {
	raw := RawRecord{"target": "old_target", "affected_target": "new_target"}
	rec := Normalize(raw)
	assert.Equal(t, "old_target", rec.Target)
}

func TestNormalize_NonStringDefaultRendersLiteralForm(t *testing.T) {
	raw := RawRecord{"target": "out", "default": true}
	rec := Normalize(raw)
	require.NotNil(t, rec.Default)
	assert.Equal(t, "true", *rec.Default)
}

func TestNormalize_NoSourceOrTransformLeavesThemNil(t *testing.T) {
	raw := RawRecord{"target": "out"}
	rec := Normalize(raw)
	assert.Nil(t, rec.Source)
	assert.Nil(t, rec.Transform)
}
