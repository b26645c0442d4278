package compile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMappings_JSON(t *testing.T) {
	data := []byte(`[{"target":"out","source":"in"}]`)
	records, err := LoadMappings("mapping.json", data)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "out", records[0].Target)
}

func TestLoadMappings_YAML(t *testing.T) {
	data := []byte("- target: out\n  source: in\n")
	records, err := LoadMappings("mapping.yaml", data)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "out", records[0].Target)
}

func TestLoadMappings_UnknownExtensionSniffsJSONThenYAML(t *testing.T) {
	data := []byte(`[{"target":"out"}]`)
	records, err := LoadMappings("mapping.conf", data)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "out", records[0].Target)
}

func TestLoadMappings_InvalidDataErrors(t *testing.T) {
	_, err := LoadMappings("mapping.json", []byte(`not json or yaml: [`))
	assert.Error(t, err)
}
