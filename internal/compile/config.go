package compile

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadMappings decodes a mapping document from raw bytes. JSON and
// YAML are both accepted; format is picked by file extension, falling
// back to a JSON-then-YAML sniff when the extension is unrecognized.
func LoadMappings(path string, data []byte) ([]MappingRecord, error) {
	raws, err := decodeRaws(path, data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding mapping document %s", path)
	}
	return NormalizeAll(raws), nil
}

func decodeRaws(path string, data []byte) ([]RawRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	case ".json":
		return decodeJSON(data)
	default:
		if raws, err := decodeJSON(data); err == nil {
			return raws, nil
		}
		return decodeYAML(data)
	}
}

func decodeJSON(data []byte) ([]RawRecord, error) {
	var raws []RawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

func decodeYAML(data []byte) ([]RawRecord, error) {
	var raws []RawRecord
	if err := yaml.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}
