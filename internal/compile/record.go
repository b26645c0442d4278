// Package compile implements the mapping compiler: it lowers a
// declarative list of mapping records, plus the input schema, into an
// executable Plan of projections and filter actions.
package compile

import (
	"strings"

	"github.com/spf13/cast"
)

// MappingRecord is one row of the mapping document, after alias
// normalization. The document may spell these fields either the
// "old" way (target, source, transform) or the "new" way
// (affected_target, affected_source, trns); both are folded into this
// one shape before compilation.
type MappingRecord struct {
	ID        string
	Target    string
	Source    *string
	Transform *string
	Default   *string
}

// RawRecord is the loosely-typed shape a mapping document decodes
// into from JSON or YAML, before alias normalization.
type RawRecord map[string]any

// Normalize folds a RawRecord's old/new field spellings into a single
// MappingRecord, resolving the canonical target, source, transform,
// and default.
func Normalize(raw RawRecord) MappingRecord {
	return MappingRecord{
		ID:        str(raw["id"]),
		Target:    firstNonEmpty(raw, "target", "affected_target"),
		Source:    firstNonEmptyPtr(raw, "source", "affected_source"),
		Transform: firstNonEmptyPtr(raw, "transform", "trns"),
		Default:   ptr(raw, "default"),
	}
}

// NormalizeAll normalizes a whole mapping document in declaration
// order; order is preserved end to end through the plan.
func NormalizeAll(raws []RawRecord) []MappingRecord {
	out := make([]MappingRecord, len(raws))
	for i, r := range raws {
		out[i] = Normalize(r)
	}
	return out
}

func str(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func firstNonEmpty(raw RawRecord, keys ...string) string {
	for _, k := range keys {
		if s := str(raw[k]); s != "" {
			return s
		}
	}
	return ""
}

func firstNonEmptyPtr(raw RawRecord, keys ...string) *string {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			if s := str(v); s != "" {
				return &s
			}
		}
	}
	return nil
}

func ptr(raw RawRecord, key string) *string {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil
	}
	s := str(v)
	if s == "" {
		if _, isStr := v.(string); !isStr {
			// Non-string default (number, bool): render it back to its
			// literal text form so the Value Parser can re-parse it.
			s = renderLiteral(v)
		}
	}
	return &s
}

func renderLiteral(v any) string {
	if b, ok := v.(bool); ok {
		if b {
			return "true"
		}
		return "false"
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
