package reconcile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/rootstock/pkg/dataset"
)

// Mapped input sometimes carries titles, archives and image references as
// nested structures instead of plain text. Coercion happens once, here at
// the import boundary; every coerced value is reported as an anomaly so
// the operator can inspect the upstream data. Past this point all fields
// are typed strings.

// textKeys are tried in order when a text field arrives as a mapping.
var textKeys = []string{"formal_name", "name", "title", "text", "value"}

// imageKeys are tried in order when an image reference arrives as a mapping.
var imageKeys = []string{"FILE", "file", "path", "filename", "uri", "url", "value"}

// CoerceText renders a loosely-typed text field as a plain string,
// recording an anomaly when the input was not already a string.
func CoerceText(v any, where, field string, anoms *[]Anomaly) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case int, int64, uint64, float64, bool:
		s := fmt.Sprintf("%v", t)
		record(anoms, where, field, s)
		return s
	case map[string]any:
		for _, key := range textKeys {
			if s, ok := t[key].(string); ok && strings.TrimSpace(s) != "" {
				record(anoms, where, field, s)
				return strings.TrimSpace(s)
			}
		}
		for _, val := range t {
			if s, ok := val.(string); ok && strings.TrimSpace(s) != "" {
				record(anoms, where, field, s)
				return strings.TrimSpace(s)
			}
		}
		s := stringify(t)
		record(anoms, where, field, s)
		return s
	default:
		s := stringify(t)
		record(anoms, where, field, s)
		return s
	}
}

func coerceTextWithKeys(v any, keys []string, where, field string, anoms *[]Anomaly) string {
	if m, ok := v.(map[string]any); ok {
		for _, key := range keys {
			if s, ok := m[key].(string); ok && strings.TrimSpace(s) != "" {
				record(anoms, where, field, s)
				return strings.TrimSpace(s)
			}
		}
	}
	return CoerceText(v, where, field, anoms)
}

// CoerceImages flattens a loosely-typed image list to non-empty strings.
func CoerceImages(images []any, where string, anoms *[]Anomaly) []string {
	var out []string
	for _, img := range images {
		s := coerceTextWithKeys(img, imageKeys, where, "images", anoms)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CoerceTrust parses a raw certainty marker into a clamped trust score.
func CoerceTrust(raw string) dataset.Trust {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return dataset.ClampTrust(dataset.Trust(n))
}

func record(anoms *[]Anomaly, where, field, value string) {
	if anoms == nil {
		return
	}
	if len(value) > 120 {
		value = value[:120]
	}
	*anoms = append(*anoms, Anomaly{Where: where, Field: field, Value: value})
}

// stringify keeps the offending structure readable in diagnostics.
func stringify(v any) string {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSpace(string(data))
}
