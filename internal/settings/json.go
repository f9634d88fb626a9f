package settings

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

// member is one key of a JSON object written by marshalObject.
type member struct {
	key   string
	value any
}

// marshalObject writes known in order followed by the unknown keys sorted.
// Unknown keys that shadow a known key are skipped.
func marshalObject(known []member, unknown map[string]json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(key string, value any) error {
		k, err := encodeJSON(key)
		if err != nil {
			return err
		}
		v, err := encodeJSON(value)
		if err != nil {
			return err
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	seen := make(map[string]bool, len(known))
	for _, m := range known {
		seen[m.key] = true
		if err := write(m.key, m.value); err != nil {
			return nil, err
		}
	}
	for _, key := range slices.Sorted(maps.Keys(unknown)) {
		if seen[key] {
			continue
		}
		if err := write(key, unknown[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// extraFields returns the keys of the JSON object data not listed in known,
// or nil when there are none.
func extraFields(data []byte, known ...string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// encodeJSON marshals v without HTML escaping so shell operators such as
// '&&' in hook commands stay readable.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
