package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// marshalAnchored emits {"anchor": ..., "<relation>": [...], ...} with
// relation keys sorted so the document is byte-stable across runs.
func marshalAnchored(anchor string, relations map[string][]LinkTargetObject) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteString(`"anchor":`)
	encoded, err := json.Marshal(anchor)
	if err != nil {
		return nil, err
	}
	buf.Write(encoded)

	keys := make([]string, 0, len(relations))
	for key := range relations {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		buf.WriteByte(',')
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		encodedTargets, err := json.Marshal(relations[key])
		if err != nil {
			return nil, err
		}
		buf.Write(encodedTargets)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func unmarshalAnchored(data []byte) (string, map[string][]LinkTargetObject, error) {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", nil, err
	}

	var anchor string
	if encoded, ok := raw["anchor"]; ok {
		if err := json.Unmarshal(encoded, &anchor); err != nil {
			return "", nil, fmt.Errorf("linkset: decode anchor: %w", err)
		}
		delete(raw, "anchor")
	}

	relations := make(map[string][]LinkTargetObject, len(raw))
	for key, encoded := range raw {
		var targets []LinkTargetObject
		if err := json.Unmarshal(encoded, &targets); err != nil {
			return "", nil, fmt.Errorf("linkset: decode relation %s: %w", key, err)
		}
		relations[key] = targets
	}
	return anchor, relations, nil
}
