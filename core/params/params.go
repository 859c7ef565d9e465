// Package params converts model artifacts to and from plain key-value
// structures. The reporting layer serializes artifacts through these maps;
// numeric fields survive the round trip exactly (JSON encodes float64 in its
// shortest round-trippable form).
package params

import (
	"encoding/json"

	"github.com/datapeek/datapeek/pkg/errors"
)

// Encode flattens an artifact into a plain map via its JSON representation.
func Encode(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "params.Encode")
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.Wrap(err, "params.Encode")
	}
	return out, nil
}

// Decode rebuilds an artifact from a plain map produced by Encode.
func Decode(m map[string]any, out any) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "params.Decode")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "params.Decode")
	}
	return nil
}
