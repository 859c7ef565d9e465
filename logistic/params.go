package logistic

import "github.com/datapeek/datapeek/core/params"

// Params serializes the model to a plain key-value structure.
func (m *Model) Params() (map[string]any, error) {
	return params.Encode(m)
}

// FromParams rebuilds a model from a key-value structure produced by Params.
func FromParams(p map[string]any) (*Model, error) {
	var m Model
	if err := params.Decode(p, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
