package cluster

import "github.com/datapeek/datapeek/core/params"

// Params serializes the result to a plain key-value structure.
func (r *Result) Params() (map[string]any, error) {
	return params.Encode(r)
}

// FromParams rebuilds a result from a key-value structure produced by Params.
func FromParams(p map[string]any) (*Result, error) {
	var r Result
	if err := params.Decode(p, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
