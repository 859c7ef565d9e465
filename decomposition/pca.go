// Package decomposition implements principal component analysis via power
// iteration with deflation. The deflation is a damped approximation rather
// than an exact orthogonal deflation, so components beyond the first are not
// guaranteed to be precisely orthogonal; that behavior is intentional and
// preserved for compatibility with the original engine.
package decomposition

import (
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/datapeek/datapeek/dataset"
	"github.com/datapeek/datapeek/pkg/errors"
)

// DefaultPowerIterations is the fixed iteration count of each power-iteration
// run.
const DefaultPowerIterations = 500

// deflationDamping scales the rank-one update removed from the working
// covariance copy after each extracted component. Slightly under 1 keeps the
// update a discouragement rather than an exact removal.
const deflationDamping = 0.95

// Result is an immutable PCA artifact: the top-k component vectors over the
// selected feature columns, the column means used for centering, and the
// projected coordinates of every retained row.
type Result struct {
	Features    []string    `json:"features"`
	Components  [][]float64 `json:"components"`
	Means       []float64   `json:"means"`
	Projections [][]float64 `json:"projections"`
	Excluded    int         `json:"excluded"`
}

// Project maps one raw feature vector (ordered like Features) onto the
// components, centering it with the stored column means first.
func (r *Result) Project(features []float64) []float64 {
	centered := make([]float64, len(r.Means))
	for j := range centered {
		if j < len(features) {
			centered[j] = features[j] - r.Means[j]
		}
	}
	coords := make([]float64, len(r.Components))
	for c, comp := range r.Components {
		coords[c] = floats.Dot(centered, comp)
	}
	return coords
}

// Option configures a PCA fit.
type Option func(*config)

type config struct {
	iterations int
	rng        *rand.Rand
}

// WithPowerIterations sets the fixed iteration count per component.
func WithPowerIterations(n int) Option {
	return func(c *config) { c.iterations = n }
}

// WithRandSource injects the random source used for the starting vectors, so
// tests can make the decomposition deterministic.
func WithRandSource(rng *rand.Rand) Option {
	return func(c *config) { c.rng = rng }
}

// Fit extracts the top-k principal components of the rows where every feature
// column parses as a number.
func Fit(d *dataset.Dataset, features []string, k int, opts ...Option) (*Result, error) {
	const op = "decomposition.Fit"

	if k <= 0 {
		return nil, errors.NewInvalidConfigError(op, "k", "must be positive", k)
	}
	if len(features) == 0 {
		return nil, errors.NewInvalidConfigError(op, "features", "at least one feature column is required", features)
	}
	if k > len(features) {
		return nil, errors.NewInvalidConfigError(op, "k", "exceeds the number of feature columns", k)
	}

	cfg := config{iterations: DefaultPowerIterations}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.iterations <= 0 {
		return nil, errors.NewInvalidConfigError(op, "iterations", "must be positive", cfg.iterations)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	rows, excluded := d.NumericRows(features)
	if len(rows) == 0 {
		return nil, errors.NewNoTrainableRowsError(op, "", excluded)
	}

	n := len(rows)
	p := len(features)

	// Mean-center each column.
	means := make([]float64, p)
	for _, row := range rows {
		floats.Add(means, row)
	}
	floats.Scale(1/float64(n), means)

	centered := make([][]float64, n)
	for i, row := range rows {
		c := make([]float64, p)
		floats.SubTo(c, row, means)
		centered[i] = c
	}

	// Covariance with the (n-1) divisor, floored at 1.
	div := float64(n - 1)
	if div < 1 {
		div = 1
	}
	cov := mat.NewDense(p, p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			var sum float64
			for _, row := range centered {
				sum += row[i] * row[j]
			}
			cov.Set(i, j, sum/div)
			cov.Set(j, i, sum/div)
		}
	}

	components := make([][]float64, 0, k)
	for c := 0; c < k; c++ {
		comp := powerIteration(cov, cfg.iterations, cfg.rng)
		components = append(components, comp)
		deflate(cov, comp)
	}

	projections := make([][]float64, n)
	for i, row := range centered {
		coords := make([]float64, k)
		for c, comp := range components {
			coords[c] = floats.Dot(row, comp)
		}
		projections[i] = coords
	}

	return &Result{
		Features:    append([]string(nil), features...),
		Components:  components,
		Means:       means,
		Projections: projections,
		Excluded:    excluded,
	}, nil
}

// powerIteration approximates the dominant eigenvector of a symmetric matrix
// by repeated multiplication and renormalization from a random unit start.
func powerIteration(m *mat.Dense, iterations int, rng *rand.Rand) []float64 {
	p, _ := m.Dims()
	v := make([]float64, p)
	for j := range v {
		v[j] = rng.Float64() - 0.5
	}
	normalize(v)

	next := make([]float64, p)
	for iter := 0; iter < iterations; iter++ {
		for i := 0; i < p; i++ {
			var sum float64
			for j := 0; j < p; j++ {
				sum += m.At(i, j) * v[j]
			}
			next[i] = sum
		}
		if floats.Norm(next, 2) == 0 {
			// The matrix annihilated the vector; keep the previous estimate.
			break
		}
		copy(v, next)
		normalize(v)
	}
	out := make([]float64, p)
	copy(out, v)
	return out
}

// deflate subtracts a damped rank-one contribution of the component from the
// working covariance copy.
func deflate(m *mat.Dense, comp []float64) {
	p, _ := m.Dims()

	// Rayleigh quotient estimate of the component's eigenvalue.
	mv := make([]float64, p)
	for i := 0; i < p; i++ {
		var sum float64
		for j := 0; j < p; j++ {
			sum += m.At(i, j) * comp[j]
		}
		mv[i] = sum
	}
	lambda := floats.Dot(comp, mv)

	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			m.Set(i, j, m.At(i, j)-deflationDamping*lambda*comp[i]*comp[j])
		}
	}
}

func normalize(v []float64) {
	norm := floats.Norm(v, 2)
	if norm == 0 {
		return
	}
	floats.Scale(1/norm, v)
}
