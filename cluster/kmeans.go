// Package cluster implements Lloyd's-algorithm k-means over the numeric
// projection of a dataset. Rows with non-numeric features are filtered out
// before clustering; assignments are reported in the filtered row order.
package cluster

import (
	"math"
	"math/rand"
	"time"

	"github.com/datapeek/datapeek/dataset"
	"github.com/datapeek/datapeek/pkg/errors"
)

// DefaultMaxIterations bounds the assign/update loop when the caller does
// not choose its own limit.
const DefaultMaxIterations = 100

// Result is an immutable clustering artifact: k centroids and one cluster
// index per retained row.
type Result struct {
	K           int         `json:"k"`
	Features    []string    `json:"features"`
	Centroids   [][]float64 `json:"centroids"`
	Assignments []int       `json:"assignments"`
	Iterations  int         `json:"iterations"`
	Excluded    int         `json:"excluded"`
}

// Nearest returns the index of the centroid closest to the point, ties
// broken by the lowest cluster index.
func (r *Result) Nearest(point []float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range r.Centroids {
		if d := squaredDistance(point, centroid); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// Option configures a k-means fit.
type Option func(*config)

type config struct {
	maxIterations int
	rng           *rand.Rand
}

// WithMaxIterations bounds the Lloyd iteration count.
func WithMaxIterations(n int) Option {
	return func(c *config) { c.maxIterations = n }
}

// WithRandSource injects the random source used for centroid seeding, so
// tests can make the initialization deterministic.
func WithRandSource(rng *rand.Rand) Option {
	return func(c *config) { c.rng = rng }
}

// Fit clusters the rows where every feature column parses as a number.
// Initial centroids are k distinct rows sampled uniformly at random without
// replacement, which is why k must not exceed the number of retained rows.
func Fit(d *dataset.Dataset, features []string, k int, opts ...Option) (*Result, error) {
	const op = "cluster.Fit"

	if k <= 0 {
		return nil, errors.NewInvalidConfigError(op, "k", "must be positive", k)
	}
	if len(features) == 0 {
		return nil, errors.NewInvalidConfigError(op, "features", "at least one feature column is required", features)
	}

	cfg := config{maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxIterations <= 0 {
		return nil, errors.NewInvalidConfigError(op, "maxIterations", "must be positive", cfg.maxIterations)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	rows, excluded := d.NumericRows(features)
	if len(rows) == 0 {
		return nil, errors.NewNoTrainableRowsError(op, "", excluded)
	}
	if k > len(rows) {
		return nil, errors.NewInvalidConfigError(op, "k", "exceeds the number of valid rows", k)
	}

	p := len(features)
	centroids := initCentroids(rows, k, p, cfg.rng)
	assignments := make([]int, len(rows))
	for i := range assignments {
		assignments[i] = -1
	}

	iterations := 0
	for iter := 0; iter < cfg.maxIterations; iter++ {
		iterations = iter + 1

		// Assignment step: nearest centroid, first minimum wins on ties.
		changed := false
		for i, row := range rows {
			best := 0
			bestDist := math.Inf(1)
			for c := 0; c < k; c++ {
				if dist := squaredDistance(row, centroids[c]); dist < bestDist {
					bestDist = dist
					best = c
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		// Update step: coordinate-wise mean of each cluster's members. An
		// empty cluster keeps its previous centroid; it is never reseeded.
		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, p)
		}
		for i, row := range rows {
			c := assignments[i]
			counts[c]++
			for j, v := range row {
				sums[c][j] += v
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for j := 0; j < p; j++ {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}
	}

	return &Result{
		K:           k,
		Features:    append([]string(nil), features...),
		Centroids:   centroids,
		Assignments: assignments,
		Iterations:  iterations,
		Excluded:    excluded,
	}, nil
}

// initCentroids copies k distinct rows chosen without replacement.
func initCentroids(rows [][]float64, k, p int, rng *rand.Rand) [][]float64 {
	perm := rng.Perm(len(rows))
	centroids := make([][]float64, k)
	for c := 0; c < k; c++ {
		centroids[c] = make([]float64, p)
		copy(centroids[c], rows[perm[c]])
	}
	return centroids
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		if i >= len(b) {
			break
		}
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}
