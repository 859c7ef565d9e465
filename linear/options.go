package linear

import "math/rand"

// Option configures a regression fit.
type Option func(*config)

type config struct {
	lambda       float64
	testFraction float64
	folds        int
	rng          *rand.Rand
}

// WithRidge sets the ridge regularization strength lambda. It is added to
// every diagonal entry of XᵀX except the bias entry; the intercept is never
// penalized. Zero (the default) is plain ordinary least squares.
func WithRidge(lambda float64) Option {
	return func(c *config) {
		c.lambda = lambda
	}
}

// WithTestFraction holds out the given fraction of trainable rows for
// evaluation. Zero (the default) fits on every trainable row.
func WithTestFraction(fraction float64) Option {
	return func(c *config) {
		c.testFraction = fraction
	}
}

// WithFolds enables k-fold cross-validation. Fold counts of 0 or 1 select
// the single-split path, which with the default test fraction is a plain
// in-sample fit.
func WithFolds(k int) Option {
	return func(c *config) {
		c.folds = k
	}
}

// WithRandSource injects the random source used for the train/test shuffle,
// so tests can make the split deterministic.
func WithRandSource(rng *rand.Rand) Option {
	return func(c *config) {
		c.rng = rng
	}
}
