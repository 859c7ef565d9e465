// Package logistic implements a binary logistic-regression trainer using
// full-batch gradient descent. Targets are mapped to {0,1} either from the
// column's two distinct values (first-seen order) or from literal 0/1 cells;
// rows failing feature parsing or label mapping are silently excluded.
package logistic

import (
	"math"

	"github.com/datapeek/datapeek/dataset"
	"github.com/datapeek/datapeek/metrics"
	"github.com/datapeek/datapeek/pkg/errors"
)

// Defaults for the gradient-descent schedule.
const (
	DefaultEpochs       = 300
	DefaultLearningRate = 0.1

	// lossEpsilon is added inside each logarithm of the cross-entropy so a
	// saturated sigmoid never produces -Inf.
	lossEpsilon = 1e-12

	// DecisionThreshold is the probability cut used for reported accuracy.
	DecisionThreshold = 0.5
)

// Model is an immutable fitted binary classifier. Theta holds the bias
// weight first, then one weight per feature in Features order.
type Model struct {
	Target   string    `json:"target"`
	Features []string  `json:"features"`
	Theta    []float64 `json:"theta"`
	// Labels maps the original category values to classes 0 and 1, in that
	// order. Empty when the target was already literal 0/1.
	Labels   []string `json:"labels,omitempty"`
	Accuracy float64  `json:"accuracy"`
	Epochs   int      `json:"epochs"`
	Loss     float64  `json:"loss"`
	Excluded int      `json:"excluded"`
}

// PredictProba returns the probability of class 1 for one feature vector.
func (m *Model) PredictProba(features []float64) float64 {
	z := m.Theta[0]
	for i := 0; i < len(m.Theta)-1 && i < len(features); i++ {
		z += m.Theta[i+1] * features[i]
	}
	return sigmoid(z)
}

// Predict returns the class (0 or 1) at the standard decision threshold.
func (m *Model) Predict(features []float64) int {
	if m.PredictProba(features) >= DecisionThreshold {
		return 1
	}
	return 0
}

// Option configures a logistic fit.
type Option func(*config)

type config struct {
	epochs       int
	learningRate float64
	lambda       float64
	tolerance    float64
}

// WithEpochs sets the fixed number of full-batch gradient-descent epochs.
func WithEpochs(epochs int) Option {
	return func(c *config) { c.epochs = epochs }
}

// WithLearningRate sets the fixed gradient-descent step size.
func WithLearningRate(rate float64) Option {
	return func(c *config) { c.learningRate = rate }
}

// WithL2 sets the weight-decay strength. Unlike the ridge regression bias
// exemption, the decay applies to every weight including the bias; the
// asymmetry is deliberate and preserved for compatibility with the fitted
// parameters of the original engine.
func WithL2(lambda float64) Option {
	return func(c *config) { c.lambda = lambda }
}

// Fit trains a binary classifier predicting target from the listed feature
// columns.
func Fit(d *dataset.Dataset, target string, features []string, opts ...Option) (*Model, error) {
	const op = "logistic.Fit"

	if len(features) == 0 {
		return nil, errors.NewInvalidConfigError(op, "features", "at least one feature column is required", features)
	}
	if d == nil || d.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, op)
	}

	cfg := config{
		epochs:       DefaultEpochs,
		learningRate: DefaultLearningRate,
		tolerance:    1e-6,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.epochs <= 0 {
		return nil, errors.NewInvalidConfigError(op, "epochs", "must be positive", cfg.epochs)
	}
	if cfg.learningRate <= 0 {
		return nil, errors.NewInvalidConfigError(op, "learningRate", "must be positive", cfg.learningRate)
	}

	labels := mapLabels(d, target)
	rows, y, excluded := trainableRows(d, target, features, labels)
	if len(rows) == 0 {
		return nil, errors.NewNoTrainableRowsError(op, target, excluded)
	}

	theta := make([]float64, len(features)+1)
	n := float64(len(rows))
	var loss float64
	prevLoss := math.Inf(1)
	lastImprovement := math.Inf(1)

	for epoch := 0; epoch < cfg.epochs; epoch++ {
		grad := make([]float64, len(theta))
		loss = 0

		for i, row := range rows {
			z := theta[0]
			for j, v := range row {
				z += theta[j+1] * v
			}
			p := sigmoid(z)
			diff := p - y[i]

			grad[0] += diff
			for j, v := range row {
				grad[j+1] += diff * v
			}
			loss -= y[i]*math.Log(p+lossEpsilon) + (1-y[i])*math.Log(1-p+lossEpsilon)
		}
		loss /= n

		// Weight decay applies to every weight, bias included.
		for j := range theta {
			theta[j] -= cfg.learningRate * (grad[j]/n + cfg.lambda*theta[j])
		}
		lastImprovement = prevLoss - loss
		prevLoss = loss
	}

	if lastImprovement > cfg.tolerance {
		errors.Warn(errors.NewConvergenceWarning("LogisticRegression", cfg.epochs, "loss still decreasing at the final epoch"))
	}

	model := &Model{
		Target:   target,
		Features: append([]string(nil), features...),
		Theta:    theta,
		Labels:   labels,
		Epochs:   cfg.epochs,
		Loss:     loss,
		Excluded: excluded,
	}

	proba := make([]float64, len(rows))
	for i, row := range rows {
		proba[i] = model.PredictProba(row)
	}
	accuracy, err := metrics.Accuracy(y, proba, DecisionThreshold)
	if err != nil {
		return nil, err
	}
	model.Accuracy = accuracy

	return model, nil
}

// mapLabels decides the label mapping for the target column: when it has
// exactly two distinct non-missing values they map to 0 and 1 by first-seen
// order, otherwise only literal 0/1 cells are accepted and the mapping is
// empty.
func mapLabels(d *dataset.Dataset, target string) []string {
	var order []string
	seen := make(map[string]struct{})
	for _, rec := range d.Records {
		v := rec[target]
		if dataset.IsMissing(v) {
			continue
		}
		key := dataset.Stringify(v)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			order = append(order, key)
			if len(order) > 2 {
				return nil
			}
		}
	}
	if len(order) == 2 {
		return order
	}
	return nil
}

// trainableRows keeps the rows where every feature parses and the target
// maps to a class.
func trainableRows(d *dataset.Dataset, target string, features []string, labels []string) (rows [][]float64, y []float64, excluded int) {
	for _, rec := range d.Records {
		label, ok := mapTarget(rec[target], labels)
		if !ok {
			excluded++
			continue
		}
		vec := make([]float64, len(features))
		parsed := true
		for j, col := range features {
			if !dataset.IsNumber(rec[col]) {
				parsed = false
				break
			}
			vec[j] = dataset.ToNumber(rec[col])
		}
		if !parsed {
			excluded++
			continue
		}
		rows = append(rows, vec)
		y = append(y, label)
	}
	return rows, y, excluded
}

func mapTarget(value any, labels []string) (float64, bool) {
	if dataset.IsMissing(value) {
		return 0, false
	}
	key := dataset.Stringify(value)
	if labels != nil {
		if key == labels[0] {
			return 0, true
		}
		if key == labels[1] {
			return 1, true
		}
		return 0, false
	}
	switch key {
	case "0":
		return 0, true
	case "1":
		return 1, true
	}
	return 0, false
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
