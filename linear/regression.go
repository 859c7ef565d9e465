// Package linear implements closed-form linear regression: ordinary least
// squares via the normal equation, a ridge-regularized variant, a randomized
// train/test split, and k-fold cross-validation. Rows whose features or
// target do not coerce to numbers are silently excluded; only a globally
// empty training set is an error.
package linear

import (
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/datapeek/datapeek/dataset"
	"github.com/datapeek/datapeek/matrix"
	"github.com/datapeek/datapeek/metrics"
	"github.com/datapeek/datapeek/pkg/errors"
)

// Metrics holds the fit quality of a model on one partition.
type Metrics struct {
	R2   float64 `json:"r2"`
	RMSE float64 `json:"rmse"`
}

// CrossValMetrics holds the arithmetic-mean metrics over the evaluated folds.
type CrossValMetrics struct {
	Folds int     `json:"folds"`
	R2    float64 `json:"r2"`
	RMSE  float64 `json:"rmse"`
}

// Model is an immutable fitted linear model. Coefficients are ordered like
// the feature list passed to Fit.
type Model struct {
	Target       string           `json:"target"`
	Features     []string         `json:"features"`
	Intercept    float64          `json:"intercept"`
	Coefficients []float64        `json:"coefficients"`
	Lambda       float64          `json:"lambda,omitempty"`
	Train        Metrics          `json:"train"`
	Test         *Metrics         `json:"test,omitempty"`
	CrossVal     *CrossValMetrics `json:"cross_val,omitempty"`
	Excluded     int              `json:"excluded"`
}

// Predict applies the model to one feature vector, ordered like Features.
func (m *Model) Predict(features []float64) float64 {
	pred := m.Intercept
	for i, c := range m.Coefficients {
		if i < len(features) {
			pred += c * features[i]
		}
	}
	return pred
}

// Fit trains a linear model predicting target from the listed feature
// columns. Exactly one of single-split or k-fold cross-validation runs per
// invocation, selected by WithFolds (0 or 1 means single split).
func Fit(d *dataset.Dataset, target string, features []string, opts ...Option) (*Model, error) {
	const op = "linear.Fit"

	if len(features) == 0 {
		return nil, errors.NewInvalidConfigError(op, "features", "at least one feature column is required", features)
	}
	if d == nil || d.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, op)
	}

	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.testFraction < 0 || cfg.testFraction >= 1 {
		return nil, errors.NewInvalidConfigError(op, "testFraction", "must be in [0, 1)", cfg.testFraction)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	rows, y, excluded := trainableRows(d, target, features)
	if len(rows) == 0 {
		return nil, errors.NewNoTrainableRowsError(op, target, excluded)
	}

	model := &Model{
		Target:   target,
		Features: append([]string(nil), features...),
		Lambda:   cfg.lambda,
		Excluded: excluded,
	}

	if cfg.folds >= 2 {
		if err := crossValidate(model, rows, y, cfg); err != nil {
			return nil, err
		}
		return model, nil
	}

	trainRows, trainY, testRows, testY := splitRows(rows, y, cfg.testFraction, cfg.rng)
	if len(trainRows) == 0 {
		return nil, errors.NewNoTrainableRowsError(op, target, excluded+len(testRows))
	}

	intercept, coefs, err := solveNormalEquations(trainRows, trainY, cfg.lambda)
	if err != nil {
		return nil, err
	}
	model.Intercept = intercept
	model.Coefficients = coefs

	train, err := evaluate(model, trainRows, trainY)
	if err != nil {
		return nil, err
	}
	model.Train = train

	if len(testRows) > 0 {
		test, err := evaluate(model, testRows, testY)
		if err != nil {
			return nil, err
		}
		model.Test = &test
	}
	return model, nil
}

// trainableRows extracts the rows where the target and every feature coerce
// to numbers, returning the surviving feature rows, targets, and the count of
// excluded rows.
func trainableRows(d *dataset.Dataset, target string, features []string) (rows [][]float64, y []float64, excluded int) {
	cols := append(append([]string(nil), features...), target)
	full, excluded := d.NumericRows(cols)
	rows = make([][]float64, len(full))
	y = make([]float64, len(full))
	for i, vec := range full {
		rows[i] = vec[:len(features)]
		y[i] = vec[len(features)]
	}
	return rows, y, excluded
}

// splitRows shuffles the rows with a Fisher-Yates permutation and cuts at
// floor(n*(1-testFraction)). A zero fraction keeps every row for training.
func splitRows(rows [][]float64, y []float64, testFraction float64, rng *rand.Rand) (trainRows [][]float64, trainY []float64, testRows [][]float64, testY []float64) {
	n := len(rows)
	if testFraction == 0 {
		return rows, y, nil, nil
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	cut := int(float64(n) * (1 - testFraction))
	for idx, p := range perm {
		if idx < cut {
			trainRows = append(trainRows, rows[p])
			trainY = append(trainY, y[p])
		} else {
			testRows = append(testRows, rows[p])
			testY = append(testY, y[p])
		}
	}
	return trainRows, trainY, testRows, testY
}

// solveNormalEquations computes beta = (XᵀX)⁻¹Xᵀy with a bias column of
// ones prepended to X. A positive lambda is added to every diagonal entry of
// XᵀX except the bias entry. SingularMatrixError propagates from the kernel.
func solveNormalEquations(rows [][]float64, y []float64, lambda float64) (intercept float64, coefs []float64, err error) {
	n := len(rows)
	p := len(rows[0])

	x := mat.NewDense(n, p+1, nil)
	for i, row := range rows {
		x.Set(i, 0, 1)
		for j, v := range row {
			x.Set(i, j+1, v)
		}
	}

	xt := matrix.Transpose(x)
	xtx, err := matrix.Mul(xt, x)
	if err != nil {
		return 0, nil, err
	}
	if lambda > 0 {
		for j := 1; j <= p; j++ {
			xtx.Set(j, j, xtx.At(j, j)+lambda)
		}
	}

	inv, err := matrix.GaussJordanInverse(xtx)
	if err != nil {
		return 0, nil, err
	}

	xty, err := matrix.MulVec(xt, mat.NewVecDense(n, append([]float64(nil), y...)))
	if err != nil {
		return 0, nil, err
	}
	beta, err := matrix.MulVec(inv, xty)
	if err != nil {
		return 0, nil, err
	}

	coefs = make([]float64, p)
	for j := 0; j < p; j++ {
		coefs[j] = beta.AtVec(j + 1)
	}
	return beta.AtVec(0), coefs, nil
}

func evaluate(m *Model, rows [][]float64, y []float64) (Metrics, error) {
	preds := make([]float64, len(rows))
	for i, row := range rows {
		preds[i] = m.Predict(row)
	}
	r2, err := metrics.R2(y, preds)
	if err != nil {
		return Metrics{}, err
	}
	rmse, err := metrics.RMSE(y, preds)
	if err != nil {
		return Metrics{}, err
	}
	return Metrics{R2: r2, RMSE: rmse}, nil
}
