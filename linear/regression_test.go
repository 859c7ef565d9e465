package linear

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datapeek/datapeek/dataset"
	"github.com/datapeek/datapeek/pkg/errors"
)

func linearDataset(n int, f func(x float64) float64) *dataset.Dataset {
	var records []dataset.Record
	for i := 1; i <= n; i++ {
		x := float64(i)
		records = append(records, dataset.Record{
			"x": fmt.Sprintf("%g", x),
			"y": fmt.Sprintf("%g", f(x)),
		})
	}
	return dataset.New([]string{"x", "y"}, records)
}

func TestFitRecoversPerfectLine(t *testing.T) {
	// y = 2x + 1 over x = 1..4.
	ds := linearDataset(4, func(x float64) float64 { return 2*x + 1 })

	model, err := Fit(ds, "y", []string{"x"})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, model.Intercept, 1e-9)
	require.Len(t, model.Coefficients, 1)
	assert.InDelta(t, 2.0, model.Coefficients[0], 1e-9)
	assert.InDelta(t, 1.0, model.Train.R2, 1e-9)
	assert.InDelta(t, 0.0, model.Train.RMSE, 1e-6)
}

func TestFitTwoFeatures(t *testing.T) {
	var records []dataset.Record
	for i := 0; i < 20; i++ {
		a := float64(i)
		b := float64(i%5) * 3
		records = append(records, dataset.Record{
			"a": fmt.Sprintf("%g", a),
			"b": fmt.Sprintf("%g", b),
			"y": fmt.Sprintf("%g", 4*a-2*b+7),
		})
	}
	ds := dataset.New([]string{"a", "b", "y"}, records)

	model, err := Fit(ds, "y", []string{"a", "b"})
	require.NoError(t, err)

	assert.InDelta(t, 7.0, model.Intercept, 1e-8)
	assert.InDelta(t, 4.0, model.Coefficients[0], 1e-8)
	assert.InDelta(t, -2.0, model.Coefficients[1], 1e-8)
}

func TestFitSilentlyExcludesBadRows(t *testing.T) {
	ds := linearDataset(10, func(x float64) float64 { return 3 * x })
	ds.Records = append(ds.Records,
		dataset.Record{"x": "n/a", "y": "1"},
		dataset.Record{"x": "5", "y": "broken"},
	)

	model, err := Fit(ds, "y", []string{"x"})
	require.NoError(t, err)

	assert.Equal(t, 2, model.Excluded)
	assert.InDelta(t, 3.0, model.Coefficients[0], 1e-9)
}

func TestFitNoTrainableRows(t *testing.T) {
	ds := dataset.New([]string{"x", "y"}, []dataset.Record{
		{"x": "na", "y": "1"},
		{"x": "word", "y": "2"},
	})

	_, err := Fit(ds, "y", []string{"x"})

	var ntrErr *errors.NoTrainableRowsError
	require.True(t, errors.As(err, &ntrErr))
	assert.Equal(t, 2, ntrErr.Excluded)
}

func TestFitSingularMatrix(t *testing.T) {
	// Perfectly collinear features make XᵀX singular.
	var records []dataset.Record
	for i := 1; i <= 10; i++ {
		records = append(records, dataset.Record{
			"a": fmt.Sprintf("%d", i),
			"b": fmt.Sprintf("%d", 2*i),
			"y": fmt.Sprintf("%d", 3*i),
		})
	}
	ds := dataset.New([]string{"a", "b", "y"}, records)

	_, err := Fit(ds, "y", []string{"a", "b"})

	var singErr *errors.SingularMatrixError
	assert.True(t, errors.As(err, &singErr))
}

func TestFitRidgeShrinksCoefficients(t *testing.T) {
	ds := linearDataset(20, func(x float64) float64 { return 5 * x })

	ols, err := Fit(ds, "y", []string{"x"})
	require.NoError(t, err)
	ridge, err := Fit(ds, "y", []string{"x"}, WithRidge(1e6))
	require.NoError(t, err)

	// A huge lambda drives the slope toward zero while the unpenalized
	// intercept stays free to chase the target mean.
	assert.InDelta(t, 5.0, ols.Coefficients[0], 1e-8)
	assert.Less(t, ridge.Coefficients[0], 0.01)
	assert.Greater(t, ridge.Intercept, 10.0)
}

func TestFitRidgeResolvesCollinearity(t *testing.T) {
	var records []dataset.Record
	for i := 1; i <= 10; i++ {
		records = append(records, dataset.Record{
			"a": fmt.Sprintf("%d", i),
			"b": fmt.Sprintf("%d", 2*i),
			"y": fmt.Sprintf("%d", 3*i),
		})
	}
	ds := dataset.New([]string{"a", "b", "y"}, records)

	model, err := Fit(ds, "y", []string{"a", "b"}, WithRidge(0.1))
	require.NoError(t, err)
	assert.Greater(t, model.Train.R2, 0.99)
}

func TestFitTrainTestSplit(t *testing.T) {
	ds := linearDataset(40, func(x float64) float64 { return 2*x + 1 })

	model, err := Fit(ds, "y", []string{"x"},
		WithTestFraction(0.25),
		WithRandSource(rand.New(rand.NewSource(42))),
	)
	require.NoError(t, err)

	require.NotNil(t, model.Test)
	assert.InDelta(t, 1.0, model.Test.R2, 1e-9)
	assert.InDelta(t, 2.0, model.Coefficients[0], 1e-9)
}

func TestFitSplitIsDeterministicWithSeed(t *testing.T) {
	ds := linearDataset(30, func(x float64) float64 { return x*x - 3*x })

	a, err := Fit(ds, "y", []string{"x"},
		WithTestFraction(0.3), WithRandSource(rand.New(rand.NewSource(7))))
	require.NoError(t, err)
	b, err := Fit(ds, "y", []string{"x"},
		WithTestFraction(0.3), WithRandSource(rand.New(rand.NewSource(7))))
	require.NoError(t, err)

	assert.Equal(t, a.Coefficients, b.Coefficients)
	assert.Equal(t, a.Test.RMSE, b.Test.RMSE)
}

func TestFitInvalidTestFraction(t *testing.T) {
	ds := linearDataset(10, func(x float64) float64 { return x })

	_, err := Fit(ds, "y", []string{"x"}, WithTestFraction(1.5))

	var cfgErr *errors.InvalidConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestFitNoFeatures(t *testing.T) {
	ds := linearDataset(10, func(x float64) float64 { return x })

	_, err := Fit(ds, "y", nil)

	var cfgErr *errors.InvalidConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestPredict(t *testing.T) {
	model := &Model{Intercept: 1, Coefficients: []float64{2, -1}}

	assert.InDelta(t, 1+2*3-4, model.Predict([]float64{3, 4}), 1e-12)
}

func TestParamsRoundTrip(t *testing.T) {
	ds := linearDataset(15, func(x float64) float64 { return 0.37*x + 1.223 })

	model, err := Fit(ds, "y", []string{"x"}, WithRidge(0.25))
	require.NoError(t, err)

	p, err := model.Params()
	require.NoError(t, err)
	back, err := FromParams(p)
	require.NoError(t, err)

	assert.Equal(t, model.Intercept, back.Intercept)
	assert.Equal(t, model.Coefficients, back.Coefficients)
	assert.Equal(t, model.Train.R2, back.Train.R2)
	assert.Equal(t, model.Train.RMSE, back.Train.RMSE)
	assert.Equal(t, model.Features, back.Features)
}
