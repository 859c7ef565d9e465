package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datapeek/datapeek/pkg/errors"
)

func TestMSE(t *testing.T) {
	got, err := MSE([]float64{1, 2, 3}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-12)

	got, err = MSE([]float64{0, 0}, []float64{2, 2})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got, 1e-12)
}

func TestMSELengthMismatch(t *testing.T) {
	_, err := MSE([]float64{1, 2}, []float64{1})

	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestRMSE(t *testing.T) {
	got, err := RMSE([]float64{0, 0, 0, 0}, []float64{3, 3, 3, 3})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got, 1e-12)
}

func TestR2PerfectFit(t *testing.T) {
	y := []float64{3, 5, 7, 9}

	got, err := R2(y, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)
}

func TestR2MeanPredictor(t *testing.T) {
	y := []float64{10, 20, 30, 40}
	pred := []float64{25, 25, 25, 25}

	got, err := R2(y, pred)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-12)
}

func TestR2ConstantTargetFloorsDenominator(t *testing.T) {
	y := []float64{5, 5, 5}
	pred := []float64{5, 5, 6}

	got, err := R2(y, pred)
	require.NoError(t, err)
	// SS_tot floors at 1 instead of dividing by zero: R² = 1 - 1/1.
	assert.False(t, math.IsNaN(got))
	assert.InDelta(t, 0.0, got, 1e-12)
}

func TestAccuracy(t *testing.T) {
	yTrue := []float64{0, 0, 1, 1}
	proba := []float64{0.1, 0.6, 0.8, 0.4}

	got, err := Accuracy(yTrue, proba, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)
}

func TestAccuracyEmpty(t *testing.T) {
	_, err := Accuracy(nil, nil, 0.5)
	assert.Error(t, err)
}
