// Package metrics implements the evaluation measures reported on fitted
// models: R², RMSE and MSE for regression, accuracy for classification.
package metrics

import (
	"math"

	"github.com/datapeek/datapeek/pkg/errors"
)

// MSE computes the mean squared error of predictions against true values.
func MSE(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("metrics.MSE", "empty input")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("metrics.MSE", n, len(yPred), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue[i] - yPred[i]
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error, sqrt(SS_res / n).
func RMSE(yTrue, yPred []float64) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// R2 computes the coefficient of determination, 1 - SS_res/SS_tot. SS_tot is
// taken against the sample mean and floored at 1 so that a constant target
// never divides by zero; such a target scores at most 1 - SS_res.
func R2(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("metrics.R2", "empty input")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("metrics.R2", n, len(yPred), 0)
	}

	var mean float64
	for _, y := range yTrue {
		mean += y
	}
	mean /= float64(n)

	var ssTot, ssRes float64
	for i := 0; i < n; i++ {
		ssTot += (yTrue[i] - mean) * (yTrue[i] - mean)
		ssRes += (yTrue[i] - yPred[i]) * (yTrue[i] - yPred[i])
	}
	if ssTot < 1 {
		ssTot = 1
	}
	return 1 - ssRes/ssTot, nil
}

// Accuracy computes the fraction of predictions matching the true labels at
// the given decision threshold: probabilities at or above it count as class 1.
func Accuracy(yTrue, proba []float64, threshold float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("metrics.Accuracy", "empty input")
	}
	if len(proba) != n {
		return 0, errors.NewDimensionError("metrics.Accuracy", n, len(proba), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		predicted := 0.0
		if proba[i] >= threshold {
			predicted = 1.0
		}
		if predicted == yTrue[i] {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}
