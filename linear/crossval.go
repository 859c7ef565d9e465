package linear

import (
	"github.com/datapeek/datapeek/pkg/errors"
)

// crossValidate fits one model per fold and aggregates by arithmetic mean of
// the per-fold coefficients, R², and RMSE. Rows are partitioned into k
// contiguous blocks of floor(n/k); remainder rows take part in no fold. A
// fold with an empty train or test partition is skipped.
func crossValidate(model *Model, rows [][]float64, y []float64, cfg config) error {
	const op = "linear.crossValidate"

	k := cfg.folds
	n := len(rows)
	blockSize := n / k
	if blockSize == 0 {
		return errors.NewInvalidConfigError(op, "folds", "more folds than trainable rows", k)
	}

	p := len(rows[0])
	sumIntercept := 0.0
	sumCoefs := make([]float64, p)
	sumR2 := 0.0
	sumRMSE := 0.0
	ran := 0

	for fold := 0; fold < k; fold++ {
		testStart := fold * blockSize
		testEnd := testStart + blockSize

		var trainRows, testRows [][]float64
		var trainY, testY []float64
		for i := 0; i < k*blockSize; i++ {
			if i >= testStart && i < testEnd {
				testRows = append(testRows, rows[i])
				testY = append(testY, y[i])
			} else {
				trainRows = append(trainRows, rows[i])
				trainY = append(trainY, y[i])
			}
		}
		if len(trainRows) == 0 || len(testRows) == 0 {
			continue
		}

		intercept, coefs, err := solveNormalEquations(trainRows, trainY, cfg.lambda)
		if err != nil {
			return err
		}

		foldModel := &Model{Intercept: intercept, Coefficients: coefs}
		test, err := evaluate(foldModel, testRows, testY)
		if err != nil {
			return err
		}

		sumIntercept += intercept
		for j, c := range coefs {
			sumCoefs[j] += c
		}
		sumR2 += test.R2
		sumRMSE += test.RMSE
		ran++
	}

	if ran == 0 {
		return errors.NewInvalidConfigError(op, "folds", "every fold had an empty partition", k)
	}

	model.Intercept = sumIntercept / float64(ran)
	model.Coefficients = make([]float64, p)
	for j := range sumCoefs {
		model.Coefficients[j] = sumCoefs[j] / float64(ran)
	}
	model.CrossVal = &CrossValMetrics{
		Folds: ran,
		R2:    sumR2 / float64(ran),
		RMSE:  sumRMSE / float64(ran),
	}

	// In-sample quality of the averaged model, for parity with the
	// single-split path.
	train, err := evaluate(model, rows, y)
	if err != nil {
		return err
	}
	model.Train = train
	return nil
}
