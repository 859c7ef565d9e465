package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/linear"
)

var (
	fitTarget       string
	fitFeatures     []string
	fitRidge        float64
	fitTestFraction float64
	fitFolds        int
)

var fitCmd = &cobra.Command{
	Use:   "fit <file>",
	Short: "Fit a linear regression (OLS or ridge) on numeric columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if fitTarget == "" {
			return fmt.Errorf("--target is required")
		}
		if len(fitFeatures) == 0 {
			return fmt.Errorf("--features is required")
		}
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}

		opts := []linear.Option{linear.WithRandSource(newRand())}
		if fitRidge > 0 {
			opts = append(opts, linear.WithRidge(fitRidge))
		}
		if fitFolds > 0 {
			opts = append(opts, linear.WithFolds(fitFolds))
		} else {
			opts = append(opts, linear.WithTestFraction(fitTestFraction))
		}

		model, err := linear.Fit(ds, fitTarget, fitFeatures, opts...)
		if err != nil {
			return err
		}
		return writeReport("fit", args[0], model)
	},
}

func init() {
	f := fitCmd.Flags()
	f.StringVarP(&fitTarget, "target", "t", "", "target column to predict")
	f.StringSliceVarP(&fitFeatures, "features", "f", nil, "feature columns (comma separated)")
	f.Float64Var(&fitRidge, "ridge", 0, "L2 penalty on the non-bias coefficients; 0 means plain OLS")
	f.Float64Var(&fitTestFraction, "test-fraction", 0.2, "held-out fraction for the train/test split")
	f.IntVarP(&fitFolds, "folds", "k", 0, "k-fold cross-validation instead of a single split; 0 disables")
	rootCmd.AddCommand(fitCmd)
}
