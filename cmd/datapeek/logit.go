package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/logistic"
)

var (
	logitTarget   string
	logitFeatures []string
	logitEpochs   int
	logitRate     float64
	logitL2       float64
)

var logitCmd = &cobra.Command{
	Use:   "logit <file>",
	Short: "Fit a binary logistic regression classifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if logitTarget == "" {
			return fmt.Errorf("--target is required")
		}
		if len(logitFeatures) == 0 {
			return fmt.Errorf("--features is required")
		}
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}

		opts := []logistic.Option{
			logistic.WithEpochs(logitEpochs),
			logistic.WithLearningRate(logitRate),
		}
		if logitL2 > 0 {
			opts = append(opts, logistic.WithL2(logitL2))
		}

		model, err := logistic.Fit(ds, logitTarget, logitFeatures, opts...)
		if err != nil {
			return err
		}
		return writeReport("logit", args[0], model)
	},
}

func init() {
	f := logitCmd.Flags()
	f.StringVarP(&logitTarget, "target", "t", "", "binary target column")
	f.StringSliceVarP(&logitFeatures, "features", "f", nil, "feature columns (comma separated)")
	f.IntVar(&logitEpochs, "epochs", logistic.DefaultEpochs, "gradient descent epochs")
	f.Float64Var(&logitRate, "rate", logistic.DefaultLearningRate, "gradient descent learning rate")
	f.Float64Var(&logitL2, "l2", 0, "L2 weight decay applied each step; 0 disables")
	rootCmd.AddCommand(logitCmd)
}
