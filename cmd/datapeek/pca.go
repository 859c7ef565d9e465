package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/decomposition"
)

var (
	pcaFeatures   []string
	pcaComponents int
	pcaIterations int
)

var pcaCmd = &cobra.Command{
	Use:   "pca <file>",
	Short: "Project rows onto their top principal components",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(pcaFeatures) == 0 {
			return fmt.Errorf("--features is required")
		}
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}

		result, err := decomposition.Fit(ds, pcaFeatures, pcaComponents,
			decomposition.WithPowerIterations(pcaIterations),
			decomposition.WithRandSource(newRand()))
		if err != nil {
			return err
		}
		return writeReport("pca", args[0], result)
	},
}

func init() {
	f := pcaCmd.Flags()
	f.StringSliceVarP(&pcaFeatures, "features", "f", nil, "feature columns (comma separated)")
	f.IntVarP(&pcaComponents, "components", "k", 2, "number of components to extract")
	f.IntVar(&pcaIterations, "iterations", decomposition.DefaultPowerIterations, "power iteration count per component")
	rootCmd.AddCommand(pcaCmd)
}
