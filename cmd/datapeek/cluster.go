package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/cluster"
)

var (
	clusterFeatures []string
	clusterK        int
	clusterMaxIter  int
)

var clusterCmd = &cobra.Command{
	Use:   "cluster <file>",
	Short: "Partition rows into k clusters with Lloyd's k-means",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(clusterFeatures) == 0 {
			return fmt.Errorf("--features is required")
		}
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}

		result, err := cluster.Fit(ds, clusterFeatures, clusterK,
			cluster.WithMaxIterations(clusterMaxIter),
			cluster.WithRandSource(newRand()))
		if err != nil {
			return err
		}
		return writeReport("cluster", args[0], result)
	},
}

func init() {
	f := clusterCmd.Flags()
	f.StringSliceVarP(&clusterFeatures, "features", "f", nil, "feature columns (comma separated)")
	f.IntVarP(&clusterK, "k", "k", 2, "number of clusters")
	f.IntVar(&clusterMaxIter, "max-iter", cluster.DefaultMaxIterations, "iteration cap for Lloyd's loop")
	rootCmd.AddCommand(clusterCmd)
}
