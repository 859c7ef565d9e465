package main

import (
	"github.com/spf13/cobra"

	"github.com/datapeek/datapeek/dataset"
	"github.com/datapeek/datapeek/stats"
)

var describeCorr bool

type describeResult struct {
	Rows         int                    `json:"rows"`
	Schema       map[string]string      `json:"schema"`
	Columns      []stats.ColumnSummary  `json:"columns"`
	Correlations []stats.CorrelatedPair `json:"correlations,omitempty"`
	Suggestions  []string               `json:"suggestions,omitempty"`
}

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Summarize every column and suggest follow-up analyses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		schema := dataset.InferSchema(ds, flagThreshold)

		res := describeResult{
			Rows:        ds.Len(),
			Schema:      make(map[string]string, len(schema)),
			Columns:     stats.Summarize(ds, schema),
			Suggestions: stats.Suggest(ds, schema),
		}
		for name, colType := range schema {
			res.Schema[name] = colType.String()
		}
		if describeCorr {
			res.Correlations = stats.CorrelationPairs(ds, schema)
		}
		return writeReport("describe", args[0], res)
	},
}

func init() {
	describeCmd.Flags().BoolVar(&describeCorr, "correlations", true,
		"include pairwise Pearson correlations of numeric columns")
	rootCmd.AddCommand(describeCmd)
}
