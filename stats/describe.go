// Package stats computes per-column descriptive summaries, Pearson
// correlations between numeric columns, and the data-quality suggestions
// surfaced to the reporting layer.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/datapeek/datapeek/dataset"
)

// NumericSummary describes a numeric column after dropping missing and
// unparsable cells.
type NumericSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
}

// CategoricalSummary describes a categorical column after dropping missing
// cells.
type CategoricalSummary struct {
	Count       int    `json:"count"`
	Cardinality int    `json:"cardinality"`
	Top         string `json:"top"`
	TopCount    int    `json:"top_count"`
}

// ColumnSummary is the per-column result of Summarize. Exactly one of
// Numeric/Categorical is set, matching Type.
type ColumnSummary struct {
	Column      string              `json:"column"`
	Type        dataset.ColumnType  `json:"-"`
	TypeName    string              `json:"type"`
	Numeric     *NumericSummary     `json:"numeric,omitempty"`
	Categorical *CategoricalSummary `json:"categorical,omitempty"`
}

// Summarize describes every column of the dataset under the given schema.
func Summarize(d *dataset.Dataset, schema dataset.Schema) []ColumnSummary {
	summaries := make([]ColumnSummary, 0, len(d.Columns))
	for _, col := range d.Columns {
		summaries = append(summaries, SummarizeColumn(col, d.Column(col), schema[col]))
	}
	return summaries
}

// SummarizeColumn describes one column's values under its inferred type.
func SummarizeColumn(name string, values []any, colType dataset.ColumnType) ColumnSummary {
	summary := ColumnSummary{Column: name, Type: colType, TypeName: colType.String()}
	if colType == dataset.Numeric {
		summary.Numeric = summarizeNumeric(values)
	} else {
		summary.Categorical = summarizeCategorical(values)
	}
	return summary
}

func summarizeNumeric(values []any) *NumericSummary {
	var xs []float64
	for _, v := range values {
		if dataset.IsNumber(v) {
			xs = append(xs, dataset.ToNumber(v))
		}
	}
	n := len(xs)
	if n == 0 {
		return &NumericSummary{}
	}
	sort.Float64s(xs)

	var median float64
	if n%2 == 1 {
		median = xs[n/2]
	} else {
		median = (xs[n/2-1] + xs[n/2]) / 2
	}

	mean := stat.Mean(xs, nil)

	// Sample variance with the (n-1) divisor, falling back to divisor 1 for
	// a single observation.
	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	div := float64(n - 1)
	if div < 1 {
		div = 1
	}

	// Nearest-rank quartiles. The exact index rule is a reproducibility
	// contract: Q1 at floor((n-1)/4), Q3 at ceil(3(n-1)/4).
	q1 := xs[(n-1)/4]
	q3 := xs[int(math.Ceil(float64(n-1)*3.0/4.0))]

	return &NumericSummary{
		Count:  n,
		Mean:   mean,
		Median: median,
		Std:    math.Sqrt(ss / div),
		Min:    xs[0],
		Max:    xs[n-1],
		Q1:     q1,
		Q3:     q3,
	}
}

func summarizeCategorical(values []any) *CategoricalSummary {
	counts := make(map[string]int)
	var order []string
	total := 0
	for _, v := range values {
		if dataset.IsMissing(v) {
			continue
		}
		total++
		key := dataset.Stringify(v)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}
	summary := &CategoricalSummary{Count: total, Cardinality: len(order)}
	for _, key := range order {
		// Strict inequality keeps the first-encountered value on ties.
		if counts[key] > summary.TopCount {
			summary.Top = key
			summary.TopCount = counts[key]
		}
	}
	return summary
}
