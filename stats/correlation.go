package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/datapeek/datapeek/dataset"
)

// CorrelatedPair records the Pearson correlation between two numeric columns,
// computed over the rows where both columns parse.
type CorrelatedPair struct {
	A string  `json:"a"`
	B string  `json:"b"`
	R float64 `json:"r"`
}

// Pearson computes the Pearson correlation coefficient of two equally long
// samples. It returns NaN when either sample has zero spread or fewer than
// two observations.
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(x, y, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return r
}

// CorrelationPairs computes the Pearson correlation for every unordered pair
// of numeric columns in the schema, in column order. Pairs with fewer than
// two complete rows are skipped.
func CorrelationPairs(d *dataset.Dataset, schema dataset.Schema) []CorrelatedPair {
	var numericCols []string
	for _, col := range d.Columns {
		if schema[col] == dataset.Numeric {
			numericCols = append(numericCols, col)
		}
	}

	var pairs []CorrelatedPair
	for i := 0; i < len(numericCols); i++ {
		for j := i + 1; j < len(numericCols); j++ {
			x, y := pairedValues(d, numericCols[i], numericCols[j])
			r := Pearson(x, y)
			if math.IsNaN(r) {
				continue
			}
			pairs = append(pairs, CorrelatedPair{A: numericCols[i], B: numericCols[j], R: r})
		}
	}
	return pairs
}

// pairedValues extracts the rows where both columns coerce to numbers.
func pairedValues(d *dataset.Dataset, a, b string) (x, y []float64) {
	for _, rec := range d.Records {
		va, vb := rec[a], rec[b]
		if dataset.IsNumber(va) && dataset.IsNumber(vb) {
			x = append(x, dataset.ToNumber(va))
			y = append(y, dataset.ToNumber(vb))
		}
	}
	return x, y
}
