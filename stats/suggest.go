package stats

import (
	"fmt"
	"math"

	"github.com/datapeek/datapeek/dataset"
)

// Suggestion trigger thresholds. The triggering conditions are the contract;
// the wording of the produced strings is presentation detail.
const (
	// MissingRateThreshold flags columns with this fraction of missing cells.
	MissingRateThreshold = 0.2
	// DispersionRatio flags numeric columns whose sample standard deviation
	// exceeds this multiple of the absolute mean.
	DispersionRatio = 1.0
	// HighCardinalityMin is the minimum distinct-value count before a
	// categorical column is considered high-cardinality.
	HighCardinalityMin = 20
	// CorrelationThreshold flags numeric column pairs with |r| above it.
	CorrelationThreshold = 0.9
)

// Suggest produces human-readable data-quality suggestions for the dataset:
// high missing-value rates, high dispersion, high-cardinality categoricals,
// and strongly correlated numeric pairs.
func Suggest(d *dataset.Dataset, schema dataset.Schema) []string {
	var suggestions []string
	total := d.Len()

	for _, col := range d.Columns {
		values := d.Column(col)
		missing := 0
		for _, v := range values {
			if dataset.IsMissing(v) {
				missing++
			}
		}
		if total > 0 {
			rate := float64(missing) / float64(total)
			if rate > MissingRateThreshold {
				suggestions = append(suggestions, fmt.Sprintf(
					"Column %q is %.0f%% missing; consider imputing or dropping it.", col, rate*100))
			}
		}

		switch schema[col] {
		case dataset.Numeric:
			num := summarizeNumeric(values)
			if num.Count > 1 && num.Std > DispersionRatio*math.Abs(num.Mean) {
				suggestions = append(suggestions, fmt.Sprintf(
					"Column %q has high dispersion (std %.3g vs mean %.3g); consider scaling or a log transform.",
					col, num.Std, num.Mean))
			}
		case dataset.Categorical:
			cat := summarizeCategorical(values)
			if cat.Cardinality >= HighCardinalityMin && cat.Cardinality > cat.Count/2 {
				suggestions = append(suggestions, fmt.Sprintf(
					"Column %q has %d distinct values in %d rows; it may be an identifier rather than a category.",
					col, cat.Cardinality, cat.Count))
			}
		}
	}

	for _, pair := range CorrelationPairs(d, schema) {
		if math.Abs(pair.R) > CorrelationThreshold {
			suggestions = append(suggestions, fmt.Sprintf(
				"Columns %q and %q are highly correlated (r=%.3f); one of them may be redundant.",
				pair.A, pair.B, pair.R))
		}
	}

	return suggestions
}
