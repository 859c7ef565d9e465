package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datapeek/datapeek/dataset"
)

func toAnySlice(ss ...string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func TestSummarizeNumericOdd(t *testing.T) {
	values := toAnySlice("5", "1", "3", "2", "4")

	s := SummarizeColumn("x", values, dataset.Numeric)

	require.NotNil(t, s.Numeric)
	num := s.Numeric
	assert.Equal(t, 5, num.Count)
	assert.InDelta(t, 3.0, num.Mean, 1e-12)
	assert.InDelta(t, 3.0, num.Median, 1e-12)
	assert.InDelta(t, 1.0, num.Min, 1e-12)
	assert.InDelta(t, 5.0, num.Max, 1e-12)
	// Nearest-rank indices on sorted [1 2 3 4 5]: Q1 at floor(4/4)=1, Q3 at ceil(3)=3.
	assert.InDelta(t, 2.0, num.Q1, 1e-12)
	assert.InDelta(t, 4.0, num.Q3, 1e-12)
	// Sample std of 1..5 is sqrt(2.5).
	assert.InDelta(t, 1.5811388300841898, num.Std, 1e-12)
}

func TestSummarizeNumericEvenMedian(t *testing.T) {
	s := SummarizeColumn("x", toAnySlice("1", "2", "3", "4"), dataset.Numeric)

	assert.InDelta(t, 2.5, s.Numeric.Median, 1e-12)
}

func TestSummarizeNumericSingleValue(t *testing.T) {
	s := SummarizeColumn("x", toAnySlice("7"), dataset.Numeric)

	num := s.Numeric
	assert.Equal(t, 1, num.Count)
	assert.InDelta(t, 0.0, num.Std, 1e-12, "divisor falls back to 1, never divides by zero")
	assert.InDelta(t, 7.0, num.Q1, 1e-12)
	assert.InDelta(t, 7.0, num.Q3, 1e-12)
}

func TestSummarizeNumericDropsJunk(t *testing.T) {
	values := toAnySlice("10", "n/a", "", "20", "junk-row")

	s := SummarizeColumn("x", values, dataset.Numeric)

	assert.Equal(t, 2, s.Numeric.Count)
	assert.InDelta(t, 15.0, s.Numeric.Mean, 1e-12)
}

func TestSummarizeOrderInvariants(t *testing.T) {
	values := toAnySlice("9", "4", "6", "2", "8", "5", "1", "7", "3")

	num := SummarizeColumn("x", values, dataset.Numeric).Numeric

	assert.LessOrEqual(t, num.Min, num.Median)
	assert.LessOrEqual(t, num.Median, num.Max)
	assert.LessOrEqual(t, num.Q1, num.Median)
	assert.LessOrEqual(t, num.Median, num.Q3)
}

func TestSummarizeCategorical(t *testing.T) {
	values := toAnySlice("red", "blue", "red", "green", "", "na", "red")

	s := SummarizeColumn("color", values, dataset.Categorical)

	require.NotNil(t, s.Categorical)
	cat := s.Categorical
	assert.Equal(t, 5, cat.Count)
	assert.Equal(t, 3, cat.Cardinality)
	assert.Equal(t, "red", cat.Top)
	assert.Equal(t, 3, cat.TopCount)
}

func TestSummarizeCategoricalTieFirstSeen(t *testing.T) {
	s := SummarizeColumn("c", toAnySlice("b", "a", "a", "b"), dataset.Categorical)

	assert.Equal(t, "b", s.Categorical.Top)
	assert.Equal(t, 2, s.Categorical.TopCount)
}

func TestSummarizeDataset(t *testing.T) {
	ds := dataset.New(
		[]string{"n", "c"},
		[]dataset.Record{
			{"n": "1", "c": "x"},
			{"n": "2", "c": "y"},
			{"n": "3", "c": "x"},
		},
	)
	schema := dataset.InferSchema(ds, dataset.DefaultNumericThreshold)

	summaries := Summarize(ds, schema)

	require.Len(t, summaries, 2)
	assert.Equal(t, "n", summaries[0].Column)
	assert.NotNil(t, summaries[0].Numeric)
	assert.LessOrEqual(t, summaries[0].Numeric.Count, ds.Len())
	assert.Equal(t, "c", summaries[1].Column)
	assert.NotNil(t, summaries[1].Categorical)
}
