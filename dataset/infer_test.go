package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleDataset() *Dataset {
	return New(
		[]string{"age", "city", "income"},
		[]Record{
			{"age": "34", "city": "Osaka", "income": "$52,000"},
			{"age": "28", "city": "Kyoto", "income": "48000"},
			{"age": "n/a", "city": "Osaka", "income": "61000"},
			{"age": "45", "city": "", "income": "not disclosed"},
			{"age": "52", "city": "Nara", "income": "55000"},
		},
	)
}

func TestInferColumnType(t *testing.T) {
	tests := []struct {
		name      string
		values    []any
		threshold float64
		want      ColumnType
	}{
		{"all numeric", []any{"1", "2", "3"}, 0.8, Numeric},
		{"mostly numeric", []any{"1", "2", "3", "4", "x"}, 0.8, Numeric},
		{"mostly text", []any{"a", "b", "c", "1"}, 0.8, Categorical},
		{"all missing", []any{"", "na", nil}, 0.8, Categorical},
		{"empty sample", nil, 0.8, Categorical},
		{"missing values ignored", []any{"", "na", "7", "8"}, 0.8, Numeric},
		{"exactly at threshold", []any{"1", "2", "3", "4", "x"}, 0.8, Numeric},
		{"below threshold", []any{"1", "2", "3", "x", "y"}, 0.8, Categorical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferColumnType(tt.values, tt.threshold))
		})
	}
}

func TestInferSchema(t *testing.T) {
	ds := sampleDataset()
	schema := InferSchema(ds, DefaultNumericThreshold)

	assert.Equal(t, Numeric, schema["age"])
	assert.Equal(t, Categorical, schema["city"])
	assert.Equal(t, Numeric, schema["income"])
}

func TestNumericRows(t *testing.T) {
	ds := sampleDataset()

	rows, excluded := ds.NumericRows([]string{"age", "income"})

	// The "n/a" age row and the "not disclosed" income row drop out.
	assert.Len(t, rows, 3)
	assert.Equal(t, 2, excluded)
	assert.Equal(t, []float64{34, 52000}, rows[0])
}

func TestNumericRowsMissingKey(t *testing.T) {
	ds := New([]string{"x"}, []Record{{"x": "1"}, {}})

	rows, excluded := ds.NumericRows([]string{"x"})

	assert.Len(t, rows, 1)
	assert.Equal(t, 1, excluded)
}
