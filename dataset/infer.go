package dataset

// DefaultNumericThreshold is the fraction of non-missing values that must
// parse as numbers for a column to be classified Numeric.
const DefaultNumericThreshold = 0.8

// InferColumnType classifies a sample of values. A column with zero
// non-missing values is Categorical.
func InferColumnType(values []any, threshold float64) ColumnType {
	nonMissing := 0
	numeric := 0
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		nonMissing++
		if IsNumber(v) {
			numeric++
		}
	}
	if nonMissing == 0 {
		return Categorical
	}
	if float64(numeric)/float64(nonMissing) >= threshold {
		return Numeric
	}
	return Categorical
}

// InferSchema classifies every column of the dataset. Pass
// DefaultNumericThreshold unless a caller has a reason to loosen or tighten
// the rule. Pure function; the dataset is not touched.
func InferSchema(d *Dataset, threshold float64) Schema {
	schema := make(Schema, len(d.Columns))
	for _, col := range d.Columns {
		schema[col] = InferColumnType(d.Column(col), threshold)
	}
	return schema
}
