// Package dataset defines the tabular data model of the datapeek engine: an
// ordered sequence of records keyed by column name, the missingness and
// numeric-coercion rules shared by every component above it, schema inference,
// and the pure transformation functions used by cleaning collaborators.
//
// A Dataset is never mutated by the engine. Transformations return a fresh
// Dataset; the caller decides whether to keep history or overwrite its own
// working copy.
package dataset

// Record is one row: a mapping from column name to a raw cell value. Cells
// may be strings, numbers, or absent; a missing key reads as a missing value.
type Record map[string]any

// ColumnType classifies a column as numeric or categorical.
type ColumnType int

const (
	// Categorical columns are summarized by frequency.
	Categorical ColumnType = iota
	// Numeric columns are summarized by order statistics and moments.
	Numeric
)

// String returns the column type name.
func (t ColumnType) String() string {
	if t == Numeric {
		return "numeric"
	}
	return "categorical"
}

// Schema maps column names to their inferred types. It is computed once by
// InferSchema and passed explicitly alongside the data instead of being
// re-derived at each access.
type Schema map[string]ColumnType

// Dataset is an ordered sequence of records. Column order matters only for
// display; computation never depends on it. Records are allowed to carry
// extra keys, and keys missing from a record read as missing values.
type Dataset struct {
	Columns []string
	Records []Record
}

// New builds a Dataset from a column list and rows.
func New(columns []string, records []Record) *Dataset {
	return &Dataset{Columns: columns, Records: records}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Column returns the raw cell values of one column, in row order. Rows
// lacking the key contribute nil.
func (d *Dataset) Column(name string) []any {
	values := make([]any, len(d.Records))
	for i, rec := range d.Records {
		values[i] = rec[name]
	}
	return values
}

// Clone returns a deep copy of the dataset. Transformations use it to keep
// the input untouched.
func (d *Dataset) Clone() *Dataset {
	columns := make([]string, len(d.Columns))
	copy(columns, d.Columns)

	records := make([]Record, len(d.Records))
	for i, rec := range d.Records {
		clone := make(Record, len(rec))
		for k, v := range rec {
			clone[k] = v
		}
		records[i] = clone
	}
	return &Dataset{Columns: columns, Records: records}
}

// NumericRows extracts the rows where every listed column coerces to a finite
// number, as dense float vectors in column order. It also reports how many
// rows were excluded, so the silent-filter policy stays visible to callers.
func (d *Dataset) NumericRows(columns []string) (rows [][]float64, excluded int) {
	for _, rec := range d.Records {
		vec := make([]float64, len(columns))
		ok := true
		for j, col := range columns {
			value := rec[col]
			if !IsNumber(value) {
				ok = false
				break
			}
			vec[j] = ToNumber(value)
		}
		if ok {
			rows = append(rows, vec)
		} else {
			excluded++
		}
	}
	return rows, excluded
}
