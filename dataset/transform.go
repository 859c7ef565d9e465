package dataset

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Transformations below are the cleaning collaborator's toolkit. Each takes
// an immutable dataset and returns a new one; the engine never imputes or
// scales on its own behalf.

func numericColumn(d *Dataset, col string) []float64 {
	var xs []float64
	for _, rec := range d.Records {
		if IsNumber(rec[col]) {
			xs = append(xs, ToNumber(rec[col]))
		}
	}
	return xs
}

// ImputeMean replaces missing or non-numeric cells in each listed column with
// the column mean of the parseable cells. Columns with no parseable cells are
// left untouched.
func ImputeMean(d *Dataset, columns []string) *Dataset {
	out := d.Clone()
	for _, col := range columns {
		xs := numericColumn(d, col)
		if len(xs) == 0 {
			continue
		}
		mean := stat.Mean(xs, nil)
		for _, rec := range out.Records {
			if !IsNumber(rec[col]) {
				rec[col] = mean
			}
		}
	}
	return out
}

// ImputeMode replaces missing cells in each listed column with the most
// frequent non-missing value, ties broken by first-encountered order.
func ImputeMode(d *Dataset, columns []string) *Dataset {
	out := d.Clone()
	for _, col := range columns {
		counts := make(map[string]int)
		var order []string
		for _, rec := range d.Records {
			if IsMissing(rec[col]) {
				continue
			}
			key := Stringify(rec[col])
			if _, seen := counts[key]; !seen {
				order = append(order, key)
			}
			counts[key]++
		}
		if len(order) == 0 {
			continue
		}
		mode := order[0]
		for _, key := range order {
			if counts[key] > counts[mode] {
				mode = key
			}
		}
		for _, rec := range out.Records {
			if IsMissing(rec[col]) {
				rec[col] = mode
			}
		}
	}
	return out
}

// DropMissing removes every row that has a missing cell in any of the listed
// columns.
func DropMissing(d *Dataset, columns []string) *Dataset {
	out := &Dataset{Columns: append([]string(nil), d.Columns...)}
	for _, rec := range d.Records {
		keep := true
		for _, col := range columns {
			if IsMissing(rec[col]) {
				keep = false
				break
			}
		}
		if keep {
			clone := make(Record, len(rec))
			for k, v := range rec {
				clone[k] = v
			}
			out.Records = append(out.Records, clone)
		}
	}
	return out
}

// StandardScale rescales each listed column to zero mean and unit standard
// deviation over its parseable cells. Cells that do not parse stay as they
// are. A column with zero spread is only centered.
func StandardScale(d *Dataset, columns []string) *Dataset {
	out := d.Clone()
	for _, col := range columns {
		xs := numericColumn(d, col)
		if len(xs) == 0 {
			continue
		}
		mean := stat.Mean(xs, nil)
		std := sampleStd(xs, mean)
		for _, rec := range out.Records {
			if !IsNumber(rec[col]) {
				continue
			}
			v := ToNumber(rec[col]) - mean
			if std > 0 {
				v /= std
			}
			rec[col] = v
		}
	}
	return out
}

// MinMaxScale rescales each listed column into [0,1] over its parseable
// cells. A constant column maps to 0.
func MinMaxScale(d *Dataset, columns []string) *Dataset {
	out := d.Clone()
	for _, col := range columns {
		xs := numericColumn(d, col)
		if len(xs) == 0 {
			continue
		}
		lo, hi := xs[0], xs[0]
		for _, x := range xs[1:] {
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
		span := hi - lo
		for _, rec := range out.Records {
			if !IsNumber(rec[col]) {
				continue
			}
			if span == 0 {
				rec[col] = 0.0
				continue
			}
			rec[col] = (ToNumber(rec[col]) - lo) / span
		}
	}
	return out
}

// sampleStd is the sample standard deviation with the (n-1) divisor, falling
// back to divisor 1 when n == 1.
func sampleStd(xs []float64, mean float64) float64 {
	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	div := float64(len(xs) - 1)
	if div < 1 {
		div = 1
	}
	return math.Sqrt(ss / div)
}
