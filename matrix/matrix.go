// Package matrix is the dense linear-algebra kernel shared by the regression
// and decomposition packages. Storage and multiplication ride on gonum's
// mat.Dense; the inverse is a Gauss-Jordan elimination with partial pivoting
// whose pivot threshold and failure mode are part of the engine's contract.
package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/datapeek/datapeek/pkg/errors"
)

// PivotEpsilon is the singularity threshold: a column whose best remaining
// pivot has magnitude below it makes the matrix singular. A design parameter,
// applied consistently everywhere the kernel inverts.
const PivotEpsilon = 1e-12

// Transpose returns a new matrix that is the transpose of a.
func Transpose(a *mat.Dense) *mat.Dense {
	var t mat.Dense
	t.CloneFrom(a.T())
	return &t
}

// Mul returns the product a*b, or a DimensionError when a's column count does
// not match b's row count.
func Mul(a, b *mat.Dense) (*mat.Dense, error) {
	_, ac := a.Dims()
	br, _ := b.Dims()
	if ac != br {
		return nil, errors.NewDimensionError("matrix.Mul", ac, br, 0)
	}
	var out mat.Dense
	out.Mul(a, b)
	return &out, nil
}

// MulVec returns the matrix-vector product a*x.
func MulVec(a *mat.Dense, x *mat.VecDense) (*mat.VecDense, error) {
	_, ac := a.Dims()
	if ac != x.Len() {
		return nil, errors.NewDimensionError("matrix.MulVec", ac, x.Len(), 0)
	}
	var out mat.VecDense
	out.MulVec(a, x)
	return &out, nil
}

// GaussJordanInverse inverts a square matrix by Gauss-Jordan elimination on
// the augmented [A | I] matrix. For each column it selects the row with the
// largest absolute value among the unprocessed rows (partial pivoting) and
// fails with SingularMatrixError when that pivot's magnitude is below
// PivotEpsilon. The input is not modified.
func GaussJordanInverse(a *mat.Dense) (*mat.Dense, error) {
	n, c := a.Dims()
	if n != c {
		return nil, errors.NewDimensionError("matrix.GaussJordanInverse", n, c, 1)
	}
	if n == 0 {
		return nil, errors.NewValueError("matrix.GaussJordanInverse", "empty matrix")
	}

	// Augmented working copy [A | I].
	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, 2*n)
		for j := 0; j < n; j++ {
			row[j] = a.At(i, j)
		}
		row[n+i] = 1
		aug[i] = row
	}

	for col := 0; col < n; col++ {
		pivotRow := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivotRow][col]) {
				pivotRow = r
			}
		}
		pivot := aug[pivotRow][col]
		if math.Abs(pivot) < PivotEpsilon {
			return nil, errors.NewSingularMatrixError("matrix.GaussJordanInverse", col, pivot)
		}
		aug[col], aug[pivotRow] = aug[pivotRow], aug[col]

		inv := 1 / pivot
		for j := 0; j < 2*n; j++ {
			aug[col][j] *= inv
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			if factor == 0 {
				continue
			}
			for j := 0; j < 2*n; j++ {
				aug[r][j] -= factor * aug[col][j]
			}
		}
	}

	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, aug[i][n+j])
		}
	}
	return out, nil
}
