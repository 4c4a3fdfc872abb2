package calib

import "gonum.org/v1/gonum/mat"

// Scatter is the Gram matrix S = D·Dᵀ split into its quadratic (0-5) and
// linear+constant (6-9) groups.
type Scatter struct {
	S11 *mat.Dense // 6x6
	S12 *mat.Dense // 6x4
	S21 *mat.Dense // 4x6
	S22 *mat.Dense // 4x4
}

// Partition forms S = D·Dᵀ from a 10xN design matrix and slices it.
// Both triangles of S are computed, no symmetric shortcut is taken.
func Partition(d mat.Matrix) Scatter {
	var s mat.Dense
	s.Mul(d, d.T())
	return Scatter{
		S11: mat.DenseCopyOf(s.Slice(0, quadTerms, 0, quadTerms)),
		S12: mat.DenseCopyOf(s.Slice(0, quadTerms, quadTerms, designRows)),
		S21: mat.DenseCopyOf(s.Slice(quadTerms, designRows, 0, quadTerms)),
		S22: mat.DenseCopyOf(s.Slice(quadTerms, designRows, quadTerms, designRows)),
	}
}
