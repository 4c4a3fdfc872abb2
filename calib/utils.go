package calib

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// invert returns a⁻¹, or ErrSingularMatrix when a is singular or too badly
// conditioned for the inverse to mean anything. name labels the error.
func invert(name string, a mat.Matrix) (*mat.Dense, error) {
	if !allFinite(a) {
		return nil, fmt.Errorf("%s: non-finite entries: %w", name, ErrSingularMatrix)
	}
	if c := mat.Cond(a, 2); math.IsNaN(c) || c > MaxCondition {
		return nil, fmt.Errorf("%s: condition number %.3g: %w", name, c, ErrSingularMatrix)
	}
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		var cond mat.Condition
		if errors.Is(err, mat.ErrSingular) || errors.As(err, &cond) {
			return nil, fmt.Errorf("%s: %v: %w", name, err, ErrSingularMatrix)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &inv, nil
}

// symmetric copies a square matrix into a SymDense, averaging the two
// triangles.
func symmetric(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return s
}

func allFinite(a mat.Matrix) bool {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := a.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
