package calib

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Derive turns an ellipsoid into the transform that maps it onto a sphere of
// radius field:
//
//	b   = −M⁻¹ n
//	A⁻¹ = field / √(nᵀM⁻¹n − d) · √M
//
// √M is the principal root of the symmetric matrix M.
func Derive(e Ellipsoid, field float64) (Transform, error) {
	if err := checkField(field); err != nil {
		return Transform{}, err
	}
	mi, err := invert("M", e.M)
	if err != nil {
		return Transform{}, err
	}

	var b mat.VecDense
	b.MulVec(mi, e.N)
	b.ScaleVec(-1, &b)

	// nᵀM⁻¹n = −nᵀb
	quad := -mat.Dot(e.N, &b)
	radicand := quad - e.D
	if ref := math.Abs(quad) + math.Abs(e.D); !(radicand > RadicandTolerance*ref) {
		return Transform{}, fmt.Errorf("radicand nᵀM⁻¹n−d = %.6g: %w", radicand, ErrDegenerateEllipsoid)
	}

	root, err := sqrtSym(e.M)
	if err != nil {
		return Transform{}, err
	}

	scale := field / math.Sqrt(radicand)
	var t Transform
	for i := 0; i < 3; i++ {
		t.Offset[i] = b.AtVec(i)
		for j := 0; j < 3; j++ {
			t.SoftIron[i][j] = scale * root.At(i, j)
		}
	}
	return t, nil
}

// sqrtSym returns the principal square root Q·diag(√λ)·Qᵀ of a symmetric
// matrix. Eigenvalues slightly below zero are treated as zero; anything
// further below means the matrix is indefinite.
func sqrtSym(m *mat.SymDense) (*mat.SymDense, error) {
	var es mat.EigenSym
	if ok := es.Factorize(m, true); !ok {
		return nil, fmt.Errorf("M: symmetric eigendecomposition failed: %w", ErrDegenerateEllipsoid)
	}
	values := es.Values(nil)
	var q mat.Dense
	es.VectorsTo(&q)

	var top float64
	for _, v := range values {
		top = math.Max(top, math.Abs(v))
	}
	roots := make([]float64, len(values))
	for i, v := range values {
		switch {
		case v >= 0:
			roots[i] = math.Sqrt(v)
		case v >= -EigenTolerance*top:
			roots[i] = 0
		default:
			return nil, fmt.Errorf("M eigenvalue %.6g: %w", v, ErrDegenerateEllipsoid)
		}
	}

	var scaled, full mat.Dense
	scaled.Mul(&q, mat.NewDiagDense(len(roots), roots))
	full.Mul(&scaled, q.T())
	return symmetric(&full), nil
}

func checkField(field float64) error {
	if !(field > 0) || math.IsInf(field, 0) {
		return fmt.Errorf("field %v: %w", field, ErrInvalidField)
	}
	return nil
}
