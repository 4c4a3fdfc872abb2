package calib

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// SolveConstrained solves the Li-Griffiths eigenproblem
//
//	E = C⁻¹ (S11 − S12 S22⁻¹ S21),  E v1 = λ v1
//
// and back-substitutes v2 = −S22⁻¹ S21 v1. v1 holds the six quadratic
// coefficients, v2 the three linear ones and the constant. The returned λ is
// the selected eigenvalue.
//
// v1 belongs to the eigenvalue with the largest real part. When several
// eigenvalues are equal to that maximum within TieTolerance, the first one in
// the decomposition's order is taken; any of them is an acceptable fit. v1 is
// signed so that v1[0] ≥ 0.
func SolveConstrained(sc Scatter) (v1, v2 *mat.VecDense, lambda float64, err error) {
	s22Inv, err := invert("S22", sc.S22)
	if err != nil {
		return nil, nil, 0, err
	}

	// S11 − S12 S22⁻¹ S21
	var s22s21, reduced mat.Dense
	s22s21.Mul(s22Inv, sc.S21)
	reduced.Mul(sc.S12, &s22s21)
	reduced.Sub(sc.S11, &reduced)

	var e mat.Dense
	e.Mul(constraintInv, &reduced)

	v1, lambda, err = dominantEigenvector(&e)
	if err != nil {
		return nil, nil, 0, err
	}

	v2 = mat.NewVecDense(linearTerms, nil)
	v2.MulVec(&s22s21, v1)
	v2.ScaleVec(-1, v2)
	return v1, v2, lambda, nil
}

// dominantEigenvector returns the real eigenvector of e whose eigenvalue has
// the largest real part, with its first component made non-negative.
func dominantEigenvector(e mat.Matrix) (*mat.VecDense, float64, error) {
	if !allFinite(e) {
		return nil, 0, fmt.Errorf("E: non-finite entries: %w", ErrSingularMatrix)
	}
	var eig mat.Eigen
	if ok := eig.Factorize(e, mat.EigenRight); !ok {
		return nil, 0, fmt.Errorf("E: eigendecomposition did not converge: %w", ErrNonRealEigenvalue)
	}
	values := eig.Values(nil)

	best := pickLargestReal(values)
	lambda := values[best]
	if radius := spectralRadius(values); math.Abs(imag(lambda)) > ImagTolerance*math.Max(radius, 1) {
		return nil, 0, fmt.Errorf("E: eigenvalue %v: %w", lambda, ErrNonRealEigenvalue)
	}

	var vectors mat.CDense
	eig.VectorsTo(&vectors)
	n, _ := vectors.Dims()
	v := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v.SetVec(i, real(vectors.At(i, best)))
	}
	if v.AtVec(0) < 0 {
		v.ScaleVec(-1, v)
	}
	return v, real(lambda), nil
}

// pickLargestReal returns the index of the eigenvalue with the largest real
// part. Values within TieTolerance of the running maximum do not replace it.
func pickLargestReal(values []complex128) int {
	best := 0
	scale := math.Max(spectralRadius(values), 1)
	for i := 1; i < len(values); i++ {
		if real(values[i])-real(values[best]) > TieTolerance*scale {
			best = i
		}
	}
	return best
}

func spectralRadius(values []complex128) float64 {
	var r float64
	for _, v := range values {
		r = math.Max(r, cmplx.Abs(v))
	}
	return r
}
