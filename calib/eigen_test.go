package calib

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestConstraintInverse(t *testing.T) {
	var p mat.Dense
	p.Mul(constraint, constraintInv)
	if !mat.EqualApprox(&p, eye(quadTerms), 1e-15) {
		t.Errorf("C·C⁻¹ =\n%v", mat.Formatted(&p))
	}
}

func TestDominantEigenvectorComplexPair(t *testing.T) {
	// Rotation-scaling block with eigenvalues 3±2i dominates the real ones.
	e := mat.NewDense(6, 6, []float64{
		3, -2, 0, 0, 0, 0,
		2, 3, 0, 0, 0, 0,
		0, 0, 1, 0, 0, 0,
		0, 0, 0, 0.5, 0, 0,
		0, 0, 0, 0, -1, 0,
		0, 0, 0, 0, 0, -2,
	})
	_, _, err := dominantEigenvector(e)
	if !errors.Is(err, ErrNonRealEigenvalue) {
		t.Fatalf("error = %v, want ErrNonRealEigenvalue", err)
	}
	if Kind(err) != "NonRealDominantEigenvalue" {
		t.Errorf("Kind = %q", Kind(err))
	}
}

func TestDominantEigenvectorSign(t *testing.T) {
	// Largest eigenvalue 5 with eigenvector ∝ (-1, 1): the sign flip must
	// make the first component non-negative.
	e := mat.NewDense(2, 2, []float64{
		2, -3,
		-3, 2,
	})
	v, lambda, err := dominantEigenvector(e)
	if err != nil {
		t.Fatalf("dominantEigenvector: %v", err)
	}
	if math.Abs(lambda-5) > 1e-12 {
		t.Errorf("lambda = %g, want 5", lambda)
	}
	if v.AtVec(0) < 0 || math.Abs(v.AtVec(0)+v.AtVec(1)) > 1e-12 {
		t.Errorf("v = %v, want ∝ (1, -1)", mat.Formatted(v.T()))
	}
}

func TestPickLargestRealTie(t *testing.T) {
	tests := []struct {
		values []complex128
		want   int
	}{
		{[]complex128{1, 4, 2}, 1},
		{[]complex128{-3, -1, -2}, 1},
		{[]complex128{2, 2 + 1e-14, 1}, 0},
		{[]complex128{complex(1, 5), 3}, 1},
	}
	for _, tt := range tests {
		if got := pickLargestReal(tt.values); got != tt.want {
			t.Errorf("pickLargestReal(%v) = %d, want %d", tt.values, got, tt.want)
		}
	}
}

func TestSolveConstrainedSingularS22(t *testing.T) {
	sc := Scatter{
		S11: eye(6),
		S12: mat.NewDense(6, 4, nil),
		S21: mat.NewDense(4, 6, nil),
		S22: mat.NewDense(4, 4, []float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}),
	}
	if _, _, _, err := SolveConstrained(sc); !errors.Is(err, ErrSingularMatrix) {
		t.Fatalf("error = %v, want ErrSingularMatrix", err)
	}
}

func eye(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return d
}
