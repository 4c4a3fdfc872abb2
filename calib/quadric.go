package calib

import "gonum.org/v1/gonum/mat"

// Extract reshapes the quadratic (v1) and linear+constant (v2) coefficient
// vectors into the ellipsoid's matrix form. Off-diagonal entries follow the
// design row order: v1[3] pairs y,z, v1[4] pairs x,z and v1[5] pairs x,y.
func Extract(v1, v2 mat.Vector) Ellipsoid {
	m := mat.NewSymDense(3, []float64{
		v1.AtVec(0), v1.AtVec(5), v1.AtVec(4),
		v1.AtVec(5), v1.AtVec(1), v1.AtVec(3),
		v1.AtVec(4), v1.AtVec(3), v1.AtVec(2),
	})
	n := mat.NewVecDense(3, []float64{v2.AtVec(0), v2.AtVec(1), v2.AtVec(2)})
	return Ellipsoid{M: m, N: n, D: v2.AtVec(3)}
}
