package calib

import "gonum.org/v1/gonum/mat"

// DesignMatrix builds the 10xN quadric design matrix. Column i holds
// {x², y², z², 2yz, 2xz, 2xy, 2x, 2y, 2z, 1} for samples[i]. samples must
// not be empty.
func DesignMatrix(samples []Sample) *mat.Dense {
	d := mat.NewDense(designRows, len(samples), nil)
	for i, s := range samples {
		d.SetCol(i, designRow(s))
	}
	return d
}

func designRow(s Sample) []float64 {
	x, y, z := s.X, s.Y, s.Z
	return []float64{
		x * x, y * y, z * z,
		2 * y * z, 2 * x * z, 2 * x * y,
		2 * x, 2 * y, 2 * z,
		1,
	}
}
