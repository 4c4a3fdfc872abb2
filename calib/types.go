package calib

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sample is one raw (or corrected) magnetometer reading.
type Sample struct {
	X, Y, Z float64
}

// Norm returns the Euclidean length of the sample.
func (s Sample) Norm() float64 {
	return math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
}

// Ellipsoid holds the quadric xᵀMx + 2nᵀx + d = 0.
type Ellipsoid struct {
	M *mat.SymDense
	N *mat.VecDense
	D float64
}

// Transform maps a raw reading r to SoftIron · (r − Offset).
// It is a plain value: copying it never shares state.
type Transform struct {
	Offset   [3]float64    `json:"hard_iron_bias"`
	SoftIron [3][3]float64 `json:"soft_iron"`
}

// Identity returns the transform that leaves samples unchanged.
func Identity() Transform {
	return Transform{SoftIron: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Stats summarises the corrected radii of a sample set.
type Stats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Report is the outcome of one calibration run.
type Report struct {
	Transform  Transform `json:"transform"`
	Field      float64   `json:"field"`
	Samples    int       `json:"samples"`
	Eigenvalue float64   `json:"eigenvalue"`
	Radius     Stats     `json:"radius"`

	Ellipsoid Ellipsoid `json:"-"`
}
