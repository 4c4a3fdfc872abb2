package calib

import "gonum.org/v1/gonum/mat"

// DefaultField is the target field magnitude in raw sensor units.
const DefaultField = 110.0

const (
	// MaxCondition is the largest 2-norm condition number accepted for a
	// matrix that has to be inverted (S22 and M).
	MaxCondition = 1e13
	// ImagTolerance bounds the imaginary part of the selected eigenvalue,
	// relative to the spectral radius of E.
	ImagTolerance = 1e-9
	// TieTolerance is the relative window inside which two eigenvalues count
	// as equal when picking the largest real part.
	TieTolerance = 1e-12
	// RadicandTolerance is the relative floor of nᵀM⁻¹n − d.
	RadicandTolerance = 1e-12
	// EigenTolerance is how far below zero an eigenvalue of M may sit,
	// relative to its largest eigenvalue, before M stops being an ellipsoid.
	EigenTolerance = 1e-10
)

// Design matrix layout: quadratic terms first, then linear and constant.
const (
	designRows   = 10
	quadTerms    = 6
	linearTerms  = 4
	nanoTeslaToG = 1e-5
)

// constraint is the Li-Griffiths normalisation matrix with k=4.
var constraint = mat.NewDense(quadTerms, quadTerms, []float64{
	-1, 1, 1, 0, 0, 0,
	1, -1, 1, 0, 0, 0,
	1, 1, -1, 0, 0, 0,
	0, 0, 0, -4, 0, 0,
	0, 0, 0, 0, -4, 0,
	0, 0, 0, 0, 0, -4,
})

// constraintInv is C⁻¹ in closed form: the 3x3 block inverts to
// [[0,.5,.5],[.5,0,.5],[.5,.5,0]] and the diagonal to -1/4.
var constraintInv = mat.NewDense(quadTerms, quadTerms, []float64{
	0, 0.5, 0.5, 0, 0, 0,
	0.5, 0, 0.5, 0, 0, 0,
	0.5, 0.5, 0, 0, 0, 0,
	0, 0, 0, -0.25, 0, 0,
	0, 0, 0, 0, -0.25, 0,
	0, 0, 0, 0, 0, -0.25,
})

// HMC5883L gain (LSB/Gauss) per sensor field range setting (Ga).
var hmc5883lGain = []struct {
	RangeGa float64
	Gain    float64
}{
	{0.88, 1370},
	{1.3, 1090},
	{1.9, 820},
	{2.5, 660},
	{4.0, 440},
	{4.7, 390},
	{5.6, 330},
	{8.1, 230},
}
