package calib

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Fit runs the whole pipeline: design matrix, scatter partition,
// constrained eigenproblem, quadric extraction and transform derivation.
// field is the radius, in raw units, of the sphere the samples are mapped onto.
func Fit(samples []Sample, field float64) (Transform, error) {
	r, err := Calibrate(samples, field)
	if err != nil {
		return Transform{}, err
	}
	return r.Transform, nil
}

// Calibrate is Fit plus the intermediate ellipsoid and the spread of the
// corrected radii.
func Calibrate(samples []Sample, field float64) (*Report, error) {
	if err := checkField(field); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples: %w", ErrSingularMatrix)
	}

	sc := Partition(DesignMatrix(samples))
	v1, v2, lambda, err := SolveConstrained(sc)
	if err != nil {
		return nil, err
	}
	e := Extract(v1, v2)
	t, err := Derive(e, field)
	if err != nil {
		return nil, err
	}
	return &Report{
		Transform:  t,
		Field:      field,
		Samples:    len(samples),
		Eigenvalue: lambda,
		Radius:     RadiusStats(Apply(samples, t)),
		Ellipsoid:  e,
	}, nil
}

// RadiusStats describes how far corrected samples sit from the origin.
func RadiusStats(samples []Sample) Stats {
	if len(samples) == 0 {
		return Stats{}
	}
	radii := make([]float64, len(samples))
	for i, s := range samples {
		radii[i] = s.Norm()
	}
	mean, std := stat.MeanStdDev(radii, nil)
	if len(radii) == 1 {
		std = 0
	}
	return Stats{Mean: mean, StdDev: std, Min: floats.Min(radii), Max: floats.Max(radii)}
}
