package calib

import "errors"

// Fit failures. All of them are terminal for a run: the computation is
// deterministic, so only different input data can change the outcome.
var (
	// ErrSingularMatrix is returned when S22 or M cannot be inverted.
	ErrSingularMatrix = errors.New("calib: singular matrix")

	// ErrNonRealEigenvalue is returned when the dominant eigenvalue of the
	// constrained problem has a non-negligible imaginary part.
	ErrNonRealEigenvalue = errors.New("calib: dominant eigenvalue is not real")

	// ErrDegenerateEllipsoid is returned when the fitted quadric is not a real,
	// positive-definite ellipsoid.
	ErrDegenerateEllipsoid = errors.New("calib: fitted quadric is not an ellipsoid")

	// ErrInvalidField is returned for a target field that is not positive and finite.
	ErrInvalidField = errors.New("calib: target field must be positive")
)

// Remedy returns a short operator hint for a fit error, or "" when err is
// not one of the fit failures.
func Remedy(err error) string {
	switch {
	case errors.Is(err, ErrSingularMatrix), errors.Is(err, ErrNonRealEigenvalue), errors.Is(err, ErrDegenerateEllipsoid):
		return "collect a more varied sample set: rotate the sensor through all orientations"
	case errors.Is(err, ErrInvalidField):
		return "set a positive target field (raw units) or the local total field and sensor range"
	}
	return ""
}

// Kind names the fit failure carried by err.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrSingularMatrix):
		return "SingularMatrix"
	case errors.Is(err, ErrNonRealEigenvalue):
		return "NonRealDominantEigenvalue"
	case errors.Is(err, ErrDegenerateEllipsoid):
		return "DegenerateEllipsoid"
	case errors.Is(err, ErrInvalidField):
		return "InvalidField"
	}
	return "Unknown"
}
