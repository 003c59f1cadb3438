package orbit

import "errors"

// Validation errors for orbital parameters.
var (
	// ErrEccentricity indicates an eccentricity outside [0, 1).
	ErrEccentricity = errors.New("orbit: eccentricity must be in [0, 1)")

	// ErrSemiMajorAxis indicates a non-positive semi-major axis.
	ErrSemiMajorAxis = errors.New("orbit: semi-major axis must be positive")

	// ErrNotFinite indicates a NaN or infinite parameter.
	ErrNotFinite = errors.New("orbit: parameter is NaN or Inf")

	// ErrInvalidK indicates a non-positive velocity constant.
	ErrInvalidK = errors.New("orbit: velocity constant must be positive")

	// ErrInvalidStep indicates a sampling step that is non-finite or too
	// small to bound the polyline.
	ErrInvalidStep = errors.New("orbit: sampling step must be finite and at least MinPathStep")
)
