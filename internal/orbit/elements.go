package orbit

import (
	"fmt"
	"math"
)

// Elements describes one body's elliptical orbit about a reference star.
// Elements are set at configuration time and never change afterwards.
type Elements struct {
	SemiMajorAxis float64 // a, orbit scale
	Eccentricity  float64 // e, 0 is a circle
	Inclination   float64 // tilt about the world X axis, radians
	Reference     int     // index of the star at the focus
}

// Validate reports whether the elements describe a closed, finite orbit.
// The reference index is checked by whoever owns the star table.
func (e Elements) Validate() error {
	for _, v := range []float64{e.SemiMajorAxis, e.Eccentricity, e.Inclination} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNotFinite
		}
	}
	if e.SemiMajorAxis <= 0 {
		return fmt.Errorf("%w, got %g", ErrSemiMajorAxis, e.SemiMajorAxis)
	}
	if e.Eccentricity < 0 || e.Eccentricity >= 1 {
		return fmt.Errorf("%w, got %g", ErrEccentricity, e.Eccentricity)
	}
	return nil
}

// SemiLatusRectum returns a(1-e²).
func (e Elements) SemiLatusRectum() float64 {
	return e.SemiMajorAxis * (1 - e.Eccentricity*e.Eccentricity)
}

// Periapsis returns the closest approach to the focus, a(1-e).
func (e Elements) Periapsis() float64 { return e.SemiMajorAxis * (1 - e.Eccentricity) }

// Apoapsis returns the farthest distance from the focus, a(1+e).
func (e Elements) Apoapsis() float64 { return e.SemiMajorAxis * (1 + e.Eccentricity) }
