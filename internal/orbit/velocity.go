package orbit

import (
	"fmt"
	"math"
)

const (
	// DefaultK is the tuning constant of the velocity heuristic.
	DefaultK = 0.2

	// DefaultMinDistance is the floor applied to degenerate distances.
	DefaultMinDistance = 1e-6
)

// VelocityModel derives a per-tick angular rate from a body's distance to
// its focus:
//
//	speed = sqrt(K·a / d)
//	rate  = speed / d
//
// This is not Kepler's law. It only reproduces the qualitative behaviour of
// sweeping faster near periapsis, and is kept in this exact form so that
// runs stay visually comparable.
type VelocityModel struct {
	K           float64
	MinDistance float64
}

func DefaultVelocityModel() VelocityModel {
	return VelocityModel{K: DefaultK, MinDistance: DefaultMinDistance}
}

func (m VelocityModel) Validate() error {
	if math.IsNaN(m.K) || math.IsInf(m.K, 0) || m.K <= 0 {
		return fmt.Errorf("%w, got %g", ErrInvalidK, m.K)
	}
	if math.IsNaN(m.MinDistance) || math.IsInf(m.MinDistance, 0) || m.MinDistance < 0 {
		return fmt.Errorf("%w: min distance %g", ErrNotFinite, m.MinDistance)
	}
	return nil
}

// AngularRate returns the angular rate for a body on an orbit of the given
// semi-major axis at the given distance. Distances below MinDistance (or
// DefaultMinDistance when unset) are raised to the floor and reported as
// clamped.
func (m VelocityModel) AngularRate(semiMajorAxis, distance float64) (rate float64, clamped bool) {
	floor := m.MinDistance
	if floor <= 0 {
		floor = DefaultMinDistance
	}
	if !(distance >= floor) {
		distance = floor
		clamped = true
	}
	speed := math.Sqrt(m.K * semiMajorAxis / distance)
	return speed / distance, clamped
}
