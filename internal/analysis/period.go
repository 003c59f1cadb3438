package analysis

import (
	"errors"
	"math"
)

var ErrTooShort = errors.New("analysis: series too short")

// Period returns the time taken for phase to first advance 2π past its
// initial value, interpolating between samples. ok is false when the
// series never completes a revolution.
func Period(times, phases []float64) (period float64, ok bool) {
	n := min(len(times), len(phases))
	if n < 2 {
		return 0, false
	}
	target := phases[0] + 2*math.Pi
	for i := 1; i < n; i++ {
		if phases[i] < target {
			continue
		}
		span := phases[i] - phases[i-1]
		frac := 1.0
		if span > 0 {
			frac = (target - phases[i-1]) / span
		}
		t := times[i-1] + frac*(times[i]-times[i-1])
		return t - times[0], true
	}
	return 0, false
}

// MeanRate is the average angular rate over the series.
func MeanRate(times, phases []float64) float64 {
	n := min(len(times), len(phases))
	if n < 2 || times[n-1] == times[0] {
		return 0
	}
	return (phases[n-1] - phases[0]) / (times[n-1] - times[0])
}

// Eccentricity recovers e from periapsis and apoapsis distances:
// rp = a(1-e), ra = a(1+e).
func Eccentricity(periapsis, apoapsis float64) float64 {
	if periapsis+apoapsis <= 0 {
		return 0
	}
	return (apoapsis - periapsis) / (apoapsis + periapsis)
}
