package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultPathStep is the phase increment used for orbit polylines,
// about 63 points per revolution.
const DefaultPathStep = 0.1

// MaxPathPoints bounds the size of one sampled revolution.
const MaxPathPoints = 1 << 16

// MinPathStep is the smallest step SamplePath accepts.
const MinPathStep = 2 * math.Pi / MaxPathPoints

// SamplePath returns the polyline of one revolution, visiting phases
// 0, step, 2·step, ... while below 2π. Phases are computed as i·step so
// resampling yields identical points.
func SamplePath(el Elements, focus r3.Vec, step float64) ([]r3.Vec, error) {
	if math.IsNaN(step) || math.IsInf(step, 0) || step < MinPathStep {
		return nil, ErrInvalidStep
	}
	if err := el.Validate(); err != nil {
		return nil, err
	}

	n := int(math.Ceil(2 * math.Pi / step))
	points := make([]r3.Vec, 0, n)
	for i := 0; ; i++ {
		phase := float64(i) * step
		if phase >= 2*math.Pi {
			break
		}
		points = append(points, Solve(phase, el, focus))
	}
	return points, nil
}
