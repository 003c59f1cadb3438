package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var xAxis = r3.Vec{X: 1}

// Radius returns the focal distance at the given phase from the conic
// equation r = a(1-e²) / (1 + e·cos(phase)).
func Radius(phase float64, el Elements) float64 {
	return el.SemiLatusRectum() / (1 + el.Eccentricity*math.Cos(phase))
}

// Planar returns the point on the untilted ellipse in the XZ plane,
// relative to the focus.
func Planar(phase float64, el Elements) r3.Vec {
	r := Radius(phase, el)
	return r3.Vec{X: r * math.Cos(phase), Z: r * math.Sin(phase)}
}

// Solve maps a phase to a world position. The planar point is rotated
// about the X axis by the inclination and translated to the focus.
//
// Solve is pure. Elements must have passed Validate; with e >= 1 the
// radius is unbounded at phase π.
func Solve(phase float64, el Elements, focus r3.Vec) r3.Vec {
	p := Planar(phase, el)
	if el.Inclination != 0 {
		p = r3.NewRotation(el.Inclination, xAxis).Rotate(p)
	}
	return r3.Add(p, focus)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}
