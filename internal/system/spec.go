package system

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/orbit"
)

// StarSpec is the setup record of a fixed star.
type StarSpec struct {
	Name     string
	Scale    float64
	Position r3.Vec
	Tint     Color
}

// PlanetSpec is the setup record of an orbiting planet. Elements.Reference
// indexes Spec.Stars. A nil Phase is drawn from the seeded source.
type PlanetSpec struct {
	Name     string
	Scale    float64
	Tint     Color
	Elements orbit.Elements
	Phase    *float64
}

// Spec is everything New needs to build a System.
type Spec struct {
	Stars    []StarSpec
	Planets  []PlanetSpec
	Velocity orbit.VelocityModel
	PathStep float64
	Seed     int64
}
