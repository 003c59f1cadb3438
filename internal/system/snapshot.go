package system

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/orbit"
)

// BodyState is the render-facing view of one body at one tick.
type BodyState struct {
	ID       BodyID  `json:"id"`
	Name     string  `json:"name"`
	Kind     Kind    `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Phase    float64 `json:"phase,omitempty"`
	Distance float64 `json:"distance,omitempty"`
}

func (b BodyState) Position() r3.Vec { return r3.Vec{X: b.X, Y: b.Y, Z: b.Z} }

// Snapshot is an immutable copy of every body's state, safe to hand to
// other goroutines.
type Snapshot struct {
	Tick   int         `json:"tick"`
	Time   float64     `json:"time"`
	Bodies []BodyState `json:"bodies"`
}

func (s *System) Snapshot() Snapshot {
	snap := Snapshot{Tick: s.tick, Time: s.t, Bodies: make([]BodyState, len(s.bodies))}
	for i := range s.bodies {
		b := &s.bodies[i]
		st := BodyState{
			ID:   b.ID,
			Name: b.Name,
			Kind: b.Kind,
			X:    b.Position.X,
			Y:    b.Position.Y,
			Z:    b.Position.Z,
		}
		if b.orbit != nil {
			st.Phase = b.orbit.Phase
			st.Distance = orbit.Distance(b.Position, s.bodies[b.orbit.Elements.Reference].Position)
		}
		snap.Bodies[i] = st
	}
	return snap
}

// Valid reports whether every position in the snapshot is finite.
func (s Snapshot) Valid() bool {
	for _, b := range s.Bodies {
		if !finite(b.Position()) {
			return false
		}
	}
	return true
}
