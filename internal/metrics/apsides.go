package metrics

import (
	"math"

	"github.com/san-kum/orrery/internal/system"
)

// Range is the observed spread of one planet's focus distance.
type Range struct {
	ID      system.BodyID
	Name    string
	Min     float64
	Max     float64
	Mean    float64
	samples int
}

// Apsides tracks the closest and farthest observed focus distance per
// planet across snapshots.
type Apsides struct {
	ranges map[system.BodyID]*Range
	order  []system.BodyID
}

func NewApsides() *Apsides {
	return &Apsides{ranges: make(map[system.BodyID]*Range)}
}

func (a *Apsides) Observe(snap system.Snapshot) {
	for _, b := range snap.Bodies {
		if b.Kind != system.KindPlanet {
			continue
		}
		r, ok := a.ranges[b.ID]
		if !ok {
			r = &Range{ID: b.ID, Name: b.Name, Min: math.Inf(1), Max: math.Inf(-1)}
			a.ranges[b.ID] = r
			a.order = append(a.order, b.ID)
		}
		r.Min = math.Min(r.Min, b.Distance)
		r.Max = math.Max(r.Max, b.Distance)
		r.Mean += (b.Distance - r.Mean) / float64(r.samples+1)
		r.samples++
	}
}

// Ranges returns one entry per planet in first-seen order.
func (a *Apsides) Ranges() []Range {
	out := make([]Range, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, *a.ranges[id])
	}
	return out
}

func (a *Apsides) Reset() {
	a.ranges = make(map[system.BodyID]*Range)
	a.order = nil
}
