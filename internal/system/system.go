package system

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/orbit"
)

// Observer is notified after every completed step.
type Observer interface {
	OnStep(r StepReport)
}

// StepReport summarises one tick.
type StepReport struct {
	Tick     int
	Time     float64
	Dt       float64
	Planets  int
	Clamped  []DegenerateStateError
	Duration time.Duration
}

type System struct {
	bodies   []Body
	stars    int
	velocity orbit.VelocityModel
	paths    [][]r3.Vec
	initial  []float64

	tick int
	t    float64

	workers   int
	distBuf   []float64
	clampBuf  []bool
	observers []Observer
	logger    log.Logger
}

// New validates spec and builds the arena. Stars receive ids 0..len(Stars)-1
// in order, planets follow. Any invalid record aborts with a
// *ConfigurationError.
func New(spec Spec, logger log.Logger) (*System, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = log.With(logger, "component", "system")

	if len(spec.Stars) == 0 {
		return nil, &ConfigurationError{Index: -1, Wrapped: ErrNoStars}
	}
	if err := spec.Velocity.Validate(); err != nil {
		return nil, &ConfigurationError{Index: -1, Wrapped: err}
	}
	step := spec.PathStep
	if step == 0 {
		step = orbit.DefaultPathStep
	}

	s := &System{
		bodies:   make([]Body, 0, len(spec.Stars)+len(spec.Planets)),
		stars:    len(spec.Stars),
		velocity: spec.Velocity,
		paths:    make([][]r3.Vec, len(spec.Planets)),
		initial:  make([]float64, len(spec.Planets)),
		workers:  1,
		distBuf:  make([]float64, len(spec.Planets)),
		clampBuf: make([]bool, len(spec.Planets)),
		logger:   logger,
	}

	for i, st := range spec.Stars {
		if st.Name == "" {
			return nil, &ConfigurationError{Index: i, Wrapped: ErrUnnamed}
		}
		if !validScale(st.Scale) {
			return nil, &ConfigurationError{Body: st.Name, Index: i, Wrapped: ErrBadScale}
		}
		if !finite(st.Position) {
			return nil, &ConfigurationError{Body: st.Name, Index: i, Wrapped: orbit.ErrNotFinite}
		}
		s.bodies = append(s.bodies, Body{
			ID:       BodyID(i),
			Name:     st.Name,
			Kind:     KindStar,
			Scale:    st.Scale,
			Tint:     st.Tint,
			Position: st.Position,
		})
	}

	rng := rand.New(rand.NewSource(spec.Seed))
	for i, pl := range spec.Planets {
		id := len(spec.Stars) + i
		// Drawn for every planet so an explicit phase leaves the others alone.
		drawn := rng.Float64() * 2 * math.Pi

		if pl.Name == "" {
			return nil, &ConfigurationError{Index: id, Wrapped: ErrUnnamed}
		}
		cfgErr := func(err error) error {
			return &ConfigurationError{Body: pl.Name, Index: id, Wrapped: err}
		}
		if !validScale(pl.Scale) {
			return nil, cfgErr(ErrBadScale)
		}
		if err := pl.Elements.Validate(); err != nil {
			return nil, cfgErr(err)
		}
		ref := pl.Elements.Reference
		if ref < 0 || ref >= len(spec.Stars) {
			return nil, cfgErr(fmt.Errorf("%w: index %d of %d", ErrUnknownStar, ref, len(spec.Stars)))
		}

		phase := drawn
		if pl.Phase != nil {
			phase = *pl.Phase
			if math.IsNaN(phase) || math.IsInf(phase, 0) {
				return nil, cfgErr(fmt.Errorf("%w: phase", orbit.ErrNotFinite))
			}
		}

		focus := s.bodies[ref].Position
		pos := orbit.Solve(phase, pl.Elements, focus)
		if !finite(pos) {
			return nil, cfgErr(orbit.ErrNotFinite)
		}
		path, err := orbit.SamplePath(pl.Elements, focus, step)
		if err != nil {
			return nil, cfgErr(err)
		}

		s.initial[i] = phase
		s.paths[i] = path
		s.bodies = append(s.bodies, Body{
			ID:       BodyID(id),
			Name:     pl.Name,
			Kind:     KindPlanet,
			Scale:    pl.Scale,
			Tint:     pl.Tint,
			Position: pos,
			orbit:    &Orbit{Elements: pl.Elements, Phase: phase},
		})
	}

	level.Info(logger).Log("msg", "system ready", "stars", s.stars, "planets", len(spec.Planets), "k", spec.Velocity.K)
	return s, nil
}

func validScale(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func (s *System) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetWorkers sets how many goroutines Step may use. n <= 1 steps serially.
func (s *System) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	s.workers = n
}

func (s *System) Tick() int       { return s.tick }
func (s *System) Time() float64   { return s.t }
func (s *System) Len() int        { return len(s.bodies) }
func (s *System) NumStars() int   { return s.stars }
func (s *System) NumPlanets() int { return len(s.bodies) - s.stars }

func (s *System) Velocity() orbit.VelocityModel { return s.velocity }

// Body returns a copy of the body with the given id.
func (s *System) Body(id BodyID) (Body, error) {
	if id < 0 || int(id) >= len(s.bodies) {
		return Body{}, fmt.Errorf("%w: %d", ErrUnknownBody, id)
	}
	return s.bodies[id].clone(), nil
}

// Bodies returns copies of every body in id order.
func (s *System) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	for i := range s.bodies {
		out[i] = s.bodies[i].clone()
	}
	return out
}

// Planets returns the ids of all planets.
func (s *System) Planets() []BodyID {
	ids := make([]BodyID, 0, s.NumPlanets())
	for i := s.stars; i < len(s.bodies); i++ {
		ids = append(ids, BodyID(i))
	}
	return ids
}

// Path returns a copy of the precomputed orbit polyline of a planet.
func (s *System) Path(id BodyID) ([]r3.Vec, error) {
	if id < 0 || int(id) >= len(s.bodies) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBody, id)
	}
	if int(id) < s.stars {
		return nil, fmt.Errorf("%w: %s", ErrNotPlanet, s.bodies[id].Name)
	}
	p := s.paths[int(id)-s.stars]
	out := make([]r3.Vec, len(p))
	copy(out, p)
	return out, nil
}

// Paths returns every planet's polyline keyed by id.
func (s *System) Paths() map[BodyID][]r3.Vec {
	out := make(map[BodyID][]r3.Vec, len(s.paths))
	for _, id := range s.Planets() {
		out[id], _ = s.Path(id)
	}
	return out
}

// SetPhase moves one planet to a new phase and recomputes only its position.
func (s *System) SetPhase(id BodyID, phase float64) error {
	if id < 0 || int(id) >= len(s.bodies) {
		return fmt.Errorf("%w: %d", ErrUnknownBody, id)
	}
	b := &s.bodies[id]
	if b.orbit == nil {
		return fmt.Errorf("%w: %s", ErrNotPlanet, b.Name)
	}
	if math.IsNaN(phase) || math.IsInf(phase, 0) {
		return orbit.ErrNotFinite
	}
	b.orbit.Phase = phase
	b.Position = orbit.Solve(phase, b.orbit.Elements, s.bodies[b.orbit.Elements.Reference].Position)
	return nil
}

// Reset restores every planet to its initial phase and rewinds the clock.
func (s *System) Reset() {
	for i := range s.initial {
		b := &s.bodies[s.stars+i]
		b.orbit.Phase = s.initial[i]
		b.Position = orbit.Solve(b.orbit.Phase, b.orbit.Elements, s.bodies[b.orbit.Elements.Reference].Position)
	}
	s.tick = 0
	s.t = 0
}

// Step advances every planet by dt frames. Each planet measures its
// distance from last tick's position, derives an angular rate, advances
// its phase by rate·dt and is re-solved at the new phase. dt = 1 matches
// one animation frame. Non-positive or non-finite dt is ignored.
func (s *System) Step(dt float64) StepReport {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return StepReport{Tick: s.tick, Time: s.t}
	}
	start := time.Now()
	n := s.NumPlanets()

	if s.workers > 1 {
		ParallelFor(n, s.workers, 8, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				s.distBuf[i], s.clampBuf[i] = s.advance(s.stars+i, dt)
			}
		})
	} else {
		for i := 0; i < n; i++ {
			s.distBuf[i], s.clampBuf[i] = s.advance(s.stars+i, dt)
		}
	}

	s.tick++
	s.t += dt

	report := StepReport{Tick: s.tick, Time: s.t, Dt: dt, Planets: n}
	floor := s.floor()
	for i := 0; i < n; i++ {
		if !s.clampBuf[i] {
			continue
		}
		b := &s.bodies[s.stars+i]
		ev := DegenerateStateError{Body: b.Name, ID: b.ID, Distance: s.distBuf[i], Floor: floor}
		report.Clamped = append(report.Clamped, ev)
		level.Warn(s.logger).Log("msg", "distance clamped", "tick", s.tick, "body", b.Name, "distance", ev.Distance, "floor", floor, "err", ev)
	}
	report.Duration = time.Since(start)

	for _, o := range s.observers {
		o.OnStep(report)
	}
	return report
}

func (s *System) advance(idx int, dt float64) (float64, bool) {
	b := &s.bodies[idx]
	el := b.orbit.Elements
	focus := s.bodies[el.Reference].Position

	d := orbit.Distance(b.Position, focus)
	rate, clamped := s.velocity.AngularRate(el.SemiMajorAxis, d)
	b.orbit.Phase += rate * dt
	b.Position = orbit.Solve(b.orbit.Phase, el, focus)
	return d, clamped
}

func (s *System) floor() float64 {
	if s.velocity.MinDistance > 0 {
		return s.velocity.MinDistance
	}
	return orbit.DefaultMinDistance
}
