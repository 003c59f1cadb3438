package analysis

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/system"
)

func TestPeriodLinearPhase(t *testing.T) {
	times := make([]float64, 1000)
	phases := make([]float64, 1000)
	for i := range times {
		times[i] = float64(i)
		phases[i] = 0.5 + 0.01*float64(i)
	}

	p, ok := Period(times, phases)
	if !ok {
		t.Fatal("expected a full revolution")
	}
	if want := 2 * math.Pi / 0.01; math.Abs(p-want) > 1e-9 {
		t.Errorf("period = %f, want %f", p, want)
	}
	if r := MeanRate(times, phases); math.Abs(r-0.01) > 1e-12 {
		t.Errorf("mean rate = %f", r)
	}

	if _, ok := Period(times[:100], phases[:100]); ok {
		t.Error("short series should not complete a revolution")
	}
	if _, ok := Period(nil, nil); ok {
		t.Error("empty series should not report a period")
	}
}

func TestDominantPeriod(t *testing.T) {
	samples := make([]float64, 512)
	for i := range samples {
		samples[i] = 40 + 10*math.Sin(2*math.Pi*float64(i)/64)
	}

	p, err := DominantPeriod(samples, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(p-32) > 1e-9 {
		t.Errorf("period = %f, want 32", p)
	}

	if _, err := DominantPeriod(samples[:3], 1); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
}

func TestUniformPrefix(t *testing.T) {
	tests := []struct {
		name   string
		times  []float64
		wantN  int
		wantDt float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{0}, 1, 0},
		{"even grid", []float64{0, 5, 10, 15, 20}, 5, 5},
		{"off-grid tail", []float64{0, 5, 10, 15, 17}, 4, 5},
		{"rounded times", []float64{0, 0.333333, 0.666667, 1.000000}, 4, 0.333333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, dt := UniformPrefix(tt.times)
			if n != tt.wantN || math.Abs(dt-tt.wantDt) > 1e-12 {
				t.Errorf("got (%d, %g), want (%d, %g)", n, dt, tt.wantN, tt.wantDt)
			}
		})
	}
}

func TestDominantPeriodIgnoresOffGridTail(t *testing.T) {
	times := make([]float64, 0, 257)
	samples := make([]float64, 0, 257)
	for i := 0; i < 256; i++ {
		times = append(times, float64(i)*2)
		samples = append(samples, 40+10*math.Sin(2*math.Pi*float64(i)/32))
	}
	times = append(times, 511)
	samples = append(samples, 40)

	n, dt := UniformPrefix(times)
	if n != 256 {
		t.Fatalf("expected 256 uniform samples, got %d", n)
	}
	p, err := DominantPeriod(samples[:n], dt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(p-64) > 1e-9 {
		t.Errorf("period = %f, want 64", p)
	}
}

func TestEccentricity(t *testing.T) {
	el := orbit.Elements{SemiMajorAxis: 40, Eccentricity: 0.4}
	if e := Eccentricity(el.Periapsis(), el.Apoapsis()); math.Abs(e-0.4) > 1e-12 {
		t.Errorf("eccentricity = %f, want 0.4", e)
	}
	if Eccentricity(0, 0) != 0 {
		t.Error("degenerate apsides should give 0")
	}
}

func TestPeriodOfSimulatedPlanet(t *testing.T) {
	phase := 0.0
	sys, err := system.New(system.Spec{
		Stars: []system.StarSpec{{Name: "Sun", Scale: 1}},
		Planets: []system.PlanetSpec{{
			Name:     "Ring",
			Scale:    1,
			Elements: orbit.Elements{SemiMajorAxis: 20},
			Phase:    &phase,
		}},
		Velocity: orbit.DefaultVelocityModel(),
	}, nil)
	if err != nil {
		t.Fatalf("new system failed: %v", err)
	}

	res, err := sys.Run(context.Background(), system.RunConfig{Dt: 1, Duration: 2000})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	times := make([]float64, len(res.Frames))
	phases := make([]float64, len(res.Frames))
	for i, f := range res.Frames {
		times[i] = f.Time
		phases[i] = f.Bodies[1].Phase
	}

	// a circle has constant rate sqrt(K)/a
	want := 2 * math.Pi / (math.Sqrt(orbit.DefaultK) / 20)
	p, ok := Period(times, phases)
	if !ok || math.Abs(p-want) > 1e-6 {
		t.Errorf("period = %f (%v), want %f", p, ok, want)
	}
}

func TestPortrait(t *testing.T) {
	xs := []float64{-1, 0, 1}
	ys := []float64{-1, 0, 1}
	out := Portrait(xs, ys, 11, 5)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(lines))
	}
	if strings.Count(out, "•") != 3 {
		t.Errorf("expected 3 points:\n%s", out)
	}
	if !strings.Contains(out, "│") || !strings.Contains(out, "─") {
		t.Errorf("expected axes:\n%s", out)
	}
	if Portrait(nil, nil, 10, 10) != "" {
		t.Error("empty input should render nothing")
	}
}

func TestWrap(t *testing.T) {
	got := Wrap([]float64{-0.5, 7})
	if math.Abs(got[0]-(2*math.Pi-0.5)) > 1e-12 || math.Abs(got[1]-(7-2*math.Pi)) > 1e-12 {
		t.Errorf("unexpected wrap %v", got)
	}
}
