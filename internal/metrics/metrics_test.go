package metrics

import (
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/system"
)

func family(t *testing.T, mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	t.Helper()
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric family %s not gathered", name)
	return nil
}

func TestCollectorCountsTicks(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("new collector failed: %v", err)
	}

	sys, err := config.GetPreset("binary").Build(nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	c.Track(sys)

	for i := 0; i < 7; i++ {
		sys.Step(1)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	if got := family(t, mfs, "orrery_ticks_total").GetMetric()[0].GetCounter().GetValue(); got != 7 {
		t.Errorf("expected 7 ticks, got %f", got)
	}
	if got := family(t, mfs, "orrery_tick_duration_seconds").GetMetric()[0].GetHistogram().GetSampleCount(); got != 7 {
		t.Errorf("expected 7 duration samples, got %d", got)
	}

	kinds := map[string]float64{}
	for _, m := range family(t, mfs, "orrery_bodies").GetMetric() {
		kinds[m.GetLabel()[0].GetValue()] = m.GetGauge().GetValue()
	}
	if kinds["star"] != 2 || kinds["planet"] != 8 {
		t.Errorf("unexpected body gauges %v", kinds)
	}
}

func TestCollectorCountsClamps(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("new collector failed: %v", err)
	}

	sys, err := system.New(system.Spec{
		Stars: []system.StarSpec{{Name: "Sun", Scale: 1}},
		Planets: []system.PlanetSpec{{
			Name:     "Close",
			Scale:    1,
			Elements: orbit.Elements{SemiMajorAxis: 10, Eccentricity: 0},
		}},
		Velocity: orbit.VelocityModel{K: orbit.DefaultK, MinDistance: 50},
	}, nil)
	if err != nil {
		t.Fatalf("new system failed: %v", err)
	}
	c.Track(sys)
	sys.Step(1)
	sys.Step(1)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	m := family(t, mfs, "orrery_clamp_events_total").GetMetric()[0]
	if m.GetLabel()[0].GetValue() != "Close" || m.GetCounter().GetValue() != 2 {
		t.Errorf("unexpected clamp metric %v", m)
	}
}

func TestCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewCollector(reg); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := NewCollector(reg); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("new collector failed: %v", err)
	}
	c.ClientConnected()
	c.ClientConnected()
	c.ClientDisconnected()

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), "orrery_stream_clients 1") {
		t.Errorf("expected client gauge in output:\n%s", body)
	}
}

func TestApsides(t *testing.T) {
	sys, err := config.GetPreset("single").Build(nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	a := NewApsides()
	a.Observe(sys.Snapshot())
	for i := 0; i < 2000; i++ {
		sys.Step(1)
		a.Observe(sys.Snapshot())
	}

	ranges := a.Ranges()
	if len(ranges) != 4 {
		t.Fatalf("expected 4 ranges, got %d", len(ranges))
	}
	blue := ranges[0]
	if blue.Name != "Blue" {
		t.Errorf("expected Blue first, got %s", blue.Name)
	}
	el := orbit.Elements{SemiMajorAxis: 40, Eccentricity: 0.4}
	if blue.Min < el.Periapsis()-1e-9 || blue.Max > el.Apoapsis()+1e-9 {
		t.Errorf("range [%f, %f] escapes [%f, %f]", blue.Min, blue.Max, el.Periapsis(), el.Apoapsis())
	}
	if !(blue.Mean > blue.Min && blue.Mean < blue.Max) || math.IsNaN(blue.Mean) {
		t.Errorf("mean %f outside range", blue.Mean)
	}

	a.Reset()
	if len(a.Ranges()) != 0 {
		t.Error("expected empty ranges after reset")
	}
}
