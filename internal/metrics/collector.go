package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/orrery/internal/system"
)

// Collector exports simulation counters. It implements system.Observer.
type Collector struct {
	ticks    prometheus.Counter
	clamps   *prometheus.CounterVec
	duration prometheus.Histogram
	bodies   *prometheus.GaugeVec
	clients  prometheus.Gauge
}

func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_ticks_total",
			Help: "Completed simulation steps.",
		}),
		clamps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orrery_clamp_events_total",
			Help: "Steps where a planet's focus distance fell below the floor.",
		}, []string{"body"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orrery_tick_duration_seconds",
			Help:    "Wall time spent advancing all planets in one step.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		bodies: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "orrery_bodies",
			Help: "Bodies in the simulated system.",
		}, []string{"kind"}),
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_stream_clients",
			Help: "Connected stream clients.",
		}),
	}

	for _, col := range []prometheus.Collector{c.ticks, c.clamps, c.duration, c.bodies, c.clients} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Track records the body counts of sys and subscribes to its steps.
func (c *Collector) Track(sys *system.System) {
	c.bodies.WithLabelValues(system.KindStar.String()).Set(float64(sys.NumStars()))
	c.bodies.WithLabelValues(system.KindPlanet.String()).Set(float64(sys.NumPlanets()))
	sys.AddObserver(c)
}

func (c *Collector) OnStep(r system.StepReport) {
	c.ticks.Inc()
	c.duration.Observe(r.Duration.Seconds())
	for _, ev := range r.Clamped {
		c.clamps.WithLabelValues(ev.Body).Inc()
	}
}

func (c *Collector) ClientConnected()    { c.clients.Inc() }
func (c *Collector) ClientDisconnected() { c.clients.Dec() }

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
