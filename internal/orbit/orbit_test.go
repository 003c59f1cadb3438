package orbit_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/orbit"
)

const tol = 1e-9

var origin = r3.Vec{}

var _ = Describe("Elements", func() {
	DescribeTable("Validate",
		func(el orbit.Elements, want error) {
			err := el.Validate()
			if want == nil {
				Expect(err).NotTo(HaveOccurred())
				return
			}
			Expect(err).To(MatchError(want))
		},
		Entry("circle", orbit.Elements{SemiMajorAxis: 10}, nil),
		Entry("ellipse", orbit.Elements{SemiMajorAxis: 70, Eccentricity: 0.7, Inclination: -0.2}, nil),
		Entry("parabolic", orbit.Elements{SemiMajorAxis: 10, Eccentricity: 1}, orbit.ErrEccentricity),
		Entry("negative e", orbit.Elements{SemiMajorAxis: 10, Eccentricity: -0.1}, orbit.ErrEccentricity),
		Entry("zero a", orbit.Elements{SemiMajorAxis: 0}, orbit.ErrSemiMajorAxis),
		Entry("negative a", orbit.Elements{SemiMajorAxis: -5}, orbit.ErrSemiMajorAxis),
		Entry("NaN inclination", orbit.Elements{SemiMajorAxis: 5, Inclination: math.NaN()}, orbit.ErrNotFinite),
		Entry("Inf a", orbit.Elements{SemiMajorAxis: math.Inf(1)}, orbit.ErrNotFinite),
	)

	It("reports periapsis and apoapsis", func() {
		el := orbit.Elements{SemiMajorAxis: 40, Eccentricity: 0.4}
		Expect(el.Periapsis()).To(BeNumerically("~", 24, tol))
		Expect(el.Apoapsis()).To(BeNumerically("~", 56, tol))
	})
})

var _ = Describe("Solve", func() {
	It("keeps circular orbits at constant radius", func() {
		el := orbit.Elements{SemiMajorAxis: 40}
		for phase := 0.0; phase < 2*math.Pi; phase += 0.05 {
			Expect(r3.Norm(orbit.Solve(phase, el, origin))).To(BeNumerically("~", 40, tol))
		}
	})

	DescribeTable("sweeps between periapsis and apoapsis",
		func(a, e float64) {
			el := orbit.Elements{SemiMajorAxis: a, Eccentricity: e, Inclination: 0.3}
			lo, hi := math.Inf(1), math.Inf(-1)
			for i := 0; float64(i)*1e-3 < 2*math.Pi; i++ {
				d := r3.Norm(orbit.Solve(float64(i)*1e-3, el, origin))
				lo = math.Min(lo, d)
				hi = math.Max(hi, d)
			}
			Expect(lo).To(BeNumerically("~", a*(1-e), 1e-6*a))
			Expect(hi).To(BeNumerically("~", a*(1+e), 1e-4*a))
		},
		Entry("e=0", 40.0, 0.0),
		Entry("e=0.4", 40.0, 0.4),
		Entry("e=0.7", 70.0, 0.7),
		Entry("e=0.95", 10.0, 0.95),
	)

	It("preserves radius under inclination", func() {
		for _, inc := range []float64{-1.2, -0.2, 0.02, 0.1, math.Pi / 2, 3} {
			el := orbit.Elements{SemiMajorAxis: 50, Eccentricity: 0.5, Inclination: inc}
			for phase := 0.0; phase < 2*math.Pi; phase += 0.3 {
				Expect(r3.Norm(orbit.Solve(phase, el, origin))).
					To(BeNumerically("~", orbit.Radius(phase, el), 1e-9))
			}
		}
	})

	It("tilts the orbit out of the XZ plane", func() {
		el := orbit.Elements{SemiMajorAxis: 50, Inclination: 0.1}
		p := orbit.Solve(math.Pi/2, el, origin)
		Expect(math.Abs(p.Y)).To(BeNumerically("~", 50*math.Sin(0.1), 1e-9))
		Expect(p.X).To(BeNumerically("~", 0, 1e-9))
	})

	It("translates by the focus", func() {
		el := orbit.Elements{SemiMajorAxis: 40, Eccentricity: 0.4, Inclination: 0.02}
		focus := r3.Vec{X: -100, Y: 3, Z: 7}
		at := orbit.Solve(1.3, el, focus)
		rel := orbit.Solve(1.3, el, origin)
		Expect(r3.Sub(at, focus).X).To(BeNumerically("~", rel.X, tol))
		Expect(r3.Sub(at, focus).Y).To(BeNumerically("~", rel.Y, tol))
		Expect(r3.Sub(at, focus).Z).To(BeNumerically("~", rel.Z, tol))
	})

	It("starts at periapsis on the +X axis", func() {
		el := orbit.Elements{SemiMajorAxis: 40, Eccentricity: 0.4}
		p := orbit.Solve(0, el, origin)
		Expect(p.X).To(BeNumerically("~", 40*(1-0.4*0.4)/1.4, tol))
		Expect(p.Y).To(BeNumerically("~", 0, tol))
		Expect(p.Z).To(BeNumerically("~", 0, tol))
	})

	It("is deterministic", func() {
		el := orbit.Elements{SemiMajorAxis: 60, Eccentricity: 0.6, Inclination: -0.2}
		Expect(orbit.Solve(2.5, el, origin)).To(Equal(orbit.Solve(2.5, el, origin)))
	})
})

var _ = Describe("VelocityModel", func() {
	m := orbit.DefaultVelocityModel()

	It("follows sqrt(k·a/d)/d", func() {
		rate, clamped := m.AngularRate(40, 24)
		Expect(clamped).To(BeFalse())
		Expect(rate).To(BeNumerically("~", math.Sqrt(0.2*40/24)/24, tol))
	})

	It("is strictly decreasing in distance", func() {
		prev := math.Inf(1)
		for d := 0.5; d < 200; d *= 1.1 {
			rate, _ := m.AngularRate(50, d)
			Expect(rate).To(BeNumerically(">", 0))
			Expect(rate).To(BeNumerically("<", prev))
			prev = rate
		}
	})

	It("clamps degenerate distances to the floor", func() {
		floor := orbit.VelocityModel{K: 0.2, MinDistance: 0.01}
		want, _ := floor.AngularRate(40, 0.01)
		for _, d := range []float64{0, -1, 1e-9, math.NaN()} {
			rate, clamped := floor.AngularRate(40, d)
			Expect(clamped).To(BeTrue())
			Expect(rate).To(Equal(want))
		}
	})

	It("falls back to the default floor when unset", func() {
		rate, clamped := orbit.VelocityModel{K: 0.2}.AngularRate(40, 0)
		Expect(clamped).To(BeTrue())
		Expect(math.IsInf(rate, 0)).To(BeFalse())
	})

	DescribeTable("Validate",
		func(vm orbit.VelocityModel, ok bool) {
			if ok {
				Expect(vm.Validate()).To(Succeed())
			} else {
				Expect(vm.Validate()).NotTo(Succeed())
			}
		},
		Entry("default", orbit.DefaultVelocityModel(), true),
		Entry("zero k", orbit.VelocityModel{K: 0}, false),
		Entry("negative k", orbit.VelocityModel{K: -0.2}, false),
		Entry("NaN k", orbit.VelocityModel{K: math.NaN()}, false),
		Entry("negative floor", orbit.VelocityModel{K: 0.2, MinDistance: -1}, false),
	)
})

var _ = Describe("SamplePath", func() {
	el := orbit.Elements{SemiMajorAxis: 50, Eccentricity: 0.5, Inclination: 0.1}
	focus := r3.Vec{X: 100}

	It("samples one revolution", func() {
		pts, err := orbit.SamplePath(el, focus, orbit.DefaultPathStep)
		Expect(err).NotTo(HaveOccurred())
		Expect(pts).To(HaveLen(63))
		Expect(pts[0]).To(Equal(orbit.Solve(0, el, focus)))
		Expect(pts[62]).To(Equal(orbit.Solve(6.2, el, focus)))
	})

	It("is idempotent", func() {
		a, err := orbit.SamplePath(el, focus, 0.05)
		Expect(err).NotTo(HaveOccurred())
		b, err := orbit.SamplePath(el, focus, 0.05)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("rejects bad steps", func() {
		for _, step := range []float64{0, -0.1, math.NaN(), math.Inf(1), 1e-13, orbit.MinPathStep / 2} {
			_, err := orbit.SamplePath(el, focus, step)
			Expect(err).To(MatchError(orbit.ErrInvalidStep))
		}
	})

	It("accepts the smallest bounded step", func() {
		pts, err := orbit.SamplePath(el, focus, orbit.MinPathStep)
		Expect(err).NotTo(HaveOccurred())
		Expect(len(pts)).To(BeNumerically("~", orbit.MaxPathPoints, 1))
	})

	It("rejects open orbits", func() {
		_, err := orbit.SamplePath(orbit.Elements{SemiMajorAxis: 5, Eccentricity: 1}, focus, 0.1)
		Expect(err).To(MatchError(orbit.ErrEccentricity))
	})
})
