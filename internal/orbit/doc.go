// Package orbit provides the kinematic primitives of the orrery.
//
// Everything here is pure arithmetic over value types:
//
//   - [Elements]: the fixed parameters of one elliptical orbit
//   - [Solve]: maps a phase (true anomaly) to a point on the ellipse
//   - [VelocityModel]: the distance-dependent angular rate heuristic
//   - [SamplePath]: a closed polyline approximating a full revolution
//
// # Example
//
//	el := orbit.Elements{SemiMajorAxis: 40, Eccentricity: 0.4, Inclination: 0.02}
//	if err := el.Validate(); err != nil {
//		return err
//	}
//	p := orbit.Solve(0, el, r3.Vec{X: -100})
//	rate, _ := orbit.DefaultVelocityModel().AngularRate(el.SemiMajorAxis, 24)
//
// The velocity model is a visual approximation, not Keplerian dynamics.
// It speeds bodies up near periapsis without integrating any forces.
package orbit
