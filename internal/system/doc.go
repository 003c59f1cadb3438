// Package system holds the runtime state of an orrery and advances it.
//
// A [System] is an arena of [Body] records addressed by [BodyID]. Stars are
// placed once at construction and never move; planets carry an [Orbit]
// whose phase is advanced by [System.Step] using the velocity heuristic
// from package orbit.
//
// # Example
//
//	sys, err := system.New(spec, logger)
//	if err != nil {
//		return err // *ConfigurationError
//	}
//	for frame := 0; frame < 600; frame++ {
//		sys.Step(1)
//		render(sys.Snapshot())
//	}
//
// # Thread Safety
//
// A System is NOT safe for concurrent use. Step may fan planets out over
// several goroutines (see [System.SetWorkers]) because planets never read
// each other and the star table is immutable, but callers must not call
// Step concurrently or read bodies while a step is running. Hand
// [Snapshot] values to other goroutines instead.
package system
