// Package analysis characterises recorded planet tracks.
//
//   - [Period]: time for the phase to advance one revolution
//   - [DominantPeriod]: strongest periodicity of a sampled series (FFT)
//   - [Eccentricity]: eccentricity implied by observed apsides
//   - [Portrait]: ASCII scatter of one series against another
//
// Periods come out in simulation time units, where one unit is one
// frame at dt = 1.
package analysis
