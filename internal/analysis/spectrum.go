package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the DFT of
// data with its mean removed.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	spec := fft.FFTReal(centred)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantPeriod finds the strongest non-constant frequency of samples
// taken every sampleDt and returns its period.
func DominantPeriod(samples []float64, sampleDt float64) (float64, error) {
	if len(samples) < 4 || sampleDt <= 0 {
		return 0, ErrTooShort
	}
	ps := PowerSpectrum(samples)

	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	return float64(len(samples)) * sampleDt / float64(best), nil
}

// UniformPrefix returns how many leading samples of times share the
// spacing of the first pair, and that spacing. Stored times carry six
// decimals, so spacings within 1e-5 count as equal.
func UniformPrefix(times []float64) (int, float64) {
	if len(times) < 2 {
		return len(times), 0
	}
	dt := times[1] - times[0]
	tol := 1e-5 + 1e-9*math.Abs(dt)
	n := 2
	for n < len(times) && math.Abs(times[n]-times[n-1]-dt) <= tol {
		n++
	}
	return n, dt
}
