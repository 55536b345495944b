package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X_k| for the non-negative frequencies of data with
// its mean removed. Any length works.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
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

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency is the frequency in Hz of the strongest non-DC bin for
// samples taken every dt seconds. It returns 0 when there is nothing to
// find.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}

	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return 0
	}
	return float64(peak) / (float64(len(data)) * dt)
}

// WrapCount counts consecutive samples whose angles differ by more than π,
// the signature of the angle crossing its branch cut.
func WrapCount(angles []float64) int {
	n := 0
	for i := 1; i < len(angles); i++ {
		if math.Abs(angles[i]-angles[i-1]) > math.Pi {
			n++
		}
	}
	return n
}
