package level

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Epsilon is added to the RMS value before converting to dBFS.
const Epsilon = 1e-12

// Level summarises the amplitude of one block of samples.
type Level struct {
	RMS  float64
	Peak float64
	DBFS float64
}

// Measure computes RMS, peak and RMS level in dBFS for signal.
// An empty signal yields zero amplitude and the epsilon floor level.
func Measure(signal []float64) Level {
	rms := RMS(signal)

	peak := 0.0
	if len(signal) > 0 {
		peak = vecmath.MaxAbs(signal)
	}

	return Level{
		RMS:  rms,
		Peak: peak,
		DBFS: DBFS(rms),
	}
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	sumSq := vecmath.DotProduct(signal, signal)

	return math.Sqrt(sumSq / float64(len(signal)))
}

// DBFS converts an RMS amplitude to dBFS: 20*log10(rms + Epsilon).
func DBFS(rms float64) float64 {
	if rms < 0 || math.IsNaN(rms) {
		return math.NaN()
	}

	return 20 * log10(rms+Epsilon)
}

// Mean returns the mean (DC offset) of the signal.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	// Use Kahan summation for numerical stability.
	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// RemoveDC subtracts the mean from signal in place and returns the mean.
func RemoveDC(signal []float64) float64 {
	mean := Mean(signal)
	if mean == 0 {
		return 0
	}

	for i := range signal {
		signal[i] -= mean
	}

	return mean
}
