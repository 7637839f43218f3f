package spectrum

import "math"

const parabolicEpsilon = 1e-12

// Peak is a spectral maximum refined to sub-bin accuracy.
type Peak struct {
	// Bin is the coarse maximum.
	Bin int
	// Offset is the parabolic correction in bins, nominally within [-0.5, 0.5].
	Offset float64
	// Magnitude is the magnitude at Bin.
	Magnitude float64
}

// Position returns the refined fractional bin index.
func (p Peak) Position() float64 {
	return float64(p.Bin) + p.Offset
}

// MaxIndex returns the index of the largest value in mag[lo:hi] and that
// value. The first maximum wins on ties. It returns -1 for an empty range.
func MaxIndex(mag []float64, lo, hi int) (int, float64) {
	if lo < 0 {
		lo = 0
	}

	if hi > len(mag) {
		hi = len(mag)
	}

	best := -1
	bestVal := math.Inf(-1)

	for i := lo; i < hi; i++ {
		if mag[i] > bestVal {
			bestVal = mag[i]
			best = i
		}
	}

	if best < 0 {
		return -1, 0
	}

	return best, bestVal
}

// ParabolicOffset fits a parabola through three equally spaced magnitudes
// (left, centre, right) and returns the vertex offset relative to the centre:
//
//	p = 0.5*(alpha-gamma) / (alpha - 2*beta + gamma + eps)
func ParabolicOffset(alpha, beta, gamma float64) float64 {
	return 0.5 * (alpha - gamma) / (alpha - 2*beta + gamma + parabolicEpsilon)
}

// FindPeak locates the largest magnitude in mag[lo:hi] and refines it with
// [ParabolicOffset]. Neighbours outside mag leave the offset at zero. ok is
// false when the range is empty.
func FindPeak(mag []float64, lo, hi int) (Peak, bool) {
	k, v := MaxIndex(mag, lo, hi)
	if k < 0 {
		return Peak{}, false
	}

	p := Peak{Bin: k, Magnitude: v}
	if k > 0 && k+1 < len(mag) {
		off := ParabolicOffset(mag[k-1], mag[k], mag[k+1])
		if !math.IsNaN(off) && !math.IsInf(off, 0) {
			p.Offset = off
		}
	}

	return p, true
}
