package core

import "math"

const defaultEpsilon = 1e-12

// CentsPerOctave is the width of one period in cents.
const CentsPerOctave = 1200.0

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampInt limits value to the inclusive range [min, max].
func ClampInt(value, min, max int) int {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// RatioToCents converts a frequency ratio to cents: 1200*log2(ratio).
func RatioToCents(ratio float64) float64 {
	return CentsPerOctave * math.Log2(ratio)
}

// CentsToRatio converts cents to a frequency ratio.
func CentsToRatio(cents float64) float64 {
	return math.Exp2(cents / CentsPerOctave)
}

// WrapCents folds cents into the half-open period [0, 1200).
func WrapCents(cents float64) float64 {
	w := math.Mod(cents, CentsPerOctave)
	if w < 0 {
		w += CentsPerOctave
	}

	// -tiny + 1200 rounds to 1200 in float64.
	if w >= CentsPerOctave {
		w -= CentsPerOctave
	}

	return w
}

// CircularDelta returns the signed distance from anchor to cents on a
// 1200-cent circle. The result lies in [-600, 600].
func CircularDelta(cents, anchor float64) float64 {
	d := cents - anchor
	if math.Abs(d) > CentsPerOctave/2 {
		alt := d - CentsPerOctave
		if d < 0 {
			alt = d + CentsPerOctave
		}

		if math.Abs(alt) < math.Abs(d) {
			d = alt
		}
	}

	return d
}
