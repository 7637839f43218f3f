package window

import (
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris4Term
)

var (
	hannCoeffs            = []float64{0.5, -0.5}
	hammingCoeffs         = []float64{0.54, -0.46}
	blackmanCoeffs        = []float64{0.42, -0.5, 0.08}
	blackmanHarris4Coeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
)

var names = map[Type]string{
	TypeRectangular:         "rectangular",
	TypeHann:                "hann",
	TypeHamming:             "hamming",
	TypeBlackman:            "blackman",
	TypeBlackmanHarris4Term: "blackman-harris",
}

// String returns the lower-case window name.
func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}

	return "unknown"
}

// ParseType resolves a window name as printed by [Type.String].
func ParseType(name string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for t, n := range names {
		if n == key {
			return t, nil
		}
	}

	return TypeRectangular, errUnknownType(name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic))
	}

	return out
}

// Hann returns Hann window coefficients.
func Hann(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeHann, size, opts...), validateLength(size)
}

// CoherentGain returns the mean coefficient value, the amplitude scaling a
// windowed sinusoid experiences at its bin centre.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	return vecmath.Sum(coeffs) / float64(len(coeffs)), nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

func evalWindow(t Type, x float64) float64 {
	switch t {
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeBlackmanHarris4Term:
		return cosineFromCoeffs(x, blackmanHarris4Coeffs)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
