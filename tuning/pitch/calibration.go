package pitch

import (
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

const (
	DefaultA4 = 440.0
	MinA4     = 200.0
	MaxA4     = 1000.0
)

// A4Presets are the references stepped through by NextA4Preset.
var A4Presets = []float64{438, 440, 442}

// ClampA4 limits hz to [MinA4, MaxA4] and reports whether it changed.
func ClampA4(hz float64) (float64, bool) {
	c := core.Clamp(hz, MinA4, MaxA4)
	return c, c != hz
}

// ParseCalibration parses a user-entered A4 reference such as "442",
// "441,5" or "440 Hz". Values outside [200, 1000] are clamped and clamped
// reports it. Text that is not a positive finite number yields an
// *InputError.
func ParseCalibration(text string) (hz float64, clamped bool, err error) {
	s := strings.TrimSpace(text)
	if len(s) >= 2 && strings.EqualFold(s[len(s)-2:], "hz") {
		s = strings.TrimSpace(s[:len(s)-2])
	}
	s = strings.ReplaceAll(s, ",", ".")

	if s == "" {
		return 0, false, &InputError{Input: text, Reason: "empty"}
	}

	v, perr := strconv.ParseFloat(s, 64)
	switch {
	case perr != nil:
		return 0, false, &InputError{Input: text, Reason: "not a number"}
	case math.IsNaN(v) || math.IsInf(v, 0):
		return 0, false, &InputError{Input: text, Reason: "not finite"}
	case v <= 0:
		return 0, false, &InputError{Input: text, Reason: "must be positive"}
	}

	hz, clamped = ClampA4(v)
	return hz, clamped, nil
}

// NextA4Preset returns the preset following current. A reference that is
// not a preset moves to the first preset above it, wrapping to the first.
func NextA4Preset(current float64) float64 {
	for i, p := range A4Presets {
		if core.NearlyEqual(current, p, 1e-9) {
			return A4Presets[(i+1)%len(A4Presets)]
		}
	}
	for _, p := range A4Presets {
		if p > current {
			return p
		}
	}
	return A4Presets[0]
}
