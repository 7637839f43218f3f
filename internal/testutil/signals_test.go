package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 0.5, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	if math.Abs(s[12]-0.5) > 1e-12 {
		t.Fatalf("quarter period = %v, want 0.5", s[12])
	}
}

func TestSineFloat32MatchesFloat64(t *testing.T) {
	a := DeterministicSine(440, 44100, 1, 64)
	b := SineFloat32(440, 44100, 1, 64)
	for i := range a {
		if math.Abs(a[i]-float64(b[i])) > 1e-6 {
			t.Fatalf("index %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestDeterministicNoiseRepeatable(t *testing.T) {
	a := DeterministicNoise(7, 1, 32)
	b := DeterministicNoise(7, 1, 32)
	RequireSliceNearlyEqual(t, a, b, 0)
	for _, v := range a {
		if v < -1 || v > 1 {
			t.Fatalf("noise sample %v outside amplitude", v)
		}
	}
}

func TestDC(t *testing.T) {
	RequireSliceNearlyEqual(t, DC(2, 3), []float64{2, 2, 2}, 0)
}
