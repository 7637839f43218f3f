package testutil

import (
	"math"
	"testing"
)

// RequireNear fails t if got differs from want by more than eps.
func RequireNear(t *testing.T, what string, got, want, eps float64) {
	t.Helper()
	if diff := math.Abs(got - want); diff > eps || math.IsNaN(got) {
		t.Fatalf("%s: got %v, want %v (diff %v > eps %v)", what, got, want, diff, eps)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d (%v), want %d (%v)", len(got), got, len(want), want)
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireStepList fails t unless steps is a normalised scale step list:
// non-empty, first element exactly 0, strictly ascending by more than 1e-6
// and contained in [0, 1200).
func RequireStepList(t *testing.T, steps []float64) {
	t.Helper()
	if len(steps) == 0 {
		t.Fatal("empty step list")
	}
	if steps[0] != 0 {
		t.Fatalf("first step = %v, want exactly 0 (%v)", steps[0], steps)
	}
	for i, s := range steps {
		if s < 0 || s >= 1200 {
			t.Fatalf("step %d = %v outside [0,1200)", i, s)
		}
		if i > 0 && s-steps[i-1] <= 1e-6 {
			t.Fatalf("steps not strictly ascending at %d: %v", i, steps)
		}
	}
}
