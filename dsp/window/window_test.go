package window

import (
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	types := []Type{
		TypeRectangular,
		TypeHann,
		TypeHamming,
		TypeBlackman,
		TypeBlackmanHarris4Term,
	}

	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
				if v < -1e-12 || v > 1+1e-12 {
					t.Fatalf("coefficient[%d]=%v outside [0,1]", i, v)
				}
			}

			for i := 0; i < len(w)/2; i++ {
				if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
					t.Fatalf("window not symmetric at %d: %v vs %v", i, w[i], w[len(w)-1-i])
				}
			}
		})
	}
}

func TestHannEndpointsAndPeak(t *testing.T) {
	w, err := Hann(4097)
	if err != nil {
		t.Fatalf("Hann error: %v", err)
	}
	if w[0] != 0 || math.Abs(w[4096]) > 1e-12 {
		t.Fatalf("endpoints = %v, %v; want 0", w[0], w[4096])
	}
	if math.Abs(w[2048]-1) > 1e-12 {
		t.Fatalf("centre = %v, want 1", w[2048])
	}
}

func TestPeriodicHann(t *testing.T) {
	w := Generate(TypeHann, 4, WithPeriodic())
	want := []float64{0, 0.5, 1, 0.5}
	for i := range w {
		if math.Abs(w[i]-want[i]) > 1e-12 {
			t.Fatalf("w[%d]=%v, want %v", i, w[i], want[i])
		}
	}
}

func TestInvalidLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("expected nil for zero length, got %v", w)
	}
	if _, err := Hann(-1); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestCoherentGain(t *testing.T) {
	w := Generate(TypeHann, 1024, WithPeriodic())
	g, err := CoherentGain(w)
	if err != nil {
		t.Fatalf("CoherentGain error: %v", err)
	}
	if math.Abs(g-0.5) > 1e-9 {
		t.Fatalf("Hann coherent gain = %v, want 0.5", g)
	}
	if _, err := CoherentGain(nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}
}

func TestApplyCoefficientsInPlace(t *testing.T) {
	buf := []float64{2, 2, 2}
	if err := ApplyCoefficientsInPlace(buf, []float64{0, 0.5, 1}); err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if buf[0] != 0 || buf[1] != 1 || buf[2] != 2 {
		t.Fatalf("unexpected result: %v", buf)
	}
	if err := ApplyCoefficientsInPlace(buf, []float64{1}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestParseType(t *testing.T) {
	for typ, name := range names {
		got, err := ParseType(name)
		if err != nil || got != typ {
			t.Fatalf("ParseType(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseType("kaiser"); err == nil {
		t.Fatal("expected error for unsupported window")
	}
}
