package spectrum

import (
	"math"
	"testing"
)

func TestMaxIndex(t *testing.T) {
	mag := []float64{9, 1, 5, 5, 2}

	k, v := MaxIndex(mag, 1, len(mag))
	if k != 2 || v != 5 {
		t.Fatalf("MaxIndex = (%d, %v), want (2, 5)", k, v)
	}

	if k, _ := MaxIndex(mag, 3, 3); k != -1 {
		t.Fatalf("empty range index = %d, want -1", k)
	}
}

func TestParabolicOffsetExactVertex(t *testing.T) {
	// y = -(x - 0.3)^2 sampled at x = -1, 0, 1.
	f := func(x float64) float64 { return -(x - 0.3) * (x - 0.3) }

	p := ParabolicOffset(f(-1), f(0), f(1))
	if math.Abs(p-0.3) > 1e-9 {
		t.Fatalf("offset = %v, want 0.3", p)
	}
}

func TestParabolicOffsetSymmetric(t *testing.T) {
	if p := ParabolicOffset(0.5, 1, 0.5); math.Abs(p) > 1e-15 {
		t.Fatalf("symmetric offset = %v, want 0", p)
	}
}

func TestFindPeakEdges(t *testing.T) {
	mag := []float64{0, 1, 2, 3}

	p, ok := FindPeak(mag, 1, len(mag))
	if !ok {
		t.Fatal("expected a peak")
	}
	if p.Bin != 3 || p.Offset != 0 {
		t.Fatalf("edge peak = %+v, want bin 3 offset 0", p)
	}

	if _, ok := FindPeak(mag, 2, 2); ok {
		t.Fatal("expected no peak for empty range")
	}
}

func TestFindPeakRefines(t *testing.T) {
	mag := []float64{0, 0.2, 1, 0.6, 0}

	p, ok := FindPeak(mag, 1, len(mag))
	if !ok {
		t.Fatal("expected a peak")
	}
	if p.Bin != 2 {
		t.Fatalf("bin = %d, want 2", p.Bin)
	}
	if p.Offset <= 0 || p.Offset >= 0.5 {
		t.Fatalf("offset = %v, want in (0, 0.5)", p.Offset)
	}
	if math.Abs(p.Position()-(2+p.Offset)) > 1e-15 {
		t.Fatalf("Position = %v", p.Position())
	}
}
