package buffer

import "testing"

func TestNewNegativeLength(t *testing.T) {
	if b := New(-3); b.Len() != 0 {
		t.Fatalf("Len = %d, want 0", b.Len())
	}
}

func TestLoadPaddedShort(t *testing.T) {
	b := New(4)
	copy(b.Samples(), []float64{9, 9, 9, 9})

	n := b.LoadPadded([]float64{1, 2})
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
	want := []float64{1, 2, 0, 0}
	for i, v := range b.Samples() {
		if v != want[i] {
			t.Fatalf("samples = %v, want %v", b.Samples(), want)
		}
	}
}

func TestLoadPaddedTruncates(t *testing.T) {
	b := New(2)
	if n := b.LoadPadded([]float64{1, 2, 3}); n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
	if b.Samples()[1] != 2 {
		t.Fatalf("samples = %v", b.Samples())
	}
}

func TestLoadPaddedFloat32(t *testing.T) {
	b := New(3)
	n := b.LoadPaddedFloat32([]float32{0.5})
	if n != 1 || b.Samples()[0] != 0.5 || b.Samples()[2] != 0 {
		t.Fatalf("n=%d samples=%v", n, b.Samples())
	}
	b.Zero()
	if b.Samples()[0] != 0 {
		t.Fatal("Zero did not clear samples")
	}
}
