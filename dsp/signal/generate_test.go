package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

func TestSineLength(t *testing.T) {
	g := NewGenerator([]core.FrameOption{core.WithSampleRate(48000)})
	s, err := g.Sine(1000, 1, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
}

func TestHarmonicDropsAboveNyquist(t *testing.T) {
	g := NewGenerator([]core.FrameOption{core.WithSampleRate(1000)})
	pure, err := g.Sine(200, 1, 100)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	// Second partial at 400 Hz is kept, third at 600 Hz is above Nyquist.
	h, err := g.Harmonic(200, []float64{1, 0, 1}, 100)
	if err != nil {
		t.Fatalf("Harmonic() error = %v", err)
	}
	for i := range h {
		if math.Abs(h[i]-pure[i]) > 1e-12 {
			t.Fatalf("sample %d: harmonic %v != pure %v", i, h[i], pure[i])
		}
	}
}

func TestToneValidation(t *testing.T) {
	g := NewGenerator(nil)
	if _, err := g.Sine(440, 1, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
	if _, err := g.Sine(-1, 1, 16); err == nil {
		t.Fatal("expected error for negative frequency")
	}
	if _, err := g.Harmonic(440, nil, 16); err == nil {
		t.Fatal("expected error for missing partials")
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := NewGenerator(nil, WithSeed(42))
	g2 := NewGenerator(nil, WithSeed(42))

	n1, err := g1.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	n2, err := g2.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
	}
}

func TestHops(t *testing.T) {
	g := NewGenerator([]core.FrameOption{core.WithHopSize(4), core.WithFrameSize(8)})
	hops := g.Hops(make([]float64, 10))
	if len(hops) != 2 {
		t.Fatalf("hops = %d, want 2", len(hops))
	}
	for _, h := range hops {
		if len(h) != 4 {
			t.Fatalf("hop length = %d, want 4", len(h))
		}
	}
}

func TestMix(t *testing.T) {
	dst := []float64{1, 1, 1}
	Mix(dst, []float64{1, 2})
	if dst[0] != 2 || dst[1] != 3 || dst[2] != 1 {
		t.Fatalf("Mix = %v", dst)
	}
}
