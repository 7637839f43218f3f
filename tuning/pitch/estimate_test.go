package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-tuner/internal/testutil"
	"github.com/cwbudde/algo-tuner/tuning/scale"
)

func TestEstimateWithoutScale(t *testing.T) {
	r, err := Estimate(440*math.Exp2(12.0/1200), 440, 9, nil)
	if err != nil {
		t.Fatalf("Estimate error: %v", err)
	}
	if r.HasStep || r.Label != "" {
		t.Fatalf("unexpected step match %+v", r)
	}
	if r.Note.Name() != "A4" {
		t.Fatalf("note = %s", r.Note.Name())
	}
	testutil.RequireNear(t, "absolute", r.AbsoluteCents, 12, 1e-9)
	testutil.RequireNear(t, "display", r.DisplayCents, r.AbsoluteCents, 0)
}

func TestEstimateWithScale(t *testing.T) {
	// Just major third above C, rooted on C: E4 is 13.7 cents sharp of 5/4.
	just := scale.Anchor([]float64{0, 1200 * math.Log2(5.0/4), 1200 * math.Log2(3.0/2)}, 0)
	r, err := Estimate(Frequency(64, 440), 440, 0, just)
	if err != nil {
		t.Fatalf("Estimate error: %v", err)
	}
	if !r.HasStep || r.Step.Index != 1 {
		t.Fatalf("step = %+v, want index 1", r.Step)
	}
	testutil.RequireNear(t, "absolute", r.AbsoluteCents, 0, 1e-9)
	testutil.RequireNear(t, "display", r.DisplayCents, 400-1200*math.Log2(5.0/4), 1e-9)
	if r.Label != "01 E -14¢" {
		t.Fatalf("label = %q", r.Label)
	}
}

func TestEstimateRejectsInvalidFrequency(t *testing.T) {
	if _, err := Estimate(math.NaN(), 440, 0, nil); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("error = %v", err)
	}
}
