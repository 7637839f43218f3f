package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-tuner/internal/testutil"
)

func TestAbsoluteA4(t *testing.T) {
	n, err := Absolute(440, 440)
	if err != nil {
		t.Fatalf("Absolute error: %v", err)
	}
	if n.Name() != "A4" {
		t.Fatalf("name = %q, want A4", n.Name())
	}
	testutil.RequireNear(t, "cents", n.Cents, 0, 1e-9)
	testutil.RequireNear(t, "reference", n.Reference, 440, 1e-9)
}

func TestAbsoluteNotes(t *testing.T) {
	tests := []struct {
		freq  float64
		a4    float64
		name  string
		midi  int
		cents float64
	}{
		{261.6256, 440, "C4", 60, 0},
		{82.4069, 440, "E2", 40, 0},
		{27.5, 440, "A0", 21, 0},
		{4186.009, 440, "C8", 108, 0},
		{442, 442, "A4", 69, 0},
		{440, 442, "A4", 69, 1200 * math.Log2(440.0/442)},
		{445, 440, "A4", 69, 1200 * math.Log2(445.0/440)},
		{Frequency(61, 440) * math.Exp2(-30.0/1200), 440, "C#4", 61, -30},
		{55 * math.Exp2(49.0/1200), 440, "A1", 33, 49},
	}

	for _, tt := range tests {
		n, err := Absolute(tt.freq, tt.a4)
		if err != nil {
			t.Fatalf("Absolute(%v) error: %v", tt.freq, err)
		}
		if n.Name() != tt.name || n.MIDI != tt.midi {
			t.Fatalf("Absolute(%v) = %s (%d), want %s (%d)", tt.freq, n.Name(), n.MIDI, tt.name, tt.midi)
		}
		testutil.RequireNear(t, tt.name, n.Cents, tt.cents, 0.01)
	}
}

func TestAbsoluteCentsRange(t *testing.T) {
	for f := 21.0; f < 5000; f *= 1.0013 {
		n, err := Absolute(f, 440)
		if err != nil {
			t.Fatalf("Absolute(%v) error: %v", f, err)
		}
		if n.Cents <= -50-1e-9 || n.Cents > 50+1e-9 {
			t.Fatalf("Absolute(%v) cents %v outside (-50, 50]", f, n.Cents)
		}
	}
}

func TestAbsoluteRejectsInvalid(t *testing.T) {
	for _, f := range []float64{0, -440, 20, 19.9, math.NaN(), math.Inf(1)} {
		if _, err := Absolute(f, 440); !errors.Is(err, ErrInvalidFrequency) {
			t.Fatalf("Absolute(%v) error = %v, want ErrInvalidFrequency", f, err)
		}
	}
	if _, err := Absolute(440, 0); !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("Absolute(440, 0) error = %v, want ErrInvalidReference", err)
	}
}

func TestPitchClass(t *testing.T) {
	tests := map[string]int{
		"C": 0, "c#": 1, "Db": 1, "E♭": 3, "F♯": 6, " a ": 9, "Bb": 10, "B": 11, "Cb": 11,
	}
	for name, want := range tests {
		got, err := PitchClass(name)
		if err != nil {
			t.Fatalf("PitchClass(%q) error: %v", name, err)
		}
		if got != want {
			t.Fatalf("PitchClass(%q) = %d, want %d", name, got, want)
		}
	}
	if _, err := PitchClass("H"); !errors.Is(err, ErrUnknownNote) {
		t.Fatalf("PitchClass(H) error = %v", err)
	}
}

func TestParseRoot(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: " 11 ", want: 11},
		{in: "E", want: 4},
		{in: "f#", want: 6},
		{in: "12", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "X", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseRoot(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownNote) {
				t.Fatalf("ParseRoot(%q) error = %v, want ErrUnknownNote", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseRoot(%q) = %d, %v, want %d", tc.in, got, err, tc.want)
		}
	}
}

func TestNoteNameWraps(t *testing.T) {
	if NoteName(9) != "A" || NoteName(21) != "A" || NoteName(-3) != "A" {
		t.Fatal("NoteName does not wrap pitch classes")
	}
}
