package pitch

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

const (
	// MinFrequency is the lowest frequency accepted, exclusive.
	MinFrequency = 20.0

	// A4MIDI is the MIDI note number of the calibration reference.
	A4MIDI = 69

	// centsCToA is the 12-TET distance from C up to A.
	centsCToA = 900
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var flatNames = map[string]int{"DB": 1, "EB": 3, "GB": 6, "AB": 8, "BB": 10, "CB": 11, "FB": 4}

// Note is a frequency expressed relative to the nearest 12-TET note.
type Note struct {
	// MIDI is the nearest note number (A4 = 69).
	MIDI int
	// PitchClass is MIDI mod 12 with C = 0.
	PitchClass int
	// Octave follows the MIDI convention MIDI/12 - 1.
	Octave int
	// Cents is the deviation from the note, in (-50, 50].
	Cents float64
	// Reference is the exact frequency of the note.
	Reference float64
}

// Name returns the note name with octave, e.g. "A4" or "C#3".
func (n Note) Name() string {
	return noteNames[n.PitchClass] + fmt.Sprint(n.Octave)
}

func (n Note) String() string {
	return fmt.Sprintf("%s %+.1f¢", n.Name(), n.Cents)
}

// Absolute maps freq to the nearest 12-TET note for the reference a4.
func Absolute(freq, a4 float64) (Note, error) {
	if err := validate(freq, a4); err != nil {
		return Note{}, err
	}

	midi := A4MIDI + 12*math.Log2(freq/a4)
	// Round half down so the deviation stays in (-50, 50].
	n := int(math.Ceil(midi - 0.5))
	ref := Frequency(n, a4)

	return Note{
		MIDI:       n,
		PitchClass: mod12(n),
		Octave:     floorDiv(n, 12) - 1,
		Cents:      core.RatioToCents(freq / ref),
		Reference:  ref,
	}, nil
}

// Frequency returns the 12-TET frequency of a MIDI note number.
func Frequency(midi int, a4 float64) float64 {
	return a4 * math.Exp2(float64(midi-A4MIDI)/12)
}

// NoteName returns the sharp spelling of a pitch class; values outside
// [0, 12) wrap.
func NoteName(pitchClass int) string {
	return noteNames[mod12(pitchClass)]
}

// PitchClass parses a note name such as "A", "c#" or "Bb".
func PitchClass(name string) (int, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "♯", "#")
	key = strings.ReplaceAll(key, "♭", "B")

	for i, n := range noteNames {
		if n == key {
			return i, nil
		}
	}
	if pc, ok := flatNames[key]; ok {
		return pc, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
}

// ParseRoot accepts a pitch class index in [0, 12) or a note name.
func ParseRoot(s string) (int, error) {
	if idx, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		if idx < 0 || idx > 11 {
			return 0, fmt.Errorf("%w: root index %d", ErrUnknownNote, idx)
		}
		return idx, nil
	}
	return PitchClass(s)
}

func validate(freq, a4 float64) error {
	if !core.IsFinite(freq) || freq <= MinFrequency {
		return fmt.Errorf("%w: %v", ErrInvalidFrequency, freq)
	}
	if !core.IsFinite(a4) || a4 <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidReference, a4)
	}
	return nil
}

func mod12(n int) int {
	return ((n % 12) + 12) % 12
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
