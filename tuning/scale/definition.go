package scale

import (
	"slices"
	"strings"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

const (
	// Epsilon is the tolerance, in cents, under which two steps are
	// considered the same.
	Epsilon = 1e-6

	// Octave is the period every scale repeats at.
	Octave = core.CentsPerOctave

	// NumRoots is the number of selectable 12-TET roots.
	NumRoots = 12
	// DefaultRoot is A.
	DefaultRoot = 9
)

// Definition is a named scale. Steps are offsets from the unison in cents,
// ascending, within [0, 1200), deduplicated and always starting at 0.
type Definition struct {
	Description string
	Steps       []float64
}

// NewDefinition builds a Definition with normalised steps. The input slice is
// not retained.
func NewDefinition(description string, steps []float64) *Definition {
	return &Definition{
		Description: strings.TrimSpace(description),
		Steps:       Normalize(steps),
	}
}

// Count returns the number of steps including the unison.
func (d *Definition) Count() int {
	if d == nil {
		return 0
	}
	return len(d.Steps)
}

// Clone returns a deep copy.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	return &Definition{
		Description: d.Description,
		Steps:       slices.Clone(d.Steps),
	}
}

// Equal reports whether both definitions carry the same description and the
// same steps within eps cents.
func (d *Definition) Equal(other *Definition, eps float64) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.Description != other.Description || len(d.Steps) != len(other.Steps) {
		return false
	}
	for i := range d.Steps {
		if !core.NearlyEqual(d.Steps[i], other.Steps[i], eps) {
			return false
		}
	}
	return true
}

// Normalize returns the canonical step list for steps: non-finite values and
// values outside [0, 1200) are dropped, 0 is added, the result is sorted and
// entries closer than Epsilon are merged. Values within Epsilon below the
// octave fold onto the unison.
func Normalize(steps []float64) []float64 {
	out := make([]float64, 0, len(steps)+1)
	out = append(out, 0)
	for _, s := range steps {
		if !core.IsFinite(s) || s < 0 || s >= Octave {
			continue
		}
		if Octave-s < Epsilon {
			continue
		}
		out = append(out, s)
	}

	slices.Sort(out)

	n := 1
	for _, s := range out[1:] {
		if s-out[n-1] < Epsilon {
			continue
		}
		out[n] = s
		n++
	}
	out = out[:n]
	// Entries below Epsilon were merged into the unison above; pin it.
	out[0] = 0

	return out
}

// Anchor re-bases steps onto the 12-TET note root: every step is shifted
// down by root*100 cents and wrapped into [0, 1200), then the list is
// normalised. The first element of the result is always exactly 0.
func Anchor(steps []float64, root int) []float64 {
	root = ((root % NumRoots) + NumRoots) % NumRoots
	shift := float64(root) * 100

	shifted := make([]float64, 0, len(steps))
	for _, s := range steps {
		if !core.IsFinite(s) {
			continue
		}
		shifted = append(shifted, core.WrapCents(s-shift))
	}

	return Normalize(shifted)
}

// ValidRoot reports whether root is a selectable root index.
func ValidRoot(root int) bool {
	return root >= 0 && root < NumRoots
}
