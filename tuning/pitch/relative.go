package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

// Match is the nearest step of an anchored scale.
type Match struct {
	// Index into the anchored step list; 0 is the root.
	Index int
	// Step is the anchored step in cents above the root.
	Step float64
	// Cents is the signed deviation from Step, in [-600, 600].
	Cents float64
	// FromRoot is the input pitch in cents above the root, in [0, 1200).
	FromRoot float64
}

// CentsFromRoot folds freq onto one octave above the 12-TET note root,
// using a4 as reference. The result is in [0, 1200).
func CentsFromRoot(freq, a4 float64, root int) float64 {
	fromC := core.WrapCents(core.RatioToCents(freq/a4) + centsCToA)
	return core.WrapCents(fromC - float64(mod12(root))*100)
}

// Relative finds the step of anchored nearest to freq on the octave circle.
// Steps are scanned in order and a step at the same distance as the current
// best replaces it, so of two equidistant steps the later one wins. ok is
// false when anchored is empty or the inputs are invalid.
func Relative(freq, a4 float64, root int, anchored []float64) (Match, bool) {
	if len(anchored) == 0 || validate(freq, a4) != nil {
		return Match{}, false
	}

	fromRoot := CentsFromRoot(freq, a4, root)
	return nearestStep(fromRoot, anchored), true
}

func nearestStep(fromRoot float64, anchored []float64) Match {
	best := Match{Index: -1, FromRoot: fromRoot}
	for i, step := range anchored {
		d := core.CircularDelta(fromRoot, step)
		if best.Index < 0 || math.Abs(d) <= math.Abs(best.Cents) {
			best.Index = i
			best.Step = step
			best.Cents = d
		}
	}
	return best
}

// Label renders a step as "II NAME ±C¢": the zero-padded step index, the
// root-shifted name of the nearest 12-TET semitone and the step's rounded
// deviation from that semitone.
func Label(index int, stepCents float64, root int) string {
	semis := math.Round(stepCents / 100)
	dev := stepCents - semis*100
	if dev > 50 {
		dev -= 100
	} else if dev < -50 {
		dev += 100
	}

	name := NoteName(root + int(semis))
	return fmt.Sprintf("%02d %s %+d¢", index, name, int(math.Round(dev)))
}
