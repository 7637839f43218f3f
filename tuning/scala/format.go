package scala

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-tuner/tuning/scale"
)

// DefaultDescription is written for definitions without a description.
const DefaultDescription = "Untitled scale"

// Format renders def as .scl text: the description, the step count
// (including the unison), every non-zero step as "%.6fc" and the closing
// period "2/1".
func Format(def *scale.Definition) string {
	var b strings.Builder
	_ = Write(&b, def)
	return b.String()
}

// Write writes def to w in .scl format.
func Write(w io.Writer, def *scale.Definition) error {
	desc := DefaultDescription
	var steps []float64
	if def != nil {
		if d := strings.Join(strings.Fields(def.Description), " "); d != "" {
			desc = d
		}
		steps = scale.Normalize(def.Steps)
	} else {
		steps = scale.Normalize(nil)
	}

	var b strings.Builder
	b.WriteString(desc)
	b.WriteByte('\n')
	b.WriteString(strconv.Itoa(len(steps)))
	b.WriteByte('\n')
	for _, s := range steps[1:] {
		fmt.Fprintf(&b, "%.6fc\n", s)
	}
	b.WriteString("2/1\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("scala: write: %w", err)
	}
	return nil
}
