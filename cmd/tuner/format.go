package main

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-tuner/tuner"
)

const meterWidth = 21

// formatState renders one state as a single terminal line.
func formatState(st tuner.State) string {
	var b strings.Builder

	if !st.Voiced() {
		fmt.Fprintf(&b, "%-4s %9s  %s  %6.1f dBFS", st.NoteName, "--- Hz", meter(0, false), st.LevelDB)
		return b.String()
	}

	fmt.Fprintf(&b, "%-4s %6.2f Hz  %s %+5.1f¢  %6.1f dBFS",
		st.NoteName, st.Frequency, meter(st.DisplayCents, true), st.DisplayCents, st.LevelDB)
	if st.HasStep {
		fmt.Fprintf(&b, "  [%s]", st.StepLabel)
	}
	return b.String()
}

// meter draws cents in [-50, 50] as a needle on a fixed-width scale.
func meter(cents float64, voiced bool) string {
	cells := []rune(strings.Repeat("·", meterWidth))
	mid := meterWidth / 2
	cells[mid] = '|'
	if voiced {
		pos := mid + int(cents/50*float64(mid)+0.5*sign(cents))
		pos = min(max(pos, 0), meterWidth-1)
		cells[pos] = '#'
	}
	return "[" + string(cells) + "]"
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
