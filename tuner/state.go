package tuner

import (
	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/tuning/scale"
)

// NoSignalName is the note name published while no pitch is detected.
const NoSignalName = "--"

// maxDisplayCents bounds the published cents values.
const maxDisplayCents = 50.0

// State is one immutable snapshot of the tuner. Slices are shared between
// snapshots and must not be modified.
type State struct {
	// Frequency is the smoothed frequency in Hz; 0 when no signal.
	Frequency float64
	// NoteName is the nearest 12-TET note, e.g. "A4", or NoSignalName.
	NoteName string
	// AbsoluteCents is the smoothed 12-TET deviation, clamped to [-50, 50].
	AbsoluteCents float64
	// DisplayCents is the smoothed scale-relative deviation when a scale is
	// active, otherwise the absolute deviation; clamped to [-50, 50].
	DisplayCents float64
	// LevelDB is the input level of the last frame in dBFS.
	LevelDB float64

	Running bool

	// HasStep reports whether StepLabel is set.
	HasStep   bool
	StepLabel string

	// HasScale reports whether a scale is active. Without one,
	// ScaleDescription, Steps and Anchored are empty.
	HasScale         bool
	ScaleDescription string
	Steps            []float64
	Anchored         []float64

	Root int
	A4   float64
}

// Voiced reports whether the state carries a pitch reading.
func (s State) Voiced() bool {
	return s.Frequency > 0
}

// neutralState is the "no signal" state for the given context.
func neutralState(snap *scale.Snapshot, set *Settings, running bool, levelDB float64) State {
	st := State{
		NoteName: NoSignalName,
		LevelDB:  levelDB,
		Running:  running,
		A4:       set.A4,
	}
	st.applyScale(snap)
	return st
}

func (s *State) applyScale(snap *scale.Snapshot) {
	s.Root = snap.Root
	s.HasScale = snap.Active()
	s.ScaleDescription = ""
	s.Steps = nil
	s.Anchored = nil
	if s.HasScale {
		s.ScaleDescription = snap.Definition.Description
		s.Steps = snap.Definition.Steps
		s.Anchored = snap.Anchored
	}
}

func clampCents(c float64) float64 {
	return core.Clamp(c, -maxDisplayCents, maxDisplayCents)
}
