package tuner

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/dsp/pitchdetect"
	"github.com/cwbudde/algo-tuner/tuning/pitch"
	"github.com/cwbudde/algo-tuner/tuning/scale"
)

// Engine is the real-time tuner. Process and ProcessFloat32 must be called
// from one goroutine at a time; every other method is safe for concurrent
// use.
type Engine struct {
	model    *scale.Model
	settings atomic.Pointer[Settings]
	state    atomic.Pointer[State]
	subs     subscribers

	running      atomic.Bool
	resetPending atomic.Bool

	// Owned by the audio goroutine.
	analyzer *pitchdetect.Analyzer
	smoother *Smoother

	// Test seams run inside the publish windows; nil in production.
	beforeStore   func()
	beforeReplace func()
}

// NewEngine creates a stopped Engine without a scale.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := applyOptions(opts)
	if cfg.sampleRate <= 0 || !core.IsFinite(cfg.sampleRate) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, cfg.sampleRate)
	}

	model, err := scale.NewModel(cfg.root)
	if err != nil {
		return nil, fmt.Errorf("tuner: %w", err)
	}

	analyzer, err := pitchdetect.NewAnalyzer(cfg.sampleRate,
		pitchdetect.WithThresholdDB(cfg.settings.ThresholdDB))
	if err != nil {
		return nil, fmt.Errorf("tuner: %w", err)
	}

	e := &Engine{
		model:    model,
		analyzer: analyzer,
		smoother: NewSmoother(cfg.settings.SmoothingAlpha),
	}
	set := cfg.settings
	e.settings.Store(&set)

	st := neutralState(model.Snapshot(), &set, false, 0)
	e.state.Store(&st)

	return e, nil
}

// Process analyses one mono frame captured at sampleRate and publishes the
// resulting State. Frames are ignored while the engine is stopped. A
// non-positive sampleRate keeps the previous rate.
func (e *Engine) Process(samples []float64, sampleRate float64) {
	if !e.prepare(sampleRate) {
		return
	}
	res, ok := e.analyzer.Analyze(samples)
	e.finish(res, ok)
}

// ProcessFloat32 is Process for float32 device buffers.
func (e *Engine) ProcessFloat32(samples []float32, sampleRate float64) {
	if !e.prepare(sampleRate) {
		return
	}
	res, ok := e.analyzer.AnalyzeFloat32(samples)
	e.finish(res, ok)
}

func (e *Engine) prepare(sampleRate float64) bool {
	if !e.running.Load() {
		return false
	}

	if sampleRate > 0 && core.IsFinite(sampleRate) && sampleRate != e.analyzer.SampleRate() {
		_ = e.analyzer.SetSampleRate(sampleRate)
	}

	set := e.settings.Load()
	e.analyzer.SetThresholdDB(set.ThresholdDB)
	e.smoother.SetAlpha(set.SmoothingAlpha)

	if e.resetPending.Swap(false) {
		e.smoother.Reset()
	}

	return true
}

func (e *Engine) finish(res pitchdetect.Result, ok bool) {
	set := e.settings.Load()
	snap := e.model.Snapshot()

	if !ok {
		e.publish(neutralState(snap, set, true, res.LevelDB))
		return
	}

	reading, err := pitch.Estimate(res.Frequency, set.A4, snap.Root, snap.Anchored)
	if err != nil {
		e.publish(neutralState(snap, set, true, res.LevelDB))
		return
	}

	freq, display, absolute := e.smoother.Update(reading.Frequency, reading.DisplayCents, reading.AbsoluteCents)

	st := State{
		Frequency:     freq,
		NoteName:      reading.Note.Name(),
		AbsoluteCents: clampCents(absolute),
		DisplayCents:  clampCents(display),
		LevelDB:       res.LevelDB,
		Running:       true,
		HasStep:       reading.HasStep,
		StepLabel:     reading.Label,
		A4:            set.A4,
	}
	st.applyScale(snap)

	e.publish(st)
}

func (e *Engine) publish(st State) {
	if st.Running && !e.running.Load() {
		// Stopped while this frame was in flight.
		return
	}
	if e.beforeStore != nil && st.Running {
		e.beforeStore()
	}

	next := &st
	e.state.Store(next)
	if st.Running && !e.running.Load() {
		// Stop published its neutral state between the check and the store.
		neutral := neutralState(e.model.Snapshot(), e.settings.Load(), false, st.LevelDB)
		if !e.state.CompareAndSwap(next, &neutral) {
			return
		}
		st = neutral
	}
	e.subs.publish(st)
}

// State returns the most recently published state.
func (e *Engine) State() State {
	return *e.state.Load()
}

// Subscribe registers an observer of published states.
func (e *Engine) Subscribe() *Subscription {
	sub := e.subs.add()
	sub.offer(e.State())
	return sub
}

// Settings returns the current configuration.
func (e *Engine) Settings() Settings {
	return *e.settings.Load()
}

// Scale returns the current scale model snapshot.
func (e *Engine) Scale() *scale.Snapshot {
	return e.model.Snapshot()
}

// Running reports whether frames are being processed.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// Start begins processing frames. The smoothing averages restart from the
// first voiced frame.
func (e *Engine) Start() {
	if e.running.Swap(true) {
		return
	}
	e.resetPending.Store(true)
	e.republish(func(st *State) {
		st.Running = e.running.Load()
	})
}

// Stop ignores further frames and publishes the neutral state.
func (e *Engine) Stop() {
	e.running.Store(false)
	set := e.settings.Load()
	e.publish(neutralState(e.model.Snapshot(), set, false, e.State().LevelDB))
}

// SetRoot selects the root note index in [0, 12) and re-anchors the scale.
func (e *Engine) SetRoot(root int) error {
	if err := e.model.SetRoot(root); err != nil {
		return fmt.Errorf("tuner: %w", err)
	}
	e.republishScale()
	return nil
}

// LoadScale installs def as the active scale. The previous scale stays
// active when def is nil.
func (e *Engine) LoadScale(def *scale.Definition) error {
	if err := e.model.SetDefinition(def); err != nil {
		return fmt.Errorf("tuner: %w", err)
	}
	e.republishScale()
	return nil
}

// ClearScale returns to plain 12-TET readings.
func (e *Engine) ClearScale() {
	e.model.Clear()
	e.republishScale()
}

// SetA4 sets the calibration reference. Values outside [200, 1000] Hz are
// clamped; the applied value is returned.
func (e *Engine) SetA4(hz float64) (float64, error) {
	if !core.IsFinite(hz) || hz <= 0 {
		return e.Settings().A4, fmt.Errorf("%w: %v", ErrInvalidA4, hz)
	}
	applied, _ := pitch.ClampA4(hz)
	e.updateSettings(func(s *Settings) {
		s.A4 = applied
	})
	return applied, nil
}

// ParseA4 parses and applies a user-entered reference. clamped reports
// whether the value was limited to [200, 1000] Hz. On error nothing
// changes and err is a *pitch.InputError.
func (e *Engine) ParseA4(text string) (hz float64, clamped bool, err error) {
	hz, clamped, err = pitch.ParseCalibration(text)
	if err != nil {
		return e.Settings().A4, false, err
	}
	e.updateSettings(func(s *Settings) {
		s.A4 = hz
	})
	return hz, clamped, nil
}

// CycleA4Preset steps through 438, 440 and 442 Hz and returns the new
// reference.
func (e *Engine) CycleA4Preset() float64 {
	var next float64
	e.updateSettings(func(s *Settings) {
		next = pitch.NextA4Preset(s.A4)
		s.A4 = next
	})
	return next
}

// SetSmoothingAlpha sets the EMA coefficient, clamped to [0.05, 0.5], and
// returns the applied value. Non-finite values are ignored.
func (e *Engine) SetSmoothingAlpha(alpha float64) float64 {
	if !core.IsFinite(alpha) {
		return e.Settings().SmoothingAlpha
	}
	return e.updateSettings(func(s *Settings) {
		s.SmoothingAlpha = alpha
	}).SmoothingAlpha
}

// SetThresholdDB sets the silence gate, clamped to [-90, 0] dBFS, and
// returns the applied value. Non-finite values are ignored.
func (e *Engine) SetThresholdDB(db float64) float64 {
	if !core.IsFinite(db) {
		return e.Settings().ThresholdDB
	}
	return e.updateSettings(func(s *Settings) {
		s.ThresholdDB = db
	}).ThresholdDB
}

func (e *Engine) updateSettings(fn func(*Settings)) Settings {
	for {
		cur := e.settings.Load()
		next := *cur
		fn(&next)
		next = next.sanitize()
		if e.settings.CompareAndSwap(cur, &next) {
			if next.A4 != cur.A4 {
				e.republish(func(st *State) {
					st.A4 = next.A4
				})
			}
			return next
		}
	}
}

// republishScale refreshes the scale fields of the current state. The step
// label belongs to the previous scale or root, so it is dropped and the
// averages restart on the next voiced frame.
func (e *Engine) republishScale() {
	e.resetPending.Store(true)
	snap := e.model.Snapshot()
	e.republish(func(st *State) {
		st.applyScale(snap)
		st.HasStep = false
		st.StepLabel = ""
		if !st.HasScale {
			st.DisplayCents = st.AbsoluteCents
		}
	})
}

func (e *Engine) republish(fn func(*State)) {
	for {
		cur := e.state.Load()
		next := *cur
		fn(&next)
		if e.beforeReplace != nil {
			e.beforeReplace()
		}
		if e.state.CompareAndSwap(cur, &next) {
			e.subs.publish(next)
			return
		}
	}
}
