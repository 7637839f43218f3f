package tuner

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/dsp/pitchdetect"
	"github.com/cwbudde/algo-tuner/internal/testutil"
	"github.com/cwbudde/algo-tuner/tuning/pitch"
	"github.com/cwbudde/algo-tuner/tuning/scale"
)

const testRate = 48000.0

func newRunningEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(opts...)
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}
	e.Start()
	return e
}

func tone(freq, amp float64) []float64 {
	return testutil.DeterministicSine(freq, testRate, amp, pitchdetect.FrameSize)
}

func requireNeutral(t *testing.T, st State) {
	t.Helper()
	if st.Frequency != 0 || st.NoteName != NoSignalName || st.AbsoluteCents != 0 ||
		st.DisplayCents != 0 || st.HasStep || st.StepLabel != "" {
		t.Fatalf("expected neutral state, got %+v", st)
	}
}

func chromaticDefinition() *scale.Definition {
	steps := make([]float64, 12)
	for i := range steps {
		steps[i] = float64(i) * 100
	}
	return scale.NewDefinition("12-TET", steps)
}

func TestNewEngineDefaults(t *testing.T) {
	e, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}

	st := e.State()
	requireNeutral(t, st)
	if st.Running || st.Root != scale.DefaultRoot || st.A4 != pitch.DefaultA4 || st.HasScale {
		t.Fatalf("unexpected initial state %+v", st)
	}

	set := e.Settings()
	if set != DefaultSettings() {
		t.Fatalf("settings = %+v, want %+v", set, DefaultSettings())
	}
}

func TestNewEngineOptions(t *testing.T) {
	e, err := NewEngine(
		WithSampleRate(44100),
		WithSmoothingAlpha(0.9),
		WithThresholdDB(-120),
		WithA4(1500),
		WithRoot(2),
	)
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}
	want := Settings{A4: pitch.MaxA4, SmoothingAlpha: MaxSmoothingAlpha, ThresholdDB: pitchdetect.MinThresholdDB}
	if got := e.Settings(); got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}
	if e.State().Root != 2 {
		t.Fatalf("root = %d", e.State().Root)
	}

	if _, err := NewEngine(WithRoot(12)); !errors.Is(err, scale.ErrInvalidRoot) {
		t.Fatalf("WithRoot(12) error = %v", err)
	}
	if _, err := NewEngine(WithSampleRate(0)); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("WithSampleRate(0) error = %v", err)
	}
}

func TestProcessA4(t *testing.T) {
	e := newRunningEngine(t)
	e.Process(tone(440, 0.5), testRate)

	st := e.State()
	if st.NoteName != "A4" {
		t.Fatalf("note = %q, want A4", st.NoteName)
	}
	if math.Abs(st.AbsoluteCents) > 5 || math.Abs(st.DisplayCents-st.AbsoluteCents) > 1e-12 {
		t.Fatalf("cents = %v / %v", st.AbsoluteCents, st.DisplayCents)
	}
	if math.Abs(st.Frequency-440) > 2 {
		t.Fatalf("frequency = %v", st.Frequency)
	}
	if !st.Running || st.HasStep {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestProcessIgnoredWhileStopped(t *testing.T) {
	e, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}
	e.Process(tone(440, 0.5), testRate)
	requireNeutral(t, e.State())

	e.Start()
	e.Process(tone(440, 0.5), testRate)
	if !e.State().Voiced() {
		t.Fatal("expected a reading after Start")
	}

	e.Stop()
	st := e.State()
	requireNeutral(t, st)
	if st.Running || e.Running() {
		t.Fatal("engine still running after Stop")
	}
}

func TestGatedFrameKeepsAverages(t *testing.T) {
	e := newRunningEngine(t, WithSmoothingAlpha(0.5))

	for range 3 {
		e.Process(tone(440, 0.5), testRate)
	}
	before, _, _, ok := e.smoother.Values()
	if !ok {
		t.Fatal("smoother not initialised")
	}

	quiet := tone(440, math.Sqrt2*core.DBToLinear(-70))
	e.Process(quiet, testRate)
	st := e.State()
	requireNeutral(t, st)
	if !st.Running {
		t.Fatal("gated state must stay running")
	}
	testutil.RequireNear(t, "level", st.LevelDB, -70, 0.2)

	after, _, _, ok := e.smoother.Values()
	if !ok || after != before {
		t.Fatalf("gated frame moved the average: %v -> %v", before, after)
	}

	e.Process(make([]float64, pitchdetect.FrameSize), testRate)
	requireNeutral(t, e.State())

	e.Process(tone(440, 0.5), testRate)
	if st := e.State(); st.NoteName != "A4" {
		t.Fatalf("note after gate = %q", st.NoteName)
	}
}

func TestThresholdSetting(t *testing.T) {
	e := newRunningEngine(t)
	quiet := tone(330, math.Sqrt2*core.DBToLinear(-70))

	e.Process(quiet, testRate)
	requireNeutral(t, e.State())

	if got := e.SetThresholdDB(-80); got != -80 {
		t.Fatalf("SetThresholdDB = %v", got)
	}
	e.Process(quiet, testRate)
	if st := e.State(); st.NoteName != "E4" {
		t.Fatalf("note = %q, want E4", st.NoteName)
	}

	if got := e.SetThresholdDB(-200); got != pitchdetect.MinThresholdDB {
		t.Fatalf("SetThresholdDB(-200) = %v", got)
	}
	if got := e.SetThresholdDB(math.NaN()); got != pitchdetect.MinThresholdDB {
		t.Fatalf("SetThresholdDB(NaN) = %v", got)
	}
}

func TestProcessFloat32AndRateChange(t *testing.T) {
	e := newRunningEngine(t)
	frame := testutil.SineFloat32(261.63, 44100, 0.4, pitchdetect.FrameSize)

	e.ProcessFloat32(frame, 44100)
	if st := e.State(); st.NoteName != "C4" {
		t.Fatalf("note = %q, want C4 (%v Hz)", st.NoteName, st.Frequency)
	}
}

func TestScaleRelativeReading(t *testing.T) {
	e := newRunningEngine(t)
	if err := e.LoadScale(chromaticDefinition()); err != nil {
		t.Fatalf("LoadScale error: %v", err)
	}

	st := e.State()
	if !st.HasScale || st.ScaleDescription != "12-TET" || len(st.Anchored) != 12 {
		t.Fatalf("scale not published: %+v", st)
	}

	e.Process(tone(440, 0.5), testRate)
	st = e.State()
	if !st.HasStep || st.StepLabel != "00 A +0¢" {
		t.Fatalf("label = %q (has %v)", st.StepLabel, st.HasStep)
	}
	testutil.RequireNear(t, "display", st.DisplayCents, st.AbsoluteCents, 1e-6)

	if err := e.SetRoot(0); err != nil {
		t.Fatalf("SetRoot error: %v", err)
	}
	st = e.State()
	if st.HasStep || st.Root != 0 {
		t.Fatalf("root change did not republish: %+v", st)
	}
	testutil.RequireSliceNearlyEqual(t, st.Anchored, chromaticDefinition().Steps, 1e-9)

	e.Process(tone(440, 0.5), testRate)
	if st := e.State(); st.StepLabel != "09 A +0¢" {
		t.Fatalf("label after root change = %q", st.StepLabel)
	}

	e.ClearScale()
	st = e.State()
	if st.HasScale || st.Steps != nil || st.HasStep {
		t.Fatalf("scale not cleared: %+v", st)
	}
}

func TestScaleDeviationUsesNearestStep(t *testing.T) {
	e := newRunningEngine(t, WithRoot(0))
	just := scale.NewDefinition("just", []float64{1200 * math.Log2(5.0/4), 1200 * math.Log2(3.0/2)})
	if err := e.LoadScale(just); err != nil {
		t.Fatalf("LoadScale error: %v", err)
	}

	// Equal-tempered E4 is about 13.7 cents above the just third.
	e.Process(tone(pitch.Frequency(64, 440), 0.5), testRate)
	st := e.State()
	if st.NoteName != "E4" || st.StepLabel != "01 E -14¢" {
		t.Fatalf("unexpected state %+v", st)
	}
	if st.DisplayCents < 8 || st.DisplayCents > 20 {
		t.Fatalf("display cents = %v, want about +13.7", st.DisplayCents)
	}
}

func TestInvalidControlInputLeavesState(t *testing.T) {
	e := newRunningEngine(t)
	if err := e.LoadScale(chromaticDefinition()); err != nil {
		t.Fatalf("LoadScale error: %v", err)
	}

	if err := e.SetRoot(-1); !errors.Is(err, scale.ErrInvalidRoot) {
		t.Fatalf("SetRoot(-1) error = %v", err)
	}
	if err := e.LoadScale(nil); !errors.Is(err, scale.ErrNilDefinition) {
		t.Fatalf("LoadScale(nil) error = %v", err)
	}
	if st := e.State(); !st.HasScale || st.Root != scale.DefaultRoot {
		t.Fatalf("state changed by rejected input: %+v", st)
	}
}

func TestA4Controls(t *testing.T) {
	e := newRunningEngine(t)

	if got, err := e.SetA4(150); err != nil || got != pitch.MinA4 {
		t.Fatalf("SetA4(150) = %v, %v", got, err)
	}
	if e.State().A4 != pitch.MinA4 {
		t.Fatalf("state A4 = %v", e.State().A4)
	}
	if _, err := e.SetA4(math.Inf(1)); !errors.Is(err, ErrInvalidA4) {
		t.Fatalf("SetA4(Inf) error = %v", err)
	}

	hz, clamped, err := e.ParseA4("2000")
	if err != nil || hz != pitch.MaxA4 || !clamped {
		t.Fatalf("ParseA4(2000) = %v, %v, %v", hz, clamped, err)
	}

	_, _, err = e.ParseA4("four forty")
	var inputErr *pitch.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("ParseA4 error = %v, want *pitch.InputError", err)
	}
	if e.Settings().A4 != pitch.MaxA4 {
		t.Fatalf("rejected input changed A4 to %v", e.Settings().A4)
	}

	if _, _, err := e.ParseA4("440"); err != nil {
		t.Fatalf("ParseA4(440) error: %v", err)
	}
	for _, want := range []float64{442, 438, 440} {
		if got := e.CycleA4Preset(); got != want {
			t.Fatalf("CycleA4Preset = %v, want %v", got, want)
		}
	}
}

func TestA4ShiftsReading(t *testing.T) {
	e := newRunningEngine(t, WithA4(442))
	e.Process(tone(440, 0.5), testRate)

	st := e.State()
	want := 1200 * math.Log2(440.0/442)
	if st.NoteName != "A4" || math.Abs(st.AbsoluteCents-want) > 4 {
		t.Fatalf("A4=442 reading %+v, want about %.1f cents", st, want)
	}
}

func TestSmoothingAlphaControl(t *testing.T) {
	e := newRunningEngine(t)
	if got := e.SetSmoothingAlpha(0.9); got != MaxSmoothingAlpha {
		t.Fatalf("SetSmoothingAlpha(0.9) = %v", got)
	}
	if got := e.SetSmoothingAlpha(0.01); got != MinSmoothingAlpha {
		t.Fatalf("SetSmoothingAlpha(0.01) = %v", got)
	}
	if got := e.SetSmoothingAlpha(math.NaN()); got != MinSmoothingAlpha {
		t.Fatalf("SetSmoothingAlpha(NaN) = %v", got)
	}

	e.Process(tone(440, 0.5), testRate)
	if got := e.smoother.Alpha(); got != MinSmoothingAlpha {
		t.Fatalf("smoother alpha = %v", got)
	}
}

func TestPublishedCentsAreClamped(t *testing.T) {
	if clampCents(73) != 50 || clampCents(-51) != -50 || clampCents(12) != 12 {
		t.Fatal("clampCents")
	}
}

func TestStopDuringPublishWins(t *testing.T) {
	e := newRunningEngine(t)
	e.beforeStore = func() {
		e.beforeStore = nil
		e.Stop()
	}

	e.Process(tone(440, 0.5), testRate)

	st := e.State()
	if st.Running || e.Running() {
		t.Fatalf("engine reported running after Stop: %+v", st)
	}
	requireNeutral(t, st)
}

func TestRepublishKeepsNewerReading(t *testing.T) {
	e := newRunningEngine(t)
	e.Process(tone(440, 0.5), testRate)
	if got := e.State().NoteName; got != "A4" {
		t.Fatalf("NoteName = %q, want A4", got)
	}

	e.beforeReplace = func() {
		e.beforeReplace = nil
		e.Process(tone(pitch.Frequency(64, pitch.DefaultA4), 0.5), testRate)
	}
	if _, err := e.SetA4(442); err != nil {
		t.Fatalf("SetA4 error: %v", err)
	}

	st := e.State()
	if st.NoteName != "E4" || st.A4 != 442 {
		t.Fatalf("state = %s at A4 %v, want E4 at 442", st.NoteName, st.A4)
	}
}

func TestConcurrentControlAndProcess(t *testing.T) {
	e := newRunningEngine(t)
	frame := tone(440, 0.5)
	def := chromaticDefinition()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			e.Process(frame, testRate)
		}
	}()

	for i := range 50 {
		_ = e.SetRoot(i % 12)
		if i%2 == 0 {
			_ = e.LoadScale(def)
		} else {
			e.ClearScale()
		}
		e.CycleA4Preset()
		_ = e.State()
	}
	wg.Wait()

	st := e.State()
	if st.HasScale && len(st.Anchored) != 12 {
		t.Fatalf("torn scale in state: %+v", st)
	}
}
