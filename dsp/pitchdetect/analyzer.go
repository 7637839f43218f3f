package pitchdetect

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-tuner/dsp/buffer"
	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/dsp/level"
	"github.com/cwbudde/algo-tuner/dsp/spectrum"
	"github.com/cwbudde/algo-tuner/dsp/window"
)

const (
	// FrameSize is the analysis length; shorter input is zero-padded and
	// longer input truncated.
	FrameSize = core.DefaultFrameSize

	DefaultThresholdDB = -50.0
	MinThresholdDB     = -90.0
	MaxThresholdDB     = 0.0

	// DefaultFloorHz is the lowest frequency considered for the peak search.
	DefaultFloorHz = 50.0
)

// ErrInvalidSampleRate is returned for non-positive or non-finite sample rates.
var ErrInvalidSampleRate = errors.New("pitchdetect: sample rate must be > 0")

// Result describes one voiced frame.
type Result struct {
	// Frequency is the refined peak frequency in Hz.
	Frequency float64
	// LevelDB is the input RMS level in dBFS.
	LevelDB float64
	// Bin and Offset locate the peak: Frequency = (Bin+Offset)*sr/FrameSize.
	Bin    int
	Offset float64
	// Magnitude is the peak bin magnitude.
	Magnitude float64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithThresholdDB sets the silence gate, clamped to [-90, 0] dBFS.
func WithThresholdDB(db float64) Option {
	return func(a *Analyzer) {
		a.SetThresholdDB(db)
	}
}

// WithWindow replaces the default Hann window.
func WithWindow(t window.Type) Option {
	return func(a *Analyzer) {
		a.winType = t
	}
}

// WithFloorHz sets the lowest frequency considered for the peak.
func WithFloorHz(hz float64) Option {
	return func(a *Analyzer) {
		if hz > 0 && core.IsFinite(hz) {
			a.floorHz = hz
		}
	}
}

// Analyzer is the spectral pitch estimator. It is not safe for concurrent
// use: one Analyzer belongs to one audio callback.
type Analyzer struct {
	sampleRate  float64
	thresholdDB float64
	floorHz     float64
	winType     window.Type

	frame  *buffer.Buffer
	coeffs []float64
	plan   *algofft.Plan[complex128]
	in     []complex128
	out    []complex128
	re     []float64
	im     []float64
	mag    []float64
}

// NewAnalyzer creates an Analyzer for the given sample rate.
func NewAnalyzer(sampleRate float64, opts ...Option) (*Analyzer, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	a := &Analyzer{
		sampleRate:  sampleRate,
		thresholdDB: DefaultThresholdDB,
		floorHz:     DefaultFloorHz,
		winType:     window.TypeHann,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	plan, err := algofft.NewPlan64(FrameSize)
	if err != nil {
		return nil, fmt.Errorf("pitchdetect: init fft plan: %w", err)
	}

	half := FrameSize / 2
	a.plan = plan
	a.frame = buffer.New(FrameSize)
	a.coeffs = window.Generate(a.winType, FrameSize)
	a.in = make([]complex128, FrameSize)
	a.out = make([]complex128, FrameSize)
	a.re = make([]float64, half)
	a.im = make([]float64, half)
	a.mag = make([]float64, half)

	return a, nil
}

// SampleRate returns the configured sample rate.
func (a *Analyzer) SampleRate() float64 {
	return a.sampleRate
}

// SetSampleRate changes the sample rate used to convert bins to Hz.
func (a *Analyzer) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	a.sampleRate = sampleRate
	return nil
}

// ThresholdDB returns the silence gate in dBFS.
func (a *Analyzer) ThresholdDB() float64 {
	return a.thresholdDB
}

// SetThresholdDB sets the silence gate and returns the clamped value.
// Non-finite input leaves the gate unchanged.
func (a *Analyzer) SetThresholdDB(db float64) float64 {
	if core.IsFinite(db) {
		a.thresholdDB = core.Clamp(db, MinThresholdDB, MaxThresholdDB)
	}
	return a.thresholdDB
}

// FloorBin returns the first bin searched for the peak:
// max(1, floor(floorHz*N/sampleRate)).
func (a *Analyzer) FloorBin() int {
	return max(1, int(math.Floor(a.floorHz*FrameSize/a.sampleRate)))
}

// Analyze estimates the dominant frequency of samples. ok is false when the
// frame is gated as silence or carries no usable spectral peak; the returned
// Result still reports the measured level.
func (a *Analyzer) Analyze(samples []float64) (Result, bool) {
	n := a.frame.LoadPadded(samples)
	return a.analyzeLoaded(n)
}

// AnalyzeFloat32 is Analyze for float32 device samples.
func (a *Analyzer) AnalyzeFloat32(samples []float32) (Result, bool) {
	n := a.frame.LoadPaddedFloat32(samples)
	return a.analyzeLoaded(n)
}

func (a *Analyzer) analyzeLoaded(n int) (Result, bool) {
	buf := a.frame.Samples()

	res := Result{LevelDB: level.DBFS(level.RMS(buf[:n]))}
	if n == 0 || math.IsNaN(res.LevelDB) || res.LevelDB < a.thresholdDB {
		return res, false
	}

	level.RemoveDC(buf)
	if err := window.ApplyCoefficientsInPlace(buf, a.coeffs); err != nil {
		return res, false
	}

	for i, s := range buf {
		a.in[i] = complex(s, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return res, false
	}

	spectrum.MagnitudeInto(a.mag, a.re, a.im, a.out)

	peak, ok := spectrum.FindPeak(a.mag, a.FloorBin(), len(a.mag))
	if !ok || peak.Magnitude <= 0 || !core.IsFinite(peak.Magnitude) {
		return res, false
	}

	res.Bin = peak.Bin
	res.Offset = peak.Offset
	res.Magnitude = peak.Magnitude
	res.Frequency = spectrum.BinFrequency(peak.Position(), a.sampleRate, FrameSize)

	if !core.IsFinite(res.Frequency) || res.Frequency <= 0 {
		return res, false
	}

	return res, true
}
