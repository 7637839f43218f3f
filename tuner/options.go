package tuner

import (
	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/dsp/pitchdetect"
	"github.com/cwbudde/algo-tuner/tuning/pitch"
	"github.com/cwbudde/algo-tuner/tuning/scale"
)

const (
	DefaultSmoothingAlpha = 0.15
	MinSmoothingAlpha     = 0.05
	MaxSmoothingAlpha     = 0.5
)

// Settings is the engine configuration read by the audio thread. Values
// are always sanitised.
type Settings struct {
	A4             float64
	SmoothingAlpha float64
	ThresholdDB    float64
}

// DefaultSettings returns A4 = 440 Hz, alpha 0.15 and a -50 dBFS gate.
func DefaultSettings() Settings {
	return Settings{
		A4:             pitch.DefaultA4,
		SmoothingAlpha: DefaultSmoothingAlpha,
		ThresholdDB:    pitchdetect.DefaultThresholdDB,
	}
}

func (s Settings) sanitize() Settings {
	if !core.IsFinite(s.A4) || s.A4 <= 0 {
		s.A4 = pitch.DefaultA4
	}
	s.A4, _ = pitch.ClampA4(s.A4)

	if !core.IsFinite(s.SmoothingAlpha) {
		s.SmoothingAlpha = DefaultSmoothingAlpha
	}
	s.SmoothingAlpha = core.Clamp(s.SmoothingAlpha, MinSmoothingAlpha, MaxSmoothingAlpha)

	if !core.IsFinite(s.ThresholdDB) {
		s.ThresholdDB = pitchdetect.DefaultThresholdDB
	}
	s.ThresholdDB = core.Clamp(s.ThresholdDB, pitchdetect.MinThresholdDB, pitchdetect.MaxThresholdDB)

	return s
}

type config struct {
	sampleRate float64
	settings   Settings
	root       int
}

// Option configures an Engine.
type Option func(*config)

// WithSampleRate sets the initial capture sample rate (default 48 kHz).
func WithSampleRate(sampleRate float64) Option {
	return func(c *config) {
		c.sampleRate = sampleRate
	}
}

// WithSmoothingAlpha sets the EMA coefficient, clamped to [0.05, 0.5].
func WithSmoothingAlpha(alpha float64) Option {
	return func(c *config) {
		c.settings.SmoothingAlpha = alpha
	}
}

// WithThresholdDB sets the silence gate, clamped to [-90, 0] dBFS.
func WithThresholdDB(db float64) Option {
	return func(c *config) {
		c.settings.ThresholdDB = db
	}
}

// WithA4 sets the calibration reference, clamped to [200, 1000] Hz.
func WithA4(hz float64) Option {
	return func(c *config) {
		c.settings.A4 = hz
	}
}

// WithRoot selects the initial root note index (default 9, A).
func WithRoot(root int) Option {
	return func(c *config) {
		c.root = root
	}
}

func applyOptions(opts []Option) config {
	cfg := config{
		sampleRate: core.DefaultSampleRate,
		settings:   DefaultSettings(),
		root:       scale.DefaultRoot,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.settings = cfg.settings.sanitize()
	return cfg
}
