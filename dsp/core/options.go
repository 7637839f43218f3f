package core

// Analysis frame defaults shared by capture and analysis.
const (
	DefaultSampleRate = 48000
	DefaultFrameSize  = 4096
	DefaultHopSize    = 2048
)

// FrameConfig describes how captured audio is cut into analysis frames.
type FrameConfig struct {
	SampleRate float64
	FrameSize  int
	HopSize    int
}

// FrameOption mutates a FrameConfig.
type FrameOption func(*FrameConfig)

// DefaultFrameConfig returns the tuner's frame layout: 4096-sample windows
// advanced by 2048-sample hops.
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		SampleRate: DefaultSampleRate,
		FrameSize:  DefaultFrameSize,
		HopSize:    DefaultHopSize,
	}
}

// WithSampleRate sets the capture sample rate.
func WithSampleRate(sampleRate float64) FrameOption {
	return func(cfg *FrameConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFrameSize sets the analysis window length.
func WithFrameSize(frameSize int) FrameOption {
	return func(cfg *FrameConfig) {
		if frameSize > 0 {
			cfg.FrameSize = frameSize
		}
	}
}

// WithHopSize sets the number of new samples between analysis frames.
func WithHopSize(hopSize int) FrameOption {
	return func(cfg *FrameConfig) {
		if hopSize > 0 {
			cfg.HopSize = hopSize
		}
	}
}

// ApplyFrameOptions applies zero or more options to the default config.
// A hop larger than the frame is reduced to the frame size.
func ApplyFrameOptions(opts ...FrameOption) FrameConfig {
	cfg := DefaultFrameConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.HopSize > cfg.FrameSize {
		cfg.HopSize = cfg.FrameSize
	}

	return cfg
}
