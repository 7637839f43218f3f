package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

// Generator creates deterministic reference tones for exercising the tuner
// without a capture device.
type Generator struct {
	cfg  core.FrameConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(frameOpts []core.FrameOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyFrameOptions(frameOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator frame configuration.
func (g *Generator) Config() core.FrameConfig {
	return g.cfg
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	return g.Harmonic(freqHz, []float64{amplitude}, samples)
}

// Harmonic generates a tone whose k-th partial (k = 1..len(partials)) has
// amplitude partials[k-1]. Partials at or above Nyquist are dropped.
func (g *Generator) Harmonic(freqHz float64, partials []float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("tone samples must be > 0: %d", samples)
	}
	if freqHz <= 0 || !core.IsFinite(freqHz) {
		return nil, fmt.Errorf("tone frequency must be > 0: %f", freqHz)
	}
	if len(partials) == 0 {
		return nil, fmt.Errorf("tone needs at least one partial")
	}

	nyquist := g.cfg.SampleRate / 2
	out := make([]float64, samples)
	for k, amp := range partials {
		f := freqHz * float64(k+1)
		if f >= nyquist || amp == 0 {
			continue
		}
		step := 2 * math.Pi * f / g.cfg.SampleRate
		for i := range out {
			out[i] += amp * math.Sin(step*float64(i))
		}
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Mix adds src into dst in place over their common length.
func Mix(dst, src []float64) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] += src[i]
	}
}

// Hops splits data into consecutive hops of the generator's hop size, the
// way a capture device delivers buffers. The last partial hop is dropped.
func (g *Generator) Hops(data []float64) [][]float64 {
	hop := g.cfg.HopSize
	out := make([][]float64, 0, len(data)/hop)
	for start := 0; start+hop <= len(data); start += hop {
		out = append(out, data[start:start+hop])
	}
	return out
}
