package capture

import (
	"context"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

// DefaultHopSize is the number of samples per delivered hop.
const DefaultHopSize = core.DefaultHopSize

// Source produces mono hops.
type Source interface {
	// SampleRate returns the rate of the delivered samples in Hz.
	SampleRate() float64
	// Run calls fn with each hop until the input ends, ctx is cancelled or
	// an error occurs. The slice passed to fn is reused between calls.
	Run(ctx context.Context, fn func(hop []float32)) error
}
