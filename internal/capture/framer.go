package capture

import "github.com/cwbudde/algo-tuner/dsp/buffer"

// Framer keeps the last frameSize samples of a hop stream and hands out the
// current window after every hop. With a 2048-sample hop and a 4096-sample
// frame consecutive windows overlap by half.
type Framer struct {
	ring   *buffer.Ring
	window []float64
}

// NewFramer returns a Framer for frames of frameSize samples.
func NewFramer(frameSize int) *Framer {
	ring := buffer.NewRing(frameSize)
	return &Framer{
		ring:   ring,
		window: make([]float64, ring.Size()),
	}
}

// Push appends hop and returns the newest window, oldest sample first.
// Until frameSize samples have arrived the window is shorter. The returned
// slice is reused by the next Push.
func (f *Framer) Push(hop []float32) []float64 {
	f.ring.WriteFloat32(hop)
	f.ring.Snapshot(f.window)
	return f.window[len(f.window)-f.ring.Filled():]
}

// Reset drops buffered samples, e.g. after a device restart.
func (f *Framer) Reset() {
	f.ring.Reset()
}
