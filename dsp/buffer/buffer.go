package buffer

// Buffer wraps a float64 slice with reuse-friendly semantics.
// DSP functions accept raw []float64; use Samples() to bridge.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]float64, length)}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	for i := range b.samples {
		b.samples[i] = 0
	}
}

// LoadPadded copies src into the buffer, truncating src when it is longer
// and zero-filling the tail when it is shorter. It returns the number of
// samples taken from src.
func (b *Buffer) LoadPadded(src []float64) int {
	n := copy(b.samples, src)
	for i := n; i < len(b.samples); i++ {
		b.samples[i] = 0
	}
	return n
}

// LoadPaddedFloat32 is LoadPadded for float32 device samples.
func (b *Buffer) LoadPaddedFloat32(src []float32) int {
	n := min(len(src), len(b.samples))
	for i := 0; i < n; i++ {
		b.samples[i] = float64(src[i])
	}
	for i := n; i < len(b.samples); i++ {
		b.samples[i] = 0
	}
	return n
}
