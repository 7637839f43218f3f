package buffer

// Ring keeps the most recent Size() samples of a stream.
//
// Writes overwrite the oldest samples; Snapshot copies the window out in
// chronological order. A Ring is not safe for concurrent use; it belongs to
// the goroutine that feeds it.
type Ring struct {
	values  []float64
	pointer int
	filled  int
}

// NewRing returns a Ring holding size samples.
func NewRing(size int) *Ring {
	if size < 1 {
		size = 1
	}
	return &Ring{values: make([]float64, size)}
}

// Size returns the ring capacity.
func (r *Ring) Size() int {
	return len(r.values)
}

// Filled returns how many samples have been written, capped at Size().
func (r *Ring) Filled() int {
	return r.filled
}

// Full reports whether a complete window is available.
func (r *Ring) Full() bool {
	return r.filled == len(r.values)
}

// Reset forgets all written samples.
func (r *Ring) Reset() {
	for i := range r.values {
		r.values[i] = 0
	}
	r.pointer = 0
	r.filled = 0
}

// Write appends samples, overwriting the oldest ones once the ring is full.
//
// Semantics: pointer points to the oldest element, or next element to be
// overwritten.
func (r *Ring) Write(samples []float64) {
	n := len(r.values)
	if len(samples) >= n {
		copy(r.values, samples[len(samples)-n:])
		r.pointer = 0
		r.filled = n
		return
	}

	ptr := r.pointer
	end := ptr + len(samples)
	if end <= n {
		copy(r.values[ptr:end], samples)
	} else {
		tail := n - ptr
		copy(r.values[ptr:], samples[:tail])
		copy(r.values, samples[tail:])
	}
	r.pointer = end % n
	r.filled = min(r.filled+len(samples), n)
}

// WriteFloat32 appends float32 device samples.
func (r *Ring) WriteFloat32(samples []float32) {
	n := len(r.values)
	if len(samples) > n {
		samples = samples[len(samples)-n:]
	}
	for _, s := range samples {
		r.values[r.pointer] = float64(s)
		r.pointer++
		if r.pointer == n {
			r.pointer = 0
		}
	}
	r.filled = min(r.filled+len(samples), n)
}

// Snapshot copies the window into dst, oldest sample first, and returns the
// number of samples copied. dst shorter than Size() receives the newest
// len(dst) samples. Samples not yet written read as zero.
func (r *Ring) Snapshot(dst []float64) int {
	n := len(r.values)
	m := min(len(dst), n)
	start := (r.pointer + n - m) % n
	first := min(m, n-start)
	copy(dst[:first], r.values[start:start+first])
	copy(dst[first:m], r.values[:m-first])
	return m
}
