package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice. Real-time callers should hold their own scratch and
// use [MagnitudeInto].
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	MagnitudeInto(out, re, im, in)
	putScratch(buf)
	return out
}

// MagnitudeInto writes |X[k]| for the first len(dst) bins of in, using re
// and im as caller-owned scratch. re, im and dst must share a length no
// greater than len(in). It does not allocate.
func MagnitudeInto(dst, re, im []float64, in []complex128) {
	n := len(dst)
	for i := 0; i < n; i++ {
		c := in[i]
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(dst, re[:n], im[:n])
}

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
//
// All three slices must have the same length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// BinFrequency converts a (possibly fractional) bin index to Hz.
func BinFrequency(bin, sampleRate float64, fftSize int) float64 {
	if fftSize <= 0 {
		return 0
	}

	return bin * sampleRate / float64(fftSize)
}
