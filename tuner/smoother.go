package tuner

import "github.com/cwbudde/algo-tuner/dsp/core"

const (
	MinSmootherAlpha = 0.01
	MaxSmootherAlpha = 1.0
)

// Smoother is the exponential moving average over frequency, display cents
// and absolute cents. The first reading initialises all three averages;
// later readings apply avg = (1-alpha)*avg + alpha*value.
//
// A Smoother belongs to a single goroutine.
type Smoother struct {
	alpha float64

	freq     float64
	display  float64
	absolute float64
	ready    bool
}

// NewSmoother returns a Smoother with alpha clamped to [0.01, 1].
func NewSmoother(alpha float64) *Smoother {
	s := &Smoother{alpha: DefaultSmoothingAlpha}
	s.SetAlpha(alpha)
	return s
}

// Alpha returns the smoothing coefficient.
func (s *Smoother) Alpha() float64 {
	return s.alpha
}

// SetAlpha clamps alpha to [0.01, 1]; non-finite values are ignored.
func (s *Smoother) SetAlpha(alpha float64) {
	if core.IsFinite(alpha) {
		s.alpha = core.Clamp(alpha, MinSmootherAlpha, MaxSmootherAlpha)
	}
}

// Update feeds one reading and returns the new averages.
func (s *Smoother) Update(freq, display, absolute float64) (float64, float64, float64) {
	if !s.ready {
		s.freq, s.display, s.absolute = freq, display, absolute
		s.ready = true
		return s.freq, s.display, s.absolute
	}

	a := s.alpha
	s.freq = (1-a)*s.freq + a*freq
	s.display = (1-a)*s.display + a*display
	s.absolute = (1-a)*s.absolute + a*absolute

	return s.freq, s.display, s.absolute
}

// Values returns the current averages; ok is false before the first Update.
func (s *Smoother) Values() (freq, display, absolute float64, ok bool) {
	return s.freq, s.display, s.absolute, s.ready
}

// Reset forgets the averages; the next Update initialises them again.
func (s *Smoother) Reset() {
	s.freq, s.display, s.absolute = 0, 0, 0
	s.ready = false
}
