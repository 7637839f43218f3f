// Package spectrum provides FFT-adjacent spectrum-domain utilities.
//
// The package intentionally does not implement FFT itself. It operates on
// complex spectrum bins produced by an external FFT backend and provides the
// magnitude extraction and peak location steps of the tuner's estimator.
package spectrum
