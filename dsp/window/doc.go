// Package window generates the analysis windows applied to tuner frames
// before the forward transform. Hann is the default; the other cosine-sum
// windows trade main-lobe width for side-lobe rejection.
package window
