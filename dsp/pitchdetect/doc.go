// Package pitchdetect estimates the fundamental frequency of a monophonic
// frame from the dominant peak of its magnitude spectrum.
//
// Each frame is level-gated, DC-corrected, Hann-windowed and transformed
// with a 4096-point FFT. The strongest bin above a 50 Hz floor is refined
// by parabolic interpolation over its neighbours. All working memory is
// allocated by [NewAnalyzer], so [Analyzer.Analyze] is safe to call from a
// real-time audio callback.
package pitchdetect
