package pitchdetect

import (
	"testing"

	"github.com/cwbudde/algo-tuner/internal/testutil"
)

func BenchmarkAnalyze(b *testing.B) {
	a, err := NewAnalyzer(48000)
	if err != nil {
		b.Fatalf("NewAnalyzer error: %v", err)
	}
	frame := testutil.DeterministicSine(440, 48000, 0.5, FrameSize)

	b.ReportAllocs()
	b.SetBytes(int64(FrameSize * 8))
	b.ResetTimer()

	for range b.N {
		_, _ = a.Analyze(frame)
	}
}
