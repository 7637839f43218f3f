// Package capture feeds mono float32 hops to the tuner engine.
//
// A Source produces hops of a fixed size at a known sample rate; a Framer
// turns consecutive hops into overlapping analysis windows. The WAV source
// here replays files through the same path as live input, which lives in
// the cgo-backed subpackage live.
package capture
