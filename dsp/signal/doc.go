// Package signal generates deterministic reference tones (pure, harmonic,
// noisy) used by tests and by the tuner's self-test mode.
package signal
