// Package level measures signal level for the tuner's silence gate.
//
// Levels are expressed in dBFS with a small epsilon added before the
// logarithm so digital silence maps to a large negative finite value
// instead of -Inf. Building with the fastmath tag swaps the logarithm for
// an algo-approx approximation.
package level
