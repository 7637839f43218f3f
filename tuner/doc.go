// Package tuner ties the pitch analyzer, the scale model and the pitch
// estimator into a real-time tuner engine.
//
// The audio thread calls Process (or ProcessFloat32) once per captured hop.
// It reads settings and the scale model through atomic snapshots, never
// takes a lock and never does I/O. Every processed frame publishes an
// immutable State; presentation code polls State or receives the latest
// value through Subscribe.
//
// Control operations (SetRoot, LoadScale, SetA4, ...) may run on any other
// goroutine. They validate their input, swap in a new snapshot and
// republish the state so observers see the change without waiting for the
// next frame.
package tuner
