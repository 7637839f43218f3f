// Package pitch maps frequencies to 12-TET note names and to the nearest
// step of a root-anchored scale.
//
// All functions are pure: they read their inputs and return values, so they
// can run on the audio thread against an immutable scale snapshot.
package pitch
