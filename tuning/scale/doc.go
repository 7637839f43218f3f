// Package scale holds the scale model: a normalised list of step offsets in
// cents, the selected root note and the root-anchored steps derived from
// both.
//
// A Definition is immutable once built. Model publishes (Definition, root,
// anchored steps) triples through an atomic pointer so a reader on the audio
// thread always sees a complete snapshot, never a half-updated scale.
package scale
