// Package buffer provides the fixed-size sample storage used on the audio
// path: a reusable Buffer that pads or truncates incoming blocks to the
// analysis length, and a Ring that slides hop-sized capture blocks into
// overlapping analysis windows. Neither type allocates after construction.
package buffer
