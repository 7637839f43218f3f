// Package scala reads and writes tunings in the Scala .scl text format.
//
// A file holds a description line, a step count and that many step lines.
// Lines starting with '!' are comments; count and step lines may carry a
// trailing comment introduced by '!' or ';'. A step containing '/' is a
// frequency ratio, anything else is a value in cents with an optional
// trailing 'c' and ',' accepted as the decimal separator.
//
// Parsed steps are normalised through scale.Normalize, so the period (2/1)
// and duplicates disappear and the unison is always present. Input bytes
// may be UTF-8, UTF-16 (with or without byte order mark) or a single-byte
// code page, Latin-1 unless WithFallbackEncoding says otherwise.
package scala
