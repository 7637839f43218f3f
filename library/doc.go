// Package library stores Scala scale files in one directory.
//
// The directory listing is the index: every readable *.scl file is a
// Record, there is no manifest. All operations do blocking file I/O and
// belong on a control goroutine, never on the audio path. Failures while
// listing or deleting are logged through the Store's slog.Logger and
// degrade gracefully.
package library
