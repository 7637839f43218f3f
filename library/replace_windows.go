//go:build windows

package library

// syncDir is a no-op: directories cannot be fsynced on Windows.
func syncDir(string) error { return nil }
