//go:build !windows

package library

import "os"

// syncDir flushes directory metadata so a completed rename survives a crash.
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
