package config

import (
	"os"
	"path/filepath"
)

const lockFileName = "session.lock"

// FileLock provides file-based locking for cross-process synchronization.
// It uses a separate lock file rather than locking the data file directly,
// so the atomic rename of the data file never races the lock itself.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a FileLock guarding the given data file. The lock file
// is created next to it.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		path: filepath.Join(filepath.Dir(path), lockFileName),
	}
}
