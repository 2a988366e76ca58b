// Package fileutil holds small filesystem helpers shared by the commands.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the output lock.
var ErrLocked = errors.New("output is locked by another conversion")

// removeFile is swapped in tests.
var removeFile = os.Remove

// lockAttempts bounds retries when the lock file is replaced under us.
const lockAttempts = 3

// OutputLock guards an output path with a sibling <path>.lock file.
type OutputLock struct {
	path string
	lock *flock.Flock
}

// LockPath returns the lock file used for output.
func LockPath(output string) string {
	return filepath.Clean(output) + ".lock"
}

// AcquireOutputLock takes a non-blocking exclusive lock for output. The
// parent directory is created if needed.
func AcquireOutputLock(output string) (*OutputLock, error) {
	path := LockPath(output)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	for range lockAttempts {
		l := &OutputLock{path: path, lock: flock.New(path)}
		ok, err := l.lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrLocked, path)
		}
		// The previous holder unlinks the file before unlocking, so a lock
		// taken on the old inode guards nothing.
		if l.held() {
			return l, nil
		}
		if err := l.lock.Unlock(); err != nil {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrLocked, path)
}

// held reports whether the locked handle is still the file at l.path.
func (l *OutputLock) held() bool {
	locked, err := l.lock.Stat()
	if err != nil {
		return false
	}
	current, err := os.Stat(l.path)
	if err != nil {
		return false
	}
	return os.SameFile(locked, current)
}

// Path returns the lock file path.
func (l *OutputLock) Path() string {
	return l.path
}

// Release removes the lock file while the lock is still held, then unlocks.
// The lock is released even when the removal fails.
func (l *OutputLock) Release() error {
	rmErr := removeFile(l.path)
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	if rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		return fmt.Errorf("remove lock: %w", rmErr)
	}
	return nil
}
