// Package runlock enforces single-writer access to a destination tree.
// Two concurrent runs against the same destination would race on the
// same output paths; a file lock in the destination root prevents that.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".dashstitch.lock"

// ErrHeld indicates another dashstitch process already owns the
// destination tree.
var ErrHeld = errors.New("destination is locked by another dashstitch run")

// Lock is an acquired destination lock.
type Lock struct {
	path string
	fl   *flock.Flock
}

// Acquire takes the lock for destRoot, creating the directory if
// needed. It does not block: a held lock returns ErrHeld immediately.
func Acquire(destRoot string) (*Lock, error) {
	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create destination %q: %w", destRoot, err)
	}

	path := filepath.Join(destRoot, lockFileName)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %q: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrHeld, path)
	}
	return &Lock{path: path, fl: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release lock %q: %w", l.path, err)
	}
	_ = os.Remove(l.path)
	return nil
}
