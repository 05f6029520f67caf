package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrRunInProgress is returned when another compose run holds the lock.
var ErrRunInProgress = errors.New("another compose run is in progress")

const lockFileName = "compose.lock"

// RunLock serializes compose runs on one data directory.
type RunLock struct {
	flk *flock.Flock
}

// AcquireRunLock takes the exclusive run lock in dir without blocking.
func AcquireRunLock(dir string) (*RunLock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	flk := flock.New(filepath.Join(dir, lockFileName))
	locked, err := flk.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", flk.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("%w (lock: %s)", ErrRunInProgress, flk.Path())
	}
	return &RunLock{flk: flk}, nil
}

// Release unlocks the run lock.
func (l *RunLock) Release() error {
	return l.flk.Unlock()
}
