package harness

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/samber/lo"
)

// LockFileName is created in the output directory while a run is active.
const LockFileName = ".copybench.lock"

// ErrLocked is returned by LockDir when another process holds the lock.
var ErrLocked = errors.New("output directory is in use by another benchmark")

// LockDir takes an exclusive, non-blocking lock on dir so that two runs do
// not overwrite each other's output files. Release it with Unlock.
func LockDir(dir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	lockPath := filepath.Join(dir, LockFileName)
	fileLock := flock.New(lockPath)
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("can't acquire lock %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: remove %q if no other copybench is running", ErrLocked, lockPath)
	}
	return fileLock, nil
}

// OutputDirs returns the distinct directories the plan writes into, in plan
// order.
func OutputDirs(plan []Spec) []string {
	dirs := lo.Map(plan, func(s Spec, _ int) string {
		dir := filepath.Dir(s.Output)
		if abs, err := filepath.Abs(dir); err == nil {
			return abs
		}
		return filepath.Clean(dir)
	})
	return lo.Uniq(dirs)
}

// LockOutputs locks every directory the plan writes into. Either all locks
// are taken or none is held when it returns.
func LockOutputs(plan []Spec) ([]*flock.Flock, error) {
	var locks []*flock.Flock
	for _, dir := range OutputDirs(plan) {
		l, err := LockDir(dir)
		if err != nil {
			_ = Unlock(locks)
			return nil, err
		}
		locks = append(locks, l)
	}
	return locks, nil
}

// Unlock releases locks taken by LockOutputs.
func Unlock(locks []*flock.Flock) error {
	var errs []error
	for _, l := range locks {
		errs = append(errs, l.Unlock())
	}
	return errors.Join(errs...)
}
