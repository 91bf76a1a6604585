// Package report renders the run's matches and owns the single persisted
// artifact: the HTML report. The artifact doubles as the next run's
// history source, so its job anchors carry a stable class. File access
// goes through a sidecar flock so overlapping invocations cannot
// interleave reads and writes.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ReadPrior loads the previous run's artifact under a shared lock. A
// missing artifact is a first run, not an error.
func ReadPrior(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	lock := flock.New(path + ".lock")
	if err := lock.RLock(); err != nil {
		return "", fmt.Errorf("lock report %s: %w", path, err)
	}
	defer lock.Unlock()

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read report %s: %w", path, err)
	}
	return string(b), nil
}

// Write replaces the artifact under an exclusive lock.
func Write(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock report %s: %w", path, err)
	}
	defer lock.Unlock()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
