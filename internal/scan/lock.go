package scan

import (
	"fmt"

	"github.com/gofrs/flock"

	"langtagger/internal/services"
)

// acquireLock takes the cross-process scan lock without waiting.
func acquireLock(path string) (*flock.Flock, error) {
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrLibrary, "scan", "lock", fmt.Sprintf("lock %s", path), err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrScanInProgress, "scan", "lock", "another pass holds "+path, nil)
	}
	return lock, nil
}
