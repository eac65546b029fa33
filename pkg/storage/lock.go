package storage

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bodega-dev/bodega/pkg/errors"
)

// Advisory locking for read-modify-write sequences. The lock is a file
// created with O_EXCL; it does not protect against processes that ignore it,
// which is fine for a single-user local tracker.

const (
	lockFileName  = ".lock"
	lockRetryWait = 50 * time.Millisecond
)

// DefaultLockTimeout bounds how long Lock waits for a concurrent holder.
const DefaultLockTimeout = 5 * time.Second

// Lock acquires the store's advisory lock, retrying until timeout. The
// returned release function removes the lock file and is safe to defer.
func (s *Store) Lock(timeout time.Duration) (release func(), err error) {
	path := filepath.Join(s.dir, lockFileName)
	deadline := time.Now().Add(timeout)

	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			f.Close()
			return func() { os.Remove(path) }, nil
		}
		if !os.IsExist(err) {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "acquire lock %s", path)
		}
		if time.Now().After(deadline) {
			return nil, errors.New(errors.ErrCodeLockTimeout, "timed out waiting for lock %s", path)
		}
		time.Sleep(lockRetryWait)
	}
}

// WithLock runs fn while holding the store's advisory lock.
func (s *Store) WithLock(fn func() error) error {
	release, err := s.Lock(DefaultLockTimeout)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}
