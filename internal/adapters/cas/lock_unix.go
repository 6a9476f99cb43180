//go:build unix

package cas

import (
	"errors"
	"os"
	"syscall"

	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/core/domain"
)

// fileLock is an exclusive flock on a per-key lock file.
// flock locks belong to the open file, so two handles in one process exclude each other too.
type fileLock struct {
	path string
	file *os.File
}

func newFileLock(path string) *fileLock {
	return &fileLock{path: path}
}

// Lock blocks until the lock is held.
func (l *fileLock) Lock() error {
	//nolint:gosec // lock path is derived from the cache directory
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, domain.PrivateFilePerm)
	if err != nil {
		return errors.Join(domain.ErrLockFailed, zerr.With(zerr.Wrap(err, "failed to open lock file"), "path", l.path))
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		_ = f.Close()
		return errors.Join(domain.ErrLockFailed, zerr.With(zerr.Wrap(err, "flock failed"), "path", l.path))
	}
	l.file = f
	return nil
}

// Unlock releases the lock. It is a no-op when the lock is not held.
func (l *fileLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_UN); err != nil {
		_ = f.Close()
		return zerr.Wrap(err, "failed to release cache lock")
	}
	return f.Close()
}
