//go:build !unix

package cas

import "sync"

// Without flock, writers are only serialized within this process.
var processLocks sync.Map

type fileLock struct {
	path string
	held *sync.Mutex
}

func newFileLock(path string) *fileLock {
	return &fileLock{path: path}
}

func (l *fileLock) Lock() error {
	mu, _ := processLocks.LoadOrStore(l.path, &sync.Mutex{})
	l.held = mu.(*sync.Mutex)
	l.held.Lock()
	return nil
}

func (l *fileLock) Unlock() error {
	if l.held == nil {
		return nil
	}
	l.held.Unlock()
	l.held = nil
	return nil
}
