package ports

import "go.trai.ch/recall/internal/core/domain"

// CacheRepository stores configuration cache entries, one per cache key.
// An entry is either fully written and visible, or absent.
//
//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks
type CacheRepository interface {
	// Exists reports whether a committed entry is visible under key.
	Exists(key domain.CacheKey) bool
	// Open returns a handle on the committed entry.
	// It returns ErrCacheEntryNotFound when no complete entry exists.
	Open(key domain.CacheKey) (CacheEntry, error)
	// BeginWrite stages a new entry. Nothing is visible until Commit.
	BeginWrite(key domain.CacheKey) (CacheWriter, error)
	// ReadProblems returns the problems report of the committed entry, or nil if there is none.
	ReadProblems(key domain.CacheKey) (*domain.ProblemsReport, error)
	// Remove deletes every file stored under key.
	Remove(key domain.CacheKey) error
	// Keys lists the keys with visible entries.
	Keys() ([]domain.CacheKey, error)
	// Clean removes every entry.
	Clean() error
}

// CacheEntry is a committed entry opened for reading.
type CacheEntry interface {
	ReadFingerprint() ([]byte, error)
	ReadModel() ([]byte, error)
	Close() error
}

// CacheWriter stages the files of a new entry.
type CacheWriter interface {
	WriteFingerprint(data []byte) error
	WriteModel(data []byte) error
	// WriteProblems stages the problems report; it becomes visible with the entry.
	WriteProblems(report *domain.ProblemsReport) error
	// Commit makes the entry visible, replacing any previous one.
	Commit() error
	// Discard drops the staged files. It is a no-op after Commit.
	Discard() error
}

// CacheRepositories opens repositories by cache directory.
type CacheRepositories interface {
	Repository(cacheDir string) (CacheRepository, error)
}
