// Package cas implements the on-disk configuration cache repository.
//
// Each cache key owns a directory:
//
//	<key>/current          name of the committed entry directory
//	<key>/<entry>/         fingerprint.bin, model.bin and problems.json of one entry
//	<key>/staging-*        entry being written, never read
//	<key>/.lock            serializes writers of the key
//
// An entry becomes visible when "current" is replaced by rename, after all of its files were
// written and flushed in the staging directory. Readers therefore see the old entry or the new
// one, never a mix.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/core/domain"
	"go.trai.ch/recall/internal/core/ports"
)

// Repository implements ports.CacheRepository on the file system.
type Repository struct {
	root string

	// beforeCommit runs after staging and before the entry is published. Tests inject failures here.
	beforeCommit func(staged string) error
}

var _ ports.CacheRepository = (*Repository)(nil)

// NewRepository creates a repository rooted at dir, creating it if needed.
func NewRepository(dir string) (*Repository, error) {
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, ioErr(err, "failed to create cache directory", dir)
	}
	return &Repository{root: dir}, nil
}

// Root returns the cache directory.
func (r *Repository) Root() string {
	return r.root
}

func (r *Repository) keyDir(key domain.CacheKey) string {
	return filepath.Join(r.root, key.String())
}

// committed resolves the committed entry directory of key.
func (r *Repository) committed(key domain.CacheKey) (string, bool) {
	keyDir := r.keyDir(key)
	//nolint:gosec // path is derived from the cache root and a validated key
	name, err := os.ReadFile(filepath.Join(keyDir, domain.CurrentFileName))
	if err != nil {
		return "", false
	}
	entry := strings.TrimSpace(string(name))
	if entry == "" || entry != filepath.Base(entry) || strings.HasPrefix(entry, ".") ||
		strings.HasPrefix(entry, domain.StagingPrefix) {
		return "", false
	}
	dir := filepath.Join(keyDir, entry)
	if !fileExists(filepath.Join(dir, domain.FingerprintFileName)) ||
		!fileExists(filepath.Join(dir, domain.ModelFileName)) {
		return "", false
	}
	return dir, true
}

// Exists implements ports.CacheRepository.
func (r *Repository) Exists(key domain.CacheKey) bool {
	_, ok := r.committed(key)
	return ok
}

// Open implements ports.CacheRepository.
func (r *Repository) Open(key domain.CacheKey) (ports.CacheEntry, error) {
	dir, ok := r.committed(key)
	if !ok {
		return nil, errors.Join(domain.ErrCacheEntryNotFound,
			zerr.With(zerr.New("no committed entry for key "+key.String()), "key", key.String()))
	}
	return &readHandle{dir: dir}, nil
}

// BeginWrite implements ports.CacheRepository.
// It blocks while another writer holds the key.
func (r *Repository) BeginWrite(key domain.CacheKey) (ports.CacheWriter, error) {
	keyDir := r.keyDir(key)
	if err := os.MkdirAll(keyDir, domain.DirPerm); err != nil {
		return nil, ioErr(err, "failed to create entry directory", keyDir)
	}

	lock := newFileLock(filepath.Join(keyDir, domain.LockFileName))
	if err := lock.Lock(); err != nil {
		return nil, err
	}

	staging, err := os.MkdirTemp(keyDir, domain.StagingPrefix+"*")
	if err != nil {
		_ = lock.Unlock()
		return nil, ioErr(err, "failed to create staging directory", keyDir)
	}
	return &writeHandle{repo: r, keyDir: keyDir, staging: staging, lock: lock}, nil
}

// ReadProblems implements ports.CacheRepository.
// A missing or unreadable report is treated as no report.
func (r *Repository) ReadProblems(key domain.CacheKey) (*domain.ProblemsReport, error) {
	dir, ok := r.committed(key)
	if !ok {
		return nil, nil
	}
	path := filepath.Join(dir, domain.ProblemsFileName)
	//nolint:gosec // path is derived from the cache root and a validated key
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, ioErr(err, "failed to read problems report", path)
	}
	var report domain.ProblemsReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, nil
	}
	return &report, nil
}

// Remove implements ports.CacheRepository.
func (r *Repository) Remove(key domain.CacheKey) error {
	dir := r.keyDir(key)
	if err := os.RemoveAll(dir); err != nil {
		return ioErr(err, "failed to remove cache entry", dir)
	}
	return nil
}

// Keys implements ports.CacheRepository.
func (r *Repository) Keys() ([]domain.CacheKey, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, ioErr(err, "failed to list cache directory", r.root)
	}
	var keys []domain.CacheKey
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		key, err := domain.ParseCacheKey(e.Name())
		if err != nil {
			continue
		}
		if r.Exists(key) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Clean implements ports.CacheRepository.
func (r *Repository) Clean() error {
	if err := os.RemoveAll(r.root); err != nil {
		return ioErr(err, "failed to remove cache directory", r.root)
	}
	return nil
}

// prune removes every entry directory of keyDir except keep. Failures are ignored;
// an orphan directory is never read.
func prune(keyDir, keep string) {
	entries, err := os.ReadDir(keyDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || name == keep || strings.HasPrefix(name, domain.StagingPrefix) {
			continue
		}
		_ = os.RemoveAll(filepath.Join(keyDir, name))
	}
}

func ioErr(err error, msg, path string) error {
	return errors.Join(domain.ErrRepositoryIO, zerr.With(zerr.Wrap(err, msg), "path", path))
}

type readHandle struct {
	dir string
}

func (h *readHandle) read(name string) ([]byte, error) {
	path := filepath.Join(h.dir, name)
	//nolint:gosec // path is inside a committed entry directory
	data, err := os.ReadFile(path)
	if err != nil {
		// The entry was replaced or pruned by a concurrent writer.
		return nil, errors.Join(domain.ErrCacheEntryNotFound, zerr.With(zerr.Wrap(err, "entry vanished"), "path", path))
	}
	return data, nil
}

func (h *readHandle) ReadFingerprint() ([]byte, error) { return h.read(domain.FingerprintFileName) }

func (h *readHandle) ReadModel() ([]byte, error) { return h.read(domain.ModelFileName) }

func (h *readHandle) Close() error { return nil }

type writeHandle struct {
	repo    *Repository
	keyDir  string
	staging string
	lock    *fileLock
	wrote   map[string]bool
	closed  bool
}

func (h *writeHandle) write(name string, data []byte) error {
	if h.closed {
		return domain.ErrWriteHandleClosed
	}
	path := filepath.Join(h.staging, name)
	if err := writeFileSynced(path, data, domain.FilePerm); err != nil {
		return ioErr(err, "failed to stage cache file", path)
	}
	if h.wrote == nil {
		h.wrote = make(map[string]bool)
	}
	h.wrote[name] = true
	return nil
}

func (h *writeHandle) WriteFingerprint(data []byte) error {
	return h.write(domain.FingerprintFileName, data)
}

func (h *writeHandle) WriteModel(data []byte) error {
	return h.write(domain.ModelFileName, data)
}

func (h *writeHandle) WriteProblems(report *domain.ProblemsReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal problems report")
	}
	return h.write(domain.ProblemsFileName, data)
}

// Commit publishes the staged entry. On failure the staged files are dropped and the
// previously committed entry stays current.
func (h *writeHandle) Commit() (err error) {
	if h.closed {
		return domain.ErrWriteHandleClosed
	}
	defer func() {
		if err != nil {
			_ = h.Discard()
		}
	}()

	if !h.wrote[domain.FingerprintFileName] || !h.wrote[domain.ModelFileName] {
		return errors.Join(domain.ErrRepositoryIO, zerr.New("entry is incomplete"))
	}
	if h.repo.beforeCommit != nil {
		if err := h.repo.beforeCommit(h.staging); err != nil {
			return errors.Join(domain.ErrRepositoryIO, err)
		}
	}

	entry := uuid.NewString()
	final := filepath.Join(h.keyDir, entry)
	if err := os.Rename(h.staging, final); err != nil {
		return ioErr(err, "failed to publish entry", final)
	}
	h.staging = final
	syncDir(h.keyDir)

	current := filepath.Join(h.keyDir, domain.CurrentFileName)
	if err := writeFileAtomic(current, []byte(entry), domain.FilePerm); err != nil {
		return ioErr(err, "failed to switch current entry", current)
	}
	syncDir(h.keyDir)

	h.closed = true
	prune(h.keyDir, entry)
	return h.lock.Unlock()
}

// Discard drops the staged entry and releases the key.
func (h *writeHandle) Discard() error {
	if h.closed {
		return nil
	}
	h.closed = true
	rmErr := os.RemoveAll(h.staging)
	unlockErr := h.lock.Unlock()
	if rmErr != nil {
		return ioErr(rmErr, "failed to remove staging directory", h.staging)
	}
	return unlockErr
}

// Repositories opens file system repositories by directory.
type Repositories struct{}

var _ ports.CacheRepositories = Repositories{}

// Repository implements ports.CacheRepositories.
func (Repositories) Repository(cacheDir string) (ports.CacheRepository, error) {
	return NewRepository(cacheDir)
}
