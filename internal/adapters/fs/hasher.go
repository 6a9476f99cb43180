package fs

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/viccon/sturdyc"
	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/core/domain"
)

const (
	memoCapacity   = 10_000
	memoShards     = 8
	memoTTL        = time.Hour
	memoEvictAfter = 10
)

// Hasher snapshots files with XXHash content hashes.
// Under PolicyModTime hashes are memoized by path, size and modification time, so an unchanged
// file is read once per process even when it is both recorded and checked. PolicyContent and
// directory trees always read the files.
type Hasher struct {
	walker *Walker
	memo   *sturdyc.Client[uint64]
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{
		walker: walker,
		memo:   sturdyc.New[uint64](memoCapacity, memoShards, memoTTL, memoEvictAfter),
	}
}

// Snapshot implements the file part of ports.InputEnvironment.
// A missing path is a valid snapshot with Exists false. Directories hash their whole tree
// and are always compared by content.
func (h *Hasher) Snapshot(ctx context.Context, path string, policy domain.ModTimePolicy) (domain.FileInput, error) {
	snap := domain.FileInput{Path: path, Policy: policy}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return snap, nil
		}
		return snap, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
	}

	snap.Exists = true
	snap.Size = info.Size()
	snap.ModTime = info.ModTime()
	if info.IsDir() {
		// A directory's own metadata does not change with nested file content.
		snap.Policy = domain.PolicyContent
		snap.Hash, err = h.HashTree(ctx, path, nil)
	} else {
		snap.Hash, err = h.HashFile(ctx, path, info, policy)
	}
	return snap, err
}

// HashFile returns the content hash of a file described by info.
// Only PolicyModTime may answer from the memo.
func (h *Hasher) HashFile(ctx context.Context, path string, info iofs.FileInfo, policy domain.ModTimePolicy) (uint64, error) {
	if policy != domain.PolicyModTime {
		return computeFileHash(path)
	}
	key := path + "|" + strconv.FormatInt(info.Size(), 10) + "|" + strconv.FormatInt(info.ModTime().UnixNano(), 10)
	return h.memo.GetOrFetch(ctx, key, func(context.Context) (uint64, error) {
		return computeFileHash(path)
	})
}

// HashTree combines the relative paths and content hashes of every file below root.
func (h *Hasher) HashTree(ctx context.Context, root string, ignores []string) (uint64, error) {
	digest := xxhash.New()
	for path := range h.walker.WalkFiles(root, ignores) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		sum, err := computeFileHash(path)
		if err != nil {
			return 0, err
		}
		rel, _ := filepath.Rel(root, path)
		_, _ = digest.WriteString(filepath.ToSlash(rel))
		_, _ = digest.Write([]byte{0})
		_ = binary.Write(digest, binary.LittleEndian, sum)
	}
	return digest.Sum64(), nil
}

func computeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}
	return hasher.Sum64(), nil
}
