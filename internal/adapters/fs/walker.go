// Package fs provides the file system side of the input environment: walking, globbing
// and snapshotting files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/recall/internal/core/domain"
)

// skippedDirs are never part of a directory tree input.
var skippedDirs = map[string]bool{
	".git":               true,
	".jj":                true,
	domain.RecallDirName: true,
}

// Walker walks directory trees in lexical order.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root. Paths include root.
// Directories in skippedDirs and entries whose base name matches one of ignores are skipped.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && ignored(d, ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func ignored(d fs.DirEntry, ignores []string) bool {
	name := d.Name()
	if d.IsDir() && skippedDirs[name] {
		return true
	}
	for _, pattern := range ignores {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
