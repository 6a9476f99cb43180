package fs

import (
	"path/filepath"
	"slices"

	"go.trai.ch/zerr"
)

// Resolver expands glob patterns relative to a root directory.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Glob returns the sorted, de-duplicated matches of patterns below root as root-relative
// slash paths. Unlike task inputs, a pattern without matches is not an error.
func (r *Resolver) Glob(root string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "pattern", pattern)
		}
		for _, m := range matches {
			rel, err := filepath.Rel(root, m)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to relativize match"), "path", m)
			}
			rel = filepath.ToSlash(rel)
			if !seen[rel] {
				seen[rel] = true
				out = append(out, rel)
			}
		}
	}
	slices.Sort(out)
	return out, nil
}
