package domain

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/opencontainers/go-digest"
)

// CacheKey identifies the cache entries of one kind of build invocation.
// It is derived from the build root, the requested tasks and the startup parameters that
// change what the configuration phase produces. Two invocations with the same key compete
// for the same entry; the fingerprint decides whether the entry can be reused.
type CacheKey struct {
	d digest.Digest
}

// CacheKeyParams are the identity inputs of a build invocation.
type CacheKeyParams struct {
	// RootDir is the absolute build root.
	RootDir string
	// Tasks are the requested task selectors, in the order the user gave them.
	Tasks []string
	// StartupParams are the startup parameters that influence configuration, as key=value pairs.
	StartupParams map[string]string
}

// NewCacheKey computes the cache key for the given invocation parameters.
// Requested task order is significant because it drives execution order; parameter order is not.
func NewCacheKey(p CacheKeyParams) CacheKey {
	var b strings.Builder
	b.WriteString("recall/")
	b.WriteString(SchemaVersion)
	b.WriteByte(0)
	b.WriteString(filepath.Clean(p.RootDir))
	b.WriteByte(0)
	for _, t := range p.Tasks {
		b.WriteString(t)
		b.WriteByte(0)
	}
	b.WriteByte(0)

	keys := make([]string, 0, len(p.StartupParams))
	for k := range p.StartupParams {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(p.StartupParams[k])
		b.WriteByte(0)
	}

	return CacheKey{d: digest.FromString(b.String())}
}

// ParseCacheKey restores a key from its String form.
func ParseCacheKey(s string) (CacheKey, error) {
	d := digest.NewDigestFromEncoded(digest.SHA256, s)
	if err := d.Validate(); err != nil {
		return CacheKey{}, err
	}
	return CacheKey{d: d}, nil
}

// String returns the hex encoded key; it is safe to use as a directory name.
func (k CacheKey) String() string {
	return k.d.Encoded()
}

// IsZero reports whether the key was never computed.
func (k CacheKey) IsZero() bool {
	return k.d == ""
}
