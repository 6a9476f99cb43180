// Package env implements the live environment that configuration inputs are read from
// and later re-checked against: files, process environment, startup properties and
// value sources.
package env

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/adapters/fs"
	"go.trai.ch/recall/internal/core/domain"
	"go.trai.ch/recall/internal/core/ports"
)

// Environment implements ports.InputEnvironment for one build root.
// Relative paths are resolved against the root but reported as given.
type Environment struct {
	root       string
	hasher     *fs.Hasher
	resolver   *fs.Resolver
	properties map[string]string
	environ    func() []string
	sources    map[string]SourceFunc
}

// Option configures an Environment.
type Option func(*Environment)

// WithEnviron replaces the process environment, as "NAME=VALUE" pairs.
func WithEnviron(environ []string) Option {
	return func(e *Environment) {
		e.environ = func() []string { return environ }
	}
}

// WithSource registers an additional value source type.
func WithSource(name string, fn SourceFunc) Option {
	return func(e *Environment) {
		e.sources[name] = fn
	}
}

// New creates an Environment rooted at root with the given startup properties.
func New(root string, hasher *fs.Hasher, resolver *fs.Resolver, properties map[string]string, opts ...Option) *Environment {
	e := &Environment{
		root:       root,
		hasher:     hasher,
		resolver:   resolver,
		properties: properties,
		environ:    os.Environ,
		sources:    defaultSources(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Root returns the build root.
func (e *Environment) Root() string {
	return e.root
}

func (e *Environment) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(e.root, path)
}

// Snapshot implements ports.InputEnvironment.
func (e *Environment) Snapshot(ctx context.Context, path string, policy domain.ModTimePolicy) (domain.FileInput, error) {
	snap, err := e.hasher.Snapshot(ctx, e.abs(path), policy)
	snap.Path = path
	return snap, err
}

// ReadFile implements ports.InputEnvironment.
func (e *Environment) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(e.abs(path))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	return data, nil
}

// Exists implements ports.InputEnvironment.
func (e *Environment) Exists(path string) bool {
	_, err := os.Stat(e.abs(path))
	return err == nil
}

// LookupEnv implements ports.InputEnvironment.
func (e *Environment) LookupEnv(name string) (string, bool) {
	prefix := name + "="
	for _, kv := range e.environ() {
		if value, ok := strings.CutPrefix(kv, prefix); ok {
			return value, true
		}
	}
	return "", false
}

// Property implements ports.InputEnvironment.
func (e *Environment) Property(name string) (string, bool) {
	value, ok := e.properties[name]
	return value, ok
}

// Obtain implements ports.InputEnvironment.
func (e *Environment) Obtain(ctx context.Context, source domain.ValueSourceDescriptor) (string, error) {
	fn, ok := e.sources[source.Type]
	if !ok {
		return "", errors.Join(domain.ErrUnknownValueSource, zerr.With(zerr.New("no such value source "+source.Type), "type", source.Type))
	}
	value, err := fn(ctx, e, source.Params)
	if err != nil {
		return "", errors.Join(domain.ErrValueSourceFailed, zerr.With(err, "source", source.String()))
	}
	return value, nil
}

// Factory implements ports.InputEnvironmentFactory.
type Factory struct {
	hasher   *fs.Hasher
	resolver *fs.Resolver
	opts     []Option
}

// NewFactory creates a Factory. The options are applied to every Environment it creates.
func NewFactory(hasher *fs.Hasher, resolver *fs.Resolver, opts ...Option) *Factory {
	return &Factory{hasher: hasher, resolver: resolver, opts: opts}
}

// Environment loads the startup properties of rootDir and returns its live environment.
func (f *Factory) Environment(rootDir string, overrides map[string]string) (ports.InputEnvironment, error) {
	props, err := LoadProperties(filepath.Join(rootDir, domain.PropertiesFileName), overrides)
	if err != nil {
		return nil, err
	}
	return New(rootDir, f.hasher, f.resolver, props, f.opts...), nil
}
