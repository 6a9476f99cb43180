package env_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/recall/internal/adapters/env"
	"go.trai.ch/recall/internal/adapters/fs"
	"go.trai.ch/recall/internal/core/domain"
)

func newEnvironment(t *testing.T, props map[string]string, opts ...env.Option) (*env.Environment, string) {
	t.Helper()
	root := t.TempDir()
	e := env.New(root, fs.NewHasher(fs.NewWalker()), fs.NewResolver(), props, opts...)
	return e, root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
}

func TestLoadProperties(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.PropertiesFileName)
	writeFile(t, path, `
version = "1.2"
debug = true
retries = 3
tags = ["a", "b"]

[release]
channel = "beta"

[release.signing]
key = "k1"
`)

	props, err := env.LoadProperties(path, map[string]string{"version": "2.0"})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"version":             "2.0",
		"debug":               "true",
		"retries":             "3",
		"tags":                "a,b",
		"release.channel":     "beta",
		"release.signing.key": "k1",
	}, props)
}

func TestLoadProperties_MissingFile(t *testing.T) {
	props, err := env.LoadProperties(filepath.Join(t.TempDir(), "absent.toml"), map[string]string{"a": "1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1"}, props)
}

func TestLoadProperties_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.PropertiesFileName)
	writeFile(t, path, "version = ")

	_, err := env.LoadProperties(path, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPropertiesReadFailed.Error())
}

func TestParseOverrides(t *testing.T) {
	got, err := env.ParseOverrides([]string{"a=1", "flag", "b=x=y", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "flag": "true", "b": "x=y", "empty": ""}, got)

	_, err = env.ParseOverrides([]string{"=1"})
	assert.ErrorIs(t, err, domain.ErrInvalidRunOptions)
}

func TestEnvironment_LookupEnv(t *testing.T) {
	e, _ := newEnvironment(t, nil, env.WithEnviron([]string{"CI=true", "EMPTY=", "CIRCLE=1"}))

	v, ok := e.LookupEnv("CI")
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	v, ok = e.LookupEnv("EMPTY")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = e.LookupEnv("MISSING")
	assert.False(t, ok)
}

func TestEnvironment_Property(t *testing.T) {
	e, _ := newEnvironment(t, map[string]string{"channel": "beta"})

	v, ok := e.Property("channel")
	assert.True(t, ok)
	assert.Equal(t, "beta", v)

	_, ok = e.Property("other")
	assert.False(t, ok)
}

func TestEnvironment_Files(t *testing.T) {
	e, root := newEnvironment(t, nil)
	writeFile(t, filepath.Join(root, "conf", "app.yaml"), "name: app")

	assert.True(t, e.Exists("conf/app.yaml"))
	assert.False(t, e.Exists("conf/missing.yaml"))

	data, err := e.ReadFile("conf/app.yaml")
	require.NoError(t, err)
	assert.Equal(t, "name: app", string(data))

	_, err = e.ReadFile("conf/missing.yaml")
	assert.ErrorContains(t, err, domain.ErrFileOpenFailed.Error())

	snap, err := e.Snapshot(t.Context(), "conf/app.yaml", domain.PolicyContent)
	require.NoError(t, err)
	assert.Equal(t, "conf/app.yaml", snap.Path)
	assert.True(t, snap.Exists)
	assert.NotZero(t, snap.Hash)

	snap, err = e.Snapshot(t.Context(), "conf/missing.yaml", domain.PolicyContent)
	require.NoError(t, err)
	assert.Equal(t, "conf/missing.yaml", snap.Path)
	assert.False(t, snap.Exists)
}

func TestEnvironment_Obtain(t *testing.T) {
	e, root := newEnvironment(t, nil, env.WithEnviron([]string{
		"PATH=" + os.Getenv("PATH"),
		"APP_B=2",
		"APP_A=1",
		"OTHER=x",
	}))
	writeFile(t, filepath.Join(root, "src", "a.go"), "package a")
	writeFile(t, filepath.Join(root, "src", "b.go"), "package b")

	tests := []struct {
		name   string
		source domain.ValueSourceDescriptor
		want   string
	}{
		{
			name:   "exec trims output",
			source: domain.ValueSourceDescriptor{Type: domain.SourceExec, Params: []string{"echo", "hello", "world"}},
			want:   "hello world",
		},
		{
			name:   "env prefix is sorted",
			source: domain.ValueSourceDescriptor{Type: domain.SourceEnvPrefix, Params: []string{"APP_"}},
			want:   "APP_A=1\nAPP_B=2",
		},
		{
			name:   "glob",
			source: domain.ValueSourceDescriptor{Type: domain.SourceGlob, Params: []string{"src/*.go"}},
			want:   "src/a.go\nsrc/b.go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Obtain(t.Context(), tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvironment_Obtain_Tree(t *testing.T) {
	e, root := newEnvironment(t, nil)
	writeFile(t, filepath.Join(root, "assets", "logo.svg"), "<svg/>")
	source := domain.ValueSourceDescriptor{Type: domain.SourceTree, Params: []string{"assets"}}

	first, err := e.Obtain(t.Context(), source)
	require.NoError(t, err)

	again, err := e.Obtain(t.Context(), source)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	writeFile(t, filepath.Join(root, "assets", "icon.svg"), "<svg></svg>")
	changed, err := e.Obtain(t.Context(), source)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestEnvironment_Obtain_Errors(t *testing.T) {
	e, _ := newEnvironment(t, nil)

	_, err := e.Obtain(t.Context(), domain.ValueSourceDescriptor{Type: "ldap"})
	assert.ErrorIs(t, err, domain.ErrUnknownValueSource)

	_, err = e.Obtain(t.Context(), domain.ValueSourceDescriptor{Type: domain.SourceExec, Params: []string{"false"}})
	require.ErrorIs(t, err, domain.ErrValueSourceFailed)

	_, err = e.Obtain(t.Context(), domain.ValueSourceDescriptor{Type: domain.SourceExec})
	require.ErrorIs(t, err, domain.ErrValueSourceFailed)
}

func TestFactory_Environment(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, domain.PropertiesFileName), "channel = \"beta\"\nlevel = \"low\"\n")

	factory := env.NewFactory(fs.NewHasher(fs.NewWalker()), fs.NewResolver())
	e, err := factory.Environment(root, map[string]string{"level": "high"})
	require.NoError(t, err)

	v, _ := e.Property("channel")
	assert.Equal(t, "beta", v)
	v, _ = e.Property("level")
	assert.Equal(t, "high", v)
}
