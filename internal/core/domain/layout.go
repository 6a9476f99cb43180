package domain

import "path/filepath"

const (
	// RecallDirName is the name of the internal workspace directory.
	RecallDirName = ".recall"

	// CacheDirName is the name of the configuration cache directory.
	CacheDirName = "cache"

	// ScriptFileName is the name of the build script in every project directory.
	ScriptFileName = "recall.yaml"

	// PropertiesFileName is the name of the startup properties file at the build root.
	PropertiesFileName = "recall.properties.toml"

	// FingerprintFileName is the name of the fingerprint file inside a cache entry.
	FingerprintFileName = "fingerprint.bin"

	// ModelFileName is the name of the serialized build plan inside a cache entry.
	ModelFileName = "model.bin"

	// ProblemsFileName is the name of the problems report stored inside an entry directory.
	ProblemsFileName = "problems.json"

	// CurrentFileName names the file that points at the committed entry directory of a key.
	CurrentFileName = "current"

	// LockFileName is the name of the per-key writer lock file.
	LockFileName = ".lock"

	// StagingPrefix prefixes entry directories that have not been committed yet.
	StagingPrefix = "staging-"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultRecallPath returns the default root directory for recall metadata.
func DefaultRecallPath() string {
	return RecallDirName
}

// DefaultCachePath returns the default path for the configuration cache.
// It joins .recall and cache.
func DefaultCachePath() string {
	return filepath.Join(RecallDirName, CacheDirName)
}
