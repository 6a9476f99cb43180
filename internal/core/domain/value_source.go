package domain

// Value source types understood by the live environment.
const (
	// SourceExec runs a command in the build root; the value is its trimmed standard output.
	SourceExec = "exec"
	// SourceEnvPrefix lists every environment variable with a prefix as sorted NAME=VALUE lines.
	SourceEnvPrefix = "envPrefix"
	// SourceGlob lists the sorted root-relative matches of glob patterns.
	SourceGlob = "glob"
	// SourceTree is the content hash of a directory tree.
	SourceTree = "tree"
)
