package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists in a project.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrProjectAlreadyExists is returned when two projects share the same name in a plan.
	ErrProjectAlreadyExists = zerr.New("project already exists")

	// ErrMissingDependency is returned when a task references a dependency that doesn't exist in the plan.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the task dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not found in the plan.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrNoTargetsSpecified is returned when no targets are specified for the run command.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrReservedTaskName is returned when a task uses a reserved name (e.g., "all").
	ErrReservedTaskName = zerr.New("task name 'all' is reserved")

	// ErrInvalidTaskName is returned when a task name is empty or contains ':'.
	ErrInvalidTaskName = zerr.New("invalid task name")

	// ErrConfigReadFailed is returned when a build script cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read build script")

	// ErrConfigParseFailed is returned when a build script cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse build script")

	// ErrConfigNotFound is returned when no build script exists at the build root.
	ErrConfigNotFound = zerr.New("could not find recall.yaml")

	// ErrInvalidPlaceholder is returned when a build script contains a malformed ${kind:arg} expression.
	ErrInvalidPlaceholder = zerr.New("invalid placeholder")

	// ErrInvalidCondition is returned when an onlyIf expression is neither a boolean nor a comparison.
	ErrInvalidCondition = zerr.New("invalid onlyIf condition")

	// ErrInvalidProjectName is returned when a project name contains characters other than letters, digits, '_', '-', '.' and '/'.
	ErrInvalidProjectName = zerr.New("invalid project name")

	// ErrConfigurationFailed is returned when the configuration phase does not complete.
	ErrConfigurationFailed = zerr.New("configuration failed")

	// ErrPropertiesReadFailed is returned when the startup properties file cannot be read or parsed.
	ErrPropertiesReadFailed = zerr.New("failed to read startup properties")

	// ErrValueSourceFailed is returned when a value source cannot produce its value.
	ErrValueSourceFailed = zerr.New("value source failed")

	// ErrUnknownValueSource is returned when a value source type is not registered.
	ErrUnknownValueSource = zerr.New("unknown value source")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrSerializationFailed is returned when the build plan cannot be written to the cache.
	ErrSerializationFailed = zerr.New("failed to serialize build plan")

	// ErrCacheEntryUnreadable is returned when a stored entry cannot be decoded; it always forces a miss.
	ErrCacheEntryUnreadable = zerr.New("cache entry unreadable")

	// ErrCacheEntryNotFound is returned when no committed entry exists for a cache key.
	ErrCacheEntryNotFound = zerr.New("cache entry not found")

	// ErrRepositoryIO is returned when the cache repository fails to write.
	ErrRepositoryIO = zerr.New("cache repository I/O failed")

	// ErrLockFailed is returned when the per-key write lock cannot be acquired.
	ErrLockFailed = zerr.New("failed to lock cache entry")

	// ErrWriteHandleClosed is returned when a write handle is used after commit or discard.
	ErrWriteHandleClosed = zerr.New("cache write handle already closed")

	// ErrBarrierCrossed is returned when the configuration barrier is crossed a second time.
	ErrBarrierCrossed = zerr.New("configuration barrier already crossed")

	// ErrAccessViolation is returned in strict mode when configuration-time code reads execution-only task state.
	ErrAccessViolation = zerr.New("task execution state accessed at configuration time")

	// ErrBuildExecutionFailed is returned when the build execution fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrTaskExecutionFailed is returned when a task execution fails.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrInvalidRunOptions is returned when run options fail validation.
	ErrInvalidRunOptions = zerr.New("invalid run options")
)
