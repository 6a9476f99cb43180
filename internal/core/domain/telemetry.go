package domain

import "strings"

// LogLevel is the severity of a line written to a telemetry vertex. Values match log/slog.
type LogLevel int

const (
	// LogLevelDebug is debug output.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo is regular task output.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn is a warning.
	LogLevelWarn LogLevel = 4
	// LogLevelError is error output.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Vertex names of the host stages.
const (
	VertexLookup    = "lookup"
	VertexLoad      = "load"
	VertexConfigure = "configure"
	VertexStore     = "store"
	VertexExecute   = "execute"
)

const taskVertexPrefix = "task "

// TaskVertexName returns the vertex name of an executed or skipped task.
func TaskVertexName(t *Task) string {
	return taskVertexPrefix + t.Path()
}

// IsTaskVertex reports whether name was produced by TaskVertexName.
func IsTaskVertex(name string) bool {
	return strings.HasPrefix(name, taskVertexPrefix)
}
