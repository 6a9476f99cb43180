package domain

import (
	"fmt"
	"strings"
	"time"
)

// SchemaVersion stamps every persisted cache file. Any change to the plan model, the codec set
// or the fingerprint layout must bump it; a mismatch is a forced miss, never a migration.
const SchemaVersion = "3"

// EntryKind discriminates the closed set of fingerprint entry variants.
type EntryKind uint8

const (
	// KindFile is a file whose content (and metadata) was read during configuration.
	KindFile EntryKind = iota + 1
	// KindEnvVar is an environment variable read during configuration.
	KindEnvVar
	// KindSystemProperty is a startup property read during configuration.
	KindSystemProperty
	// KindValueSource is the output of a value source obtained during configuration.
	KindValueSource
	// KindUndeclared is an input observed without being declared, such as a file existence check.
	KindUndeclared
)

// String returns the display name of the kind.
func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindEnvVar:
		return "environment variable"
	case KindSystemProperty:
		return "system property"
	case KindValueSource:
		return "value source"
	case KindUndeclared:
		return "undeclared input"
	default:
		return "unknown"
	}
}

// FingerprintEntry is a single observed configuration input.
// Entries are immutable once recorded. The Key identifies the input within its kind and
// is used to keep only the first observation of a repeated read.
type FingerprintEntry interface {
	Kind() EntryKind
	Key() string
	// Describe returns the human readable description used in invalidation reasons.
	Describe() string
}

// ModTimePolicy selects how a file input is compared against the live file system.
type ModTimePolicy uint8

const (
	// PolicyContent always compares the content hash.
	PolicyContent ModTimePolicy = iota
	// PolicyModTime trusts an unchanged size and modification time and only rehashes otherwise.
	PolicyModTime
)

// FileInput records a file read.
type FileInput struct {
	Path    string
	Exists  bool
	Hash    uint64
	Size    int64
	ModTime time.Time
	Policy  ModTimePolicy
}

// Kind implements FingerprintEntry.
func (f FileInput) Kind() EntryKind { return KindFile }

// Key implements FingerprintEntry.
func (f FileInput) Key() string { return f.Path }

// Describe implements FingerprintEntry.
func (f FileInput) Describe() string { return fmt.Sprintf("file '%s'", f.Path) }

// EnvVar records an environment variable read. Present distinguishes unset from empty.
type EnvVar struct {
	Name    string
	Value   string
	Present bool
}

// Kind implements FingerprintEntry.
func (e EnvVar) Kind() EntryKind { return KindEnvVar }

// Key implements FingerprintEntry.
func (e EnvVar) Key() string { return e.Name }

// Describe implements FingerprintEntry.
func (e EnvVar) Describe() string { return fmt.Sprintf("environment variable '%s'", e.Name) }

// SystemProperty records a startup property read.
type SystemProperty struct {
	Name    string
	Value   string
	Present bool
}

// Kind implements FingerprintEntry.
func (p SystemProperty) Kind() EntryKind { return KindSystemProperty }

// Key implements FingerprintEntry.
func (p SystemProperty) Key() string { return p.Name }

// Describe implements FingerprintEntry.
func (p SystemProperty) Describe() string { return fmt.Sprintf("system property '%s'", p.Name) }

// ValueSourceDescriptor identifies a value source invocation: its registered type and parameters.
type ValueSourceDescriptor struct {
	Type   string
	Params []string
}

// String returns the descriptor in its script form, e.g. "exec:git rev-parse HEAD".
func (d ValueSourceDescriptor) String() string {
	return d.Type + ":" + strings.Join(d.Params, " ")
}

// Key identifies the descriptor unambiguously. Unlike String, parameters containing spaces
// cannot collide with split parameters.
func (d ValueSourceDescriptor) Key() string {
	var b strings.Builder
	b.WriteString(d.Type)
	for _, p := range d.Params {
		b.WriteByte(0)
		b.WriteString(p)
	}
	return b.String()
}

// ValueSource records the value produced by a value source during configuration.
type ValueSource struct {
	Descriptor ValueSourceDescriptor
	Value      string
}

// Kind implements FingerprintEntry.
func (v ValueSource) Kind() EntryKind { return KindValueSource }

// Key implements FingerprintEntry.
func (v ValueSource) Key() string { return v.Descriptor.Key() }

// Describe implements FingerprintEntry.
func (v ValueSource) Describe() string {
	return fmt.Sprintf("value from source '%s'", v.Descriptor.String())
}

// UndeclaredKind enumerates the undeclared inputs that can be re-evaluated.
type UndeclaredKind uint8

const (
	// UndeclaredOpaque cannot be re-evaluated and always invalidates.
	UndeclaredOpaque UndeclaredKind = iota
	// UndeclaredFileExists is a file existence check.
	UndeclaredFileExists
)

// UndeclaredDescriptor identifies an undeclared input.
type UndeclaredDescriptor struct {
	Kind   UndeclaredKind
	Target string
}

// UndeclaredInput records an input read without a declaration.
type UndeclaredInput struct {
	Descriptor UndeclaredDescriptor
	Observed   string
}

// Kind implements FingerprintEntry.
func (u UndeclaredInput) Kind() EntryKind { return KindUndeclared }

// Key implements FingerprintEntry.
func (u UndeclaredInput) Key() string {
	return fmt.Sprintf("%d:%s", u.Descriptor.Kind, u.Descriptor.Target)
}

// Describe implements FingerprintEntry.
func (u UndeclaredInput) Describe() string {
	switch u.Descriptor.Kind {
	case UndeclaredFileExists:
		return fmt.Sprintf("existence of file '%s'", u.Descriptor.Target)
	default:
		return fmt.Sprintf("undeclared input '%s'", u.Descriptor.Target)
	}
}

// Fingerprint is the ordered list of entries observed during one configuration run.
type Fingerprint struct {
	Version string
	Entries []FingerprintEntry
}

// NewFingerprint creates an empty fingerprint stamped with the current schema version.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{Version: SchemaVersion}
}

// Len returns the number of entries.
func (f *Fingerprint) Len() int {
	return len(f.Entries)
}
