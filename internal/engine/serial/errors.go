package serial

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrUnregisteredType is returned when the graph contains a type without a codec.
	ErrUnregisteredType = zerr.New("type is not registered for serialization")

	// ErrUnsupportedType is returned for kinds that cannot be persisted (funcs, channels, unsafe pointers).
	ErrUnsupportedType = zerr.New("type cannot be serialized")

	// ErrDuplicateRegistration is returned when a type or a name is registered twice.
	ErrDuplicateRegistration = zerr.New("duplicate codec registration")

	// ErrCorruptStream is returned when a stream does not decode into a consistent graph.
	ErrCorruptStream = zerr.New("corrupt serialized graph")

	// ErrSchemaMismatch is returned when a stream was written with another schema version.
	ErrSchemaMismatch = zerr.New("serialized graph schema version mismatch")

	// ErrConstructionFailed is returned when a constructor codec rejects its decoded arguments.
	ErrConstructionFailed = zerr.New("failed to construct decoded value")
)

// classified joins kind with a detail error so callers can match kind with errors.Is.
func classified(kind error, detail string, kv ...string) error {
	err := zerr.New(detail)
	for i := 0; i+1 < len(kv); i += 2 {
		err = zerr.With(err, kv[i], kv[i+1])
	}
	return errors.Join(kind, err)
}

func isClassified(err error) bool {
	return errors.Is(err, ErrCorruptStream) ||
		errors.Is(err, ErrSchemaMismatch) ||
		errors.Is(err, ErrConstructionFailed)
}
