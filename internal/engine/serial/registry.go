// Package serial persists arbitrary build plan object graphs.
//
// A graph is written depth-first. Every pointer is a node: the first time a pointer is seen it
// receives the next local id and its pointee is written in full; later occurrences write only
// the id. Shared references and cycles are the same case, "a later node refers to an earlier id".
//
// The reader allocates each node before decoding its contents, so a back-reference to a node
// still under construction resolves to its final address.
//
// Struct types must be registered with one of three construction strategies:
//   - Bean: the instance is allocated without running any constructor and its fields are
//     injected directly, unexported ones included.
//   - Constructor: a captured constructor is called with decoded arguments.
//   - Value: the codec reads and writes the whole value itself.
package serial

import (
	"reflect"
	"unsafe"

	"github.com/vmihailenco/msgpack/v5"
)

// Strategy is the way a registered type is reconstructed.
type Strategy uint8

const (
	// StrategyBean allocates an uninitialized instance and injects its fields.
	StrategyBean Strategy = iota
	// StrategyConstructor calls a captured constructor with decoded arguments.
	StrategyConstructor
	// StrategyValue delegates the whole value to the codec.
	StrategyValue
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyBean:
		return "bean"
	case StrategyConstructor:
		return "constructor"
	default:
		return "value"
	}
}

const transientTag = "transient"

type field struct {
	name  string
	index int
}

type binding struct {
	name     string
	typ      reflect.Type
	strategy Strategy

	// bean
	fields []field

	// constructor
	argType   reflect.Type
	args      func(v reflect.Value) reflect.Value
	construct func(args reflect.Value) (reflect.Value, error)

	// value
	encode func(enc *msgpack.Encoder, v reflect.Value) error
	decode func(dec *msgpack.Decoder) (reflect.Value, error)
}

// Registry maps types to codecs. It is populated once, before any graph is written or read,
// and is safe for concurrent use afterwards.
type Registry struct {
	byType map[reflect.Type]*binding
	byName map[string]*binding
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]*binding),
		byName: make(map[string]*binding),
	}
}

// Strategy reports the strategy registered for t.
func (r *Registry) Strategy(t reflect.Type) (Strategy, bool) {
	b, ok := r.byType[t]
	if !ok {
		return 0, false
	}
	return b.strategy, true
}

// Names returns the registered type names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}

func (r *Registry) add(b *binding) error {
	if _, exists := r.byType[b.typ]; exists {
		return classified(ErrDuplicateRegistration, "type "+b.typ.String()+" already registered", "type", b.typ.String())
	}
	if _, exists := r.byName[b.name]; exists {
		return classified(ErrDuplicateRegistration, "name "+b.name+" already registered", "name", b.name)
	}
	r.byType[b.typ] = b
	r.byName[b.name] = b
	return nil
}

// RegisterBean registers struct type T for raw field injection.
// Fields tagged `recall:"transient"` are neither written nor injected; they decode as zero values.
func RegisterBean[T any](r *Registry, name string) error {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return classified(ErrUnsupportedType, "bean type must be a struct: "+t.String(), "type", t.String())
	}
	return r.add(&binding{
		name:     name,
		typ:      t,
		strategy: StrategyBean,
		fields:   beanFields(t),
	})
}

// RegisterConstructor registers T to be rebuilt by construct from the arguments captured by args.
// A is written like any other value; when A is a struct it is registered as a bean named name+"#args".
func RegisterConstructor[T, A any](r *Registry, name string, args func(T) A, construct func(A) (T, error)) error {
	t := reflect.TypeFor[T]()
	at := reflect.TypeFor[A]()
	if at.Kind() == reflect.Struct {
		if _, ok := r.byType[at]; !ok {
			if err := r.add(&binding{name: name + "#args", typ: at, strategy: StrategyBean, fields: beanFields(at)}); err != nil {
				return err
			}
		}
	}
	return r.add(&binding{
		name:     name,
		typ:      t,
		strategy: StrategyConstructor,
		argType:  at,
		args: func(v reflect.Value) reflect.Value {
			return reflect.ValueOf(args(v.Interface().(T)))
		},
		construct: func(a reflect.Value) (reflect.Value, error) {
			v, err := construct(a.Interface().(A))
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(&v).Elem(), nil
		},
	})
}

// RegisterValue registers T with a codec that owns the whole encoding.
func RegisterValue[T any](
	r *Registry,
	name string,
	encode func(*msgpack.Encoder, T) error,
	decode func(*msgpack.Decoder) (T, error),
) error {
	return r.add(&binding{
		name:     name,
		typ:      reflect.TypeFor[T](),
		strategy: StrategyValue,
		encode: func(enc *msgpack.Encoder, v reflect.Value) error {
			return encode(enc, v.Interface().(T))
		},
		decode: func(dec *msgpack.Decoder) (reflect.Value, error) {
			v, err := decode(dec)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(&v).Elem(), nil
		},
	})
}

func beanFields(t reflect.Type) []field {
	fields := make([]field, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Name == "_" || f.Tag.Get("recall") == transientTag {
			continue
		}
		fields = append(fields, field{name: f.Name, index: i})
	}
	return fields
}

// injectable returns a writable view of field i of the addressable struct v, unexported fields
// included. It is the only place the engine steps outside the reflect visibility rules.
func injectable(v reflect.Value, i int) reflect.Value {
	f := v.Field(i)
	if f.CanSet() {
		return f
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}

// addressable returns v itself when it can be addressed, or an addressable copy.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}
