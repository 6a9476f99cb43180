package serial

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/zerr"
)

const streamMagic = "recall-graph"

type tag uint8

const (
	tagNil tag = iota + 1
	tagRef
	tagNode
	tagValue
)

type nodeKey struct {
	ptr uintptr
	typ reflect.Type
}

// Encoder writes object graphs to a stream.
type Encoder struct {
	reg     *Registry
	enc     *msgpack.Encoder
	version string
	seen    map[nodeKey]uint64
	path    []string
}

// NewEncoder returns an encoder stamping streams with schema version.
func NewEncoder(w io.Writer, reg *Registry, version string) *Encoder {
	return &Encoder{
		reg:     reg,
		enc:     msgpack.NewEncoder(w),
		version: version,
		seen:    make(map[nodeKey]uint64),
	}
}

// Encode writes root and everything reachable from it.
// Any unregistered or unsupported type aborts the write with the offending field path attached.
func (e *Encoder) Encode(root any) error {
	if err := e.enc.EncodeString(streamMagic); err != nil {
		return zerr.Wrap(err, "failed to write stream header")
	}
	if err := e.enc.EncodeString(e.version); err != nil {
		return zerr.Wrap(err, "failed to write stream header")
	}

	e.path = append(e.path[:0], "root")
	if err := e.writeDynamic(reflect.ValueOf(&root).Elem()); err != nil {
		return err
	}
	if err := e.enc.EncodeUint(uint64(len(e.seen))); err != nil {
		return zerr.Wrap(err, "failed to write stream trailer")
	}
	return nil
}

// Marshal encodes root into a byte slice.
func Marshal(reg *Registry, version string, root any) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, reg, version).Encode(root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) fail(kind error, t reflect.Type) error {
	path := strings.Join(e.path, "")
	return classified(kind, "cannot encode "+t.String()+" at "+path, "field_path", path, "type", t.String())
}

func (e *Encoder) push(seg string) { e.path = append(e.path, seg) }
func (e *Encoder) pop()            { e.path = e.path[:len(e.path)-1] }

//nolint:cyclop,gocyclo // one arm per reflect kind
func (e *Encoder) writeValue(v reflect.Value) error {
	t := v.Type()
	switch t.Kind() {
	case reflect.Bool:
		return e.enc.EncodeBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return e.enc.EncodeInt(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return e.enc.EncodeUint(v.Uint())
	case reflect.Float32:
		return e.enc.EncodeFloat32(float32(v.Float()))
	case reflect.Float64:
		return e.enc.EncodeFloat64(v.Float())
	case reflect.String:
		return e.enc.EncodeString(v.String())
	case reflect.Slice:
		return e.writeSlice(v)
	case reflect.Array:
		return e.writeElems(v)
	case reflect.Map:
		return e.writeMap(v)
	case reflect.Pointer:
		return e.writePointer(v)
	case reflect.Interface:
		return e.writeDynamic(v)
	case reflect.Struct:
		b, ok := e.reg.byType[t]
		if !ok {
			return e.fail(ErrUnregisteredType, t)
		}
		return e.writeStruct(b, v)
	default:
		return e.fail(ErrUnsupportedType, t)
	}
}

func (e *Encoder) writeSlice(v reflect.Value) error {
	if v.IsNil() {
		return e.enc.EncodeNil()
	}
	if v.Type().Elem().Kind() == reflect.Uint8 {
		return e.enc.EncodeBytes(v.Bytes())
	}
	return e.writeElems(v)
}

func (e *Encoder) writeElems(v reflect.Value) error {
	if err := e.enc.EncodeArrayLen(v.Len()); err != nil {
		return err
	}
	for i := range v.Len() {
		e.push(fmt.Sprintf("[%d]", i))
		if err := e.writeValue(v.Index(i)); err != nil {
			return err
		}
		e.pop()
	}
	return nil
}

// writeMap writes entries in key order so equal maps produce equal bytes.
func (e *Encoder) writeMap(v reflect.Value) error {
	if v.IsNil() {
		return e.enc.EncodeNil()
	}
	keys := v.MapKeys()
	if err := sortKeys(keys); err != nil {
		return e.fail(err, v.Type().Key())
	}
	if err := e.enc.EncodeMapLen(len(keys)); err != nil {
		return err
	}
	for _, k := range keys {
		e.push(fmt.Sprintf("[%v]", k))
		if err := e.writeValue(k); err != nil {
			return err
		}
		if err := e.writeValue(v.MapIndex(k)); err != nil {
			return err
		}
		e.pop()
	}
	return nil
}

func sortKeys(keys []reflect.Value) error {
	if len(keys) == 0 {
		return nil
	}
	switch keys[0].Kind() {
	case reflect.String:
		slices.SortFunc(keys, func(a, b reflect.Value) int { return strings.Compare(a.String(), b.String()) })
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		slices.SortFunc(keys, func(a, b reflect.Value) int { return cmp.Compare(a.Int(), b.Int()) })
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		slices.SortFunc(keys, func(a, b reflect.Value) int { return cmp.Compare(a.Uint(), b.Uint()) })
	case reflect.Float32, reflect.Float64:
		slices.SortFunc(keys, func(a, b reflect.Value) int { return cmp.Compare(a.Float(), b.Float()) })
	case reflect.Bool:
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
		})
	default:
		return ErrUnsupportedType
	}
	return nil
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (e *Encoder) writePointer(v reflect.Value) error {
	if v.IsNil() {
		return e.enc.EncodeUint(uint64(tagNil))
	}
	if id, ok := e.seen[nodeKey{ptr: v.Pointer(), typ: v.Type()}]; ok {
		if err := e.enc.EncodeUint(uint64(tagRef)); err != nil {
			return err
		}
		return e.enc.EncodeUint(id)
	}
	if err := e.enc.EncodeUint(uint64(tagNode)); err != nil {
		return err
	}
	return e.writeNode(v)
}

// writeNode assigns the next id to pointer v and writes its pointee.
func (e *Encoder) writeNode(v reflect.Value) error {
	id := uint64(len(e.seen))
	e.seen[nodeKey{ptr: v.Pointer(), typ: v.Type()}] = id
	if err := e.enc.EncodeUint(id); err != nil {
		return err
	}
	return e.writeValue(v.Elem())
}

// writeDynamic writes an interface value together with the registered name of its dynamic type.
func (e *Encoder) writeDynamic(v reflect.Value) error {
	if v.IsNil() {
		return e.enc.EncodeUint(uint64(tagNil))
	}
	inner := v.Elem()
	if inner.Kind() != reflect.Pointer {
		b, ok := e.reg.byType[inner.Type()]
		if !ok {
			return e.fail(ErrUnregisteredType, inner.Type())
		}
		if err := e.enc.EncodeUint(uint64(tagValue)); err != nil {
			return err
		}
		if err := e.enc.EncodeString(b.name); err != nil {
			return err
		}
		return e.writeValue(inner)
	}

	if inner.IsNil() {
		return e.enc.EncodeUint(uint64(tagNil))
	}
	b, ok := e.reg.byType[inner.Type().Elem()]
	if !ok {
		return e.fail(ErrUnregisteredType, inner.Type())
	}
	if id, seen := e.seen[nodeKey{ptr: inner.Pointer(), typ: inner.Type()}]; seen {
		if err := e.enc.EncodeUint(uint64(tagRef)); err != nil {
			return err
		}
		return e.enc.EncodeUint(id)
	}
	if err := e.enc.EncodeUint(uint64(tagNode)); err != nil {
		return err
	}
	if err := e.enc.EncodeString(b.name); err != nil {
		return err
	}
	return e.writeNode(inner)
}

func (e *Encoder) writeStruct(b *binding, v reflect.Value) error {
	v = addressable(v)
	switch b.strategy {
	case StrategyValue:
		if err := b.encode(e.enc, v); err != nil {
			return zerr.With(zerr.Wrap(err, "value codec failed"), "field_path", strings.Join(e.path, ""))
		}
		return nil
	case StrategyConstructor:
		e.push("(" + b.name + ")")
		if err := e.writeValue(b.args(v)); err != nil {
			return err
		}
		e.pop()
		return nil
	default:
		if err := e.enc.EncodeArrayLen(len(b.fields)); err != nil {
			return err
		}
		for _, f := range b.fields {
			if err := e.enc.EncodeString(f.name); err != nil {
				return err
			}
			e.push("." + f.name)
			if err := e.writeValue(injectable(v, f.index)); err != nil {
				return err
			}
			e.pop()
		}
		return nil
	}
}
