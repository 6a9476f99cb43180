package serial

import (
	"bytes"
	"io"
	"reflect"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
)

// maxLen bounds collection lengths read from a stream before allocating.
const maxLen = 1 << 24

// Decoder reads object graphs written by Encoder.
type Decoder struct {
	reg     *Registry
	dec     *msgpack.Decoder
	version string
	nodes   []reflect.Value
}

// NewDecoder returns a decoder accepting only streams stamped with schema version.
func NewDecoder(r io.Reader, reg *Registry, version string) *Decoder {
	return &Decoder{
		reg:     reg,
		dec:     msgpack.NewDecoder(r),
		version: version,
	}
}

// Decode reads one graph and returns its root.
// Every failure matches ErrSchemaMismatch, ErrCorruptStream or ErrConstructionFailed.
func (d *Decoder) Decode() (any, error) {
	magic, err := d.dec.DecodeString()
	if err != nil || magic != streamMagic {
		return nil, classified(ErrCorruptStream, "missing stream header")
	}
	version, err := d.dec.DecodeString()
	if err != nil {
		return nil, classified(ErrCorruptStream, "missing schema version")
	}
	if version != d.version {
		return nil, classified(ErrSchemaMismatch, "stream schema "+version+" does not match "+d.version,
			"stream_version", version, "expected_version", d.version)
	}

	var root any
	if err := d.readDynamic(reflect.ValueOf(&root).Elem()); err != nil {
		return nil, d.corrupt(err)
	}
	count, err := d.dec.DecodeUint64()
	if err != nil || count != uint64(len(d.nodes)) {
		return nil, classified(ErrCorruptStream, "node count trailer does not match graph")
	}
	return root, nil
}

// Unmarshal decodes a graph from data.
func Unmarshal(reg *Registry, version string, data []byte) (any, error) {
	return NewDecoder(bytes.NewReader(data), reg, version).Decode()
}

// corrupt classifies raw decoding errors; already classified errors pass through.
func (d *Decoder) corrupt(err error) error {
	if isClassified(err) {
		return err
	}
	return classified(ErrCorruptStream, "malformed stream: "+err.Error())
}

//nolint:cyclop,gocyclo // one arm per reflect kind
func (d *Decoder) readValue(dst reflect.Value) error {
	t := dst.Type()
	switch t.Kind() {
	case reflect.Bool:
		b, err := d.dec.DecodeBool()
		if err != nil {
			return err
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := d.dec.DecodeInt64()
		if err != nil {
			return err
		}
		if dst.OverflowInt(n) {
			return classified(ErrCorruptStream, "integer overflows "+t.String())
		}
		dst.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := d.dec.DecodeUint64()
		if err != nil {
			return err
		}
		if dst.OverflowUint(n) {
			return classified(ErrCorruptStream, "integer overflows "+t.String())
		}
		dst.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := d.dec.DecodeFloat64()
		if err != nil {
			return err
		}
		dst.SetFloat(f)
	case reflect.String:
		s, err := d.dec.DecodeString()
		if err != nil {
			return err
		}
		dst.SetString(s)
	case reflect.Slice:
		return d.readSlice(dst)
	case reflect.Array:
		n, err := d.dec.DecodeArrayLen()
		if err != nil {
			return err
		}
		if n != dst.Len() {
			return classified(ErrCorruptStream, "array length mismatch for "+t.String())
		}
		return d.readElems(dst, n)
	case reflect.Map:
		return d.readMap(dst)
	case reflect.Pointer:
		return d.readPointer(dst)
	case reflect.Interface:
		return d.readDynamic(dst)
	case reflect.Struct:
		b, ok := d.reg.byType[t]
		if !ok {
			return classified(ErrCorruptStream, "stream holds unregistered type "+t.String())
		}
		return d.readStruct(b, dst)
	default:
		return classified(ErrCorruptStream, "stream holds unsupported type "+t.String())
	}
	return nil
}

func (d *Decoder) readSlice(dst reflect.Value) error {
	if dst.Type().Elem().Kind() == reflect.Uint8 {
		b, err := d.dec.DecodeBytes()
		if err != nil {
			return err
		}
		if b != nil {
			s := reflect.MakeSlice(dst.Type(), len(b), len(b))
			reflect.Copy(s, reflect.ValueOf(b))
			dst.Set(s)
		}
		return nil
	}
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n < 0 {
		return nil
	}
	if n > maxLen {
		return classified(ErrCorruptStream, "slice length out of range")
	}
	dst.Set(reflect.MakeSlice(dst.Type(), n, n))
	return d.readElems(dst, n)
}

func (d *Decoder) readElems(dst reflect.Value, n int) error {
	for i := range n {
		if err := d.readValue(dst.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) readMap(dst reflect.Value) error {
	n, err := d.dec.DecodeMapLen()
	if err != nil {
		return err
	}
	if n < 0 {
		return nil
	}
	if n > maxLen {
		return classified(ErrCorruptStream, "map length out of range")
	}
	t := dst.Type()
	m := reflect.MakeMapWithSize(t, n)
	for range n {
		k := reflect.New(t.Key()).Elem()
		if err := d.readValue(k); err != nil {
			return err
		}
		v := reflect.New(t.Elem()).Elem()
		if err := d.readValue(v); err != nil {
			return err
		}
		m.SetMapIndex(k, v)
	}
	dst.Set(m)
	return nil
}

func (d *Decoder) readTag() (tag, error) {
	n, err := d.dec.DecodeUint64()
	if err != nil {
		return 0, err
	}
	if n < uint64(tagNil) || n > uint64(tagValue) {
		return 0, classified(ErrCorruptStream, "unknown tag "+strconv.FormatUint(n, 10))
	}
	return tag(n), nil
}

func (d *Decoder) readRef() (reflect.Value, error) {
	id, err := d.dec.DecodeUint64()
	if err != nil {
		return reflect.Value{}, err
	}
	if id >= uint64(len(d.nodes)) {
		return reflect.Value{}, classified(ErrCorruptStream, "back-reference to unknown node "+strconv.FormatUint(id, 10))
	}
	return d.nodes[id], nil
}

func (d *Decoder) readPointer(dst reflect.Value) error {
	tg, err := d.readTag()
	if err != nil {
		return err
	}
	switch tg {
	case tagNil:
		return nil
	case tagRef:
		node, err := d.readRef()
		if err != nil {
			return err
		}
		if node.Type() != dst.Type() {
			return classified(ErrCorruptStream, "back-reference type "+node.Type().String()+" does not match "+dst.Type().String())
		}
		dst.Set(node)
		return nil
	case tagNode:
		p, err := d.readNode(dst.Type().Elem(), nil)
		if err != nil {
			return err
		}
		dst.Set(p)
		return nil
	default:
		return classified(ErrCorruptStream, "value tag in pointer position")
	}
}

// readNode allocates the node, registers it under its id and only then decodes its contents.
func (d *Decoder) readNode(elem reflect.Type, b *binding) (reflect.Value, error) {
	id, err := d.dec.DecodeUint64()
	if err != nil {
		return reflect.Value{}, err
	}
	if id != uint64(len(d.nodes)) {
		return reflect.Value{}, classified(ErrCorruptStream, "node id out of sequence")
	}
	p := reflect.New(elem)
	d.nodes = append(d.nodes, p)
	if b != nil {
		return p, d.readStruct(b, p.Elem())
	}
	return p, d.readValue(p.Elem())
}

func (d *Decoder) lookup() (*binding, error) {
	name, err := d.dec.DecodeString()
	if err != nil {
		return nil, err
	}
	b, ok := d.reg.byName[name]
	if !ok {
		return nil, classified(ErrCorruptStream, "stream names unregistered type "+name, "type_name", name)
	}
	return b, nil
}

func (d *Decoder) readDynamic(dst reflect.Value) error {
	tg, err := d.readTag()
	if err != nil {
		return err
	}
	var v reflect.Value
	switch tg {
	case tagNil:
		return nil
	case tagRef:
		if v, err = d.readRef(); err != nil {
			return err
		}
	case tagNode:
		b, err := d.lookup()
		if err != nil {
			return err
		}
		if v, err = d.readNode(b.typ, b); err != nil {
			return err
		}
	case tagValue:
		b, err := d.lookup()
		if err != nil {
			return err
		}
		v = reflect.New(b.typ).Elem()
		if err := d.readStruct(b, v); err != nil {
			return err
		}
	}
	if !v.Type().AssignableTo(dst.Type()) {
		return classified(ErrCorruptStream, v.Type().String()+" does not implement "+dst.Type().String())
	}
	dst.Set(v)
	return nil
}

func (d *Decoder) readStruct(b *binding, dst reflect.Value) error {
	switch b.strategy {
	case StrategyValue:
		v, err := b.decode(d.dec)
		if err != nil {
			return err
		}
		dst.Set(v)
		return nil
	case StrategyConstructor:
		args := reflect.New(b.argType).Elem()
		if err := d.readValue(args); err != nil {
			return err
		}
		v, err := b.construct(args)
		if err != nil {
			return classified(ErrConstructionFailed, "constructor for "+b.name+" failed: "+err.Error(), "type_name", b.name)
		}
		dst.Set(v)
		return nil
	default:
		return d.readBean(b, dst)
	}
}

func (d *Decoder) readBean(b *binding, dst reflect.Value) error {
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != len(b.fields) {
		return classified(ErrCorruptStream, "field count mismatch for "+b.name, "type_name", b.name)
	}
	for _, f := range b.fields {
		name, err := d.dec.DecodeString()
		if err != nil {
			return err
		}
		if name != f.name {
			return classified(ErrCorruptStream, "unexpected field "+name+" in "+b.name, "type_name", b.name)
		}
		if err := d.readValue(injectable(dst, f.index)); err != nil {
			return err
		}
	}
	return nil
}
