package fingerprint

import (
	"errors"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/zerr"

	"go.trai.ch/recall/internal/core/domain"
)

type record struct {
	Kind       domain.EntryKind      `msgpack:"k"`
	Key        string                `msgpack:"n"`
	Value      string                `msgpack:"v,omitempty"`
	Present    bool                  `msgpack:"p,omitempty"`
	Exists     bool                  `msgpack:"e,omitempty"`
	Hash       uint64                `msgpack:"h,omitempty"`
	Size       int64                 `msgpack:"s,omitempty"`
	ModTime    time.Time             `msgpack:"m"`
	Policy     domain.ModTimePolicy  `msgpack:"pol,omitempty"`
	Params     []string              `msgpack:"a,omitempty"`
	Undeclared domain.UndeclaredKind `msgpack:"u,omitempty"`
}

type document struct {
	Version string   `msgpack:"version"`
	Entries []record `msgpack:"entries"`
}

// Encode serializes fp into the fingerprint file format.
func Encode(fp *domain.Fingerprint) ([]byte, error) {
	doc := document{Version: fp.Version, Entries: make([]record, 0, len(fp.Entries))}
	for _, e := range fp.Entries {
		rec, err := toRecord(e)
		if err != nil {
			return nil, err
		}
		doc.Entries = append(doc.Entries, rec)
	}
	data, err := msgpack.Marshal(&doc)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode fingerprint")
	}
	return data, nil
}

// Decode parses a fingerprint file. Any malformed content is reported as ErrCacheEntryUnreadable.
func Decode(data []byte) (*domain.Fingerprint, error) {
	var doc document
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(domain.ErrCacheEntryUnreadable, zerr.Wrap(err, "failed to decode fingerprint"))
	}
	fp := &domain.Fingerprint{Version: doc.Version, Entries: make([]domain.FingerprintEntry, 0, len(doc.Entries))}
	for _, rec := range doc.Entries {
		e, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		fp.Entries = append(fp.Entries, e)
	}
	return fp, nil
}

func toRecord(e domain.FingerprintEntry) (record, error) {
	switch v := e.(type) {
	case domain.FileInput:
		return record{
			Kind: domain.KindFile, Key: v.Path, Exists: v.Exists, Hash: v.Hash,
			Size: v.Size, ModTime: v.ModTime, Policy: v.Policy,
		}, nil
	case domain.EnvVar:
		return record{Kind: domain.KindEnvVar, Key: v.Name, Value: v.Value, Present: v.Present}, nil
	case domain.SystemProperty:
		return record{Kind: domain.KindSystemProperty, Key: v.Name, Value: v.Value, Present: v.Present}, nil
	case domain.ValueSource:
		return record{
			Kind: domain.KindValueSource, Key: v.Descriptor.Type,
			Params: v.Descriptor.Params, Value: v.Value,
		}, nil
	case domain.UndeclaredInput:
		return record{
			Kind: domain.KindUndeclared, Key: v.Descriptor.Target,
			Undeclared: v.Descriptor.Kind, Value: v.Observed,
		}, nil
	default:
		return record{}, zerr.With(zerr.New("unknown fingerprint entry"), "kind", e.Kind().String())
	}
}

func fromRecord(r record) (domain.FingerprintEntry, error) {
	switch r.Kind {
	case domain.KindFile:
		return domain.FileInput{
			Path: r.Key, Exists: r.Exists, Hash: r.Hash,
			Size: r.Size, ModTime: r.ModTime, Policy: r.Policy,
		}, nil
	case domain.KindEnvVar:
		return domain.EnvVar{Name: r.Key, Value: r.Value, Present: r.Present}, nil
	case domain.KindSystemProperty:
		return domain.SystemProperty{Name: r.Key, Value: r.Value, Present: r.Present}, nil
	case domain.KindValueSource:
		return domain.ValueSource{
			Descriptor: domain.ValueSourceDescriptor{Type: r.Key, Params: r.Params},
			Value:      r.Value,
		}, nil
	case domain.KindUndeclared:
		return domain.UndeclaredInput{
			Descriptor: domain.UndeclaredDescriptor{Kind: r.Undeclared, Target: r.Key},
			Observed:   r.Value,
		}, nil
	default:
		return nil, errors.Join(domain.ErrCacheEntryUnreadable,
			zerr.With(zerr.New("unknown fingerprint entry kind"), "entry_kind", int(r.Kind)))
	}
}
