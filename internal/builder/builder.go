// Package builder resolves indirect references against a consolidated
// cross-reference table and materializes the typed domain structs the
// rest of this system operates on, out of the raw.Object values
// internal/raw extracts.
//
// Grounded in the earlier reader's Reader (internal/parser/reader.go, removed
// during adaptation): the object cache, the object-stream cache, and
// the overall "seek to offset, parse indirect object, cache it" shape
// are the same; restated as pure functions over an immutable byte
// slice rather than methods on an *os.File guarded by a mutex, since
// this system resolves everything from an in-memory buffer rather than
// streaming from disk.
package builder

import (
	"github.com/coregx/pdfgraph/internal/filter"
	"github.com/coregx/pdfgraph/internal/raw"
	"github.com/coregx/pdfgraph/internal/xref"
	"github.com/coregx/pdfgraph/logging"
	"github.com/pkg/errors"
)

// Builder resolves references against a fixed input buffer and xref
// table. It is not safe for concurrent use — resolution is
// single-threaded and cooperative, mutating the object cache in
// place — so callers that want to extract multiple pages concurrently
// should build an index synchronously first and then fan out across
// read-only data.
type Builder struct {
	buf   []byte
	table *xref.Table

	cache       map[int]raw.Object
	objStmCache map[int]map[int]raw.Object

	resolving map[raw.Reference]bool
}

// New creates a Builder over buf using a pre-parsed cross-reference
// table (see internal/xref.Load).
func New(buf []byte, table *xref.Table) *Builder {
	return &Builder{
		buf:         buf,
		table:       table,
		cache:       make(map[int]raw.Object),
		objStmCache: make(map[int]map[int]raw.Object),
		resolving:   make(map[raw.Reference]bool),
	}
}

// Table returns the builder's cross-reference table.
func (b *Builder) Table() *xref.Table { return b.table }

// CycleError reports that resolving a reference re-entered itself
// while already in progress, i.e. the object graph contains a cycle.
//
// The earlier implementation never guarded against reference cycles —
// it assumed acyclic input and would stack-overflow on a malicious or
// corrupted file — so this is a genuine hardening addition, not a
// ported behavior.
type CycleError struct {
	Ref raw.Reference
}

func (e *CycleError) Error() string {
	return errors.Errorf("builder: cyclic reference detected at %s", e.Ref).Error()
}

// ReferenceIDMismatchError reports that an object's own `N G obj`
// header does not match the (num, gen) the xref table said it should
// be at that offset — a sign of file corruption or a stale xref entry.
//
// Grounded in the livre Rust crate's indirect-object parsing
// (src/complex/indirect.rs), which performs the same cross-check; the
// earlier reader's reader.go never validated this.
type ReferenceIDMismatchError struct {
	Expected raw.Reference
	Actual   raw.Reference
}

func (e *ReferenceIDMismatchError) Error() string {
	return errors.Errorf("builder: object at offset claims id %s, expected %s", e.Actual, e.Expected).Error()
}

// Resolve returns the direct raw.Object a reference points to,
// following exactly one level of indirection (PDF references are never
// chained — the target is always a direct object). Results are cached
// by object number.
func (b *Builder) Resolve(ref raw.Reference) (raw.Object, error) {
	if cached, ok := b.cache[ref.Num]; ok {
		return cached, nil
	}
	if b.resolving[ref] {
		return nil, &CycleError{Ref: ref}
	}
	b.resolving[ref] = true
	defer delete(b.resolving, ref)

	entry, ok := b.table.Entries[ref.Num]
	if !ok {
		return nil, errors.Errorf("builder: no xref entry for object %d", ref.Num)
	}

	switch entry.Kind {
	case xref.Free:
		return raw.Null{}, nil
	case xref.Plain:
		return b.resolvePlain(ref, entry)
	case xref.Compressed:
		return b.resolveCompressed(ref, entry)
	default:
		return nil, errors.Errorf("builder: object %d has unknown xref entry kind", ref.Num)
	}
}

func (b *Builder) resolvePlain(ref raw.Reference, entry xref.Entry) (raw.Object, error) {
	c := raw.NewCursor(b.buf)
	c.Seek(int(entry.Offset))

	indirect, err := raw.ExtractIndirectObject(c)
	if err != nil {
		return nil, errors.Wrapf(err, "builder: parsing object %d at offset %d", ref.Num, entry.Offset)
	}
	actual := raw.Reference{Num: indirect.Num, Gen: indirect.Gen}
	expected := raw.Reference{Num: ref.Num, Gen: entry.Generation}
	if actual != expected {
		return nil, &ReferenceIDMismatchError{Expected: expected, Actual: actual}
	}

	if stream, ok := indirect.Value.(*raw.Stream); ok && stream.LengthRef != nil {
		if err := b.resolveStreamLength(stream); err != nil {
			return nil, errors.Wrapf(err, "builder: resolving /Length for object %d", ref.Num)
		}
	}

	b.cache[ref.Num] = indirect.Value
	return indirect.Value, nil
}

func (b *Builder) resolveStreamLength(stream *raw.Stream) error {
	lengthObj, err := b.Resolve(*stream.LengthRef)
	if err != nil {
		return err
	}
	n, ok := lengthObj.(raw.Integer)
	if !ok {
		return errors.New("indirect /Length did not resolve to an integer")
	}
	return stream.ResolveDeferredLength(b.buf, int(n))
}

// ResolveDict resolves ref and requires the result to be a dictionary,
// unwrapping a stream's own dictionary transparently (most schema-table
// consumers only care about the dictionary half of a stream object).
func (b *Builder) ResolveDict(ref raw.Reference) (*raw.Dictionary, error) {
	obj, err := b.Resolve(ref)
	if err != nil {
		return nil, err
	}
	switch v := obj.(type) {
	case *raw.Dictionary:
		return v, nil
	case *raw.Stream:
		return v.Dict, nil
	default:
		return nil, errors.Errorf("builder: expected dictionary, object %d is %s", ref.Num, obj.Kind())
	}
}

// StreamData resolves ref, requires a stream, and returns its fully
// decoded body bytes.
func (b *Builder) StreamData(ref raw.Reference) ([]byte, error) {
	obj, err := b.Resolve(ref)
	if err != nil {
		return nil, err
	}
	stream, ok := obj.(*raw.Stream)
	if !ok {
		return nil, errors.Errorf("builder: object %d is not a stream", ref.Num)
	}
	return b.DecodeStream(stream)
}

// DecodeStream decodes an already-resolved stream's filter chain.
func (b *Builder) DecodeStream(stream *raw.Stream) ([]byte, error) {
	specs, err := filter.Chain(stream.Dict)
	if err != nil {
		return nil, err
	}
	decoded, err := filter.Decode(stream.Data, specs)
	if err != nil {
		logging.Logger().Debug("stream decode failed", "error", err)
		return nil, err
	}
	return decoded, nil
}

// Resolved dereferences obj if it is a Reference, otherwise returns it
// unchanged. This is the core of the "transparent reference resolution"
// behavior BuildFromRawDict relies on: most dictionary values may
// legally be either a direct object or an indirect reference to one,
// and callers building typed structs shouldn't have to care which.
func (b *Builder) Resolved(obj raw.Object) (raw.Object, error) {
	ref, ok := obj.(raw.Reference)
	if !ok {
		return obj, nil
	}
	return b.Resolve(ref)
}
