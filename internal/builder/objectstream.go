package builder

import (
	"strconv"

	"github.com/coregx/pdfgraph/internal/raw"
	"github.com/coregx/pdfgraph/internal/xref"
	"github.com/pkg/errors"
)

// resolveCompressed materializes one object from a PDF 1.5+ object
// stream, loading and caching the whole containing stream the first
// time any of its objects is requested.
//
// Grounded in the earlier reader's Reader.objStmCache and
// Parser.ParseObjectStream (internal/parser/{reader,parser}.go,
// removed): same header-then-body layout (N pairs of object-number/
// offset, then the object bodies starting at /First), restated over
// internal/raw's cursor.
func (b *Builder) resolveCompressed(ref raw.Reference, entry xref.Entry) (raw.Object, error) {
	objs, ok := b.objStmCache[entry.StreamObjNum]
	if !ok {
		loaded, err := b.loadObjectStream(entry.StreamObjNum, true)
		if err != nil {
			return nil, errors.Wrapf(err, "builder: loading object stream %d", entry.StreamObjNum)
		}
		b.objStmCache[entry.StreamObjNum] = loaded
		objs = loaded
	}

	obj, ok := objs[ref.Num]
	if !ok {
		return nil, errors.Errorf("builder: object %d not found at index %d in object stream %d",
			ref.Num, entry.IndexInStream, entry.StreamObjNum)
	}
	b.cache[ref.Num] = obj
	return obj, nil
}

type objStmHeaderEntry struct {
	num    int
	offset int
}

// loadObjectStream decodes a compressed object stream (/Type /ObjStm)
// and parses every object it contains, keyed by object number.
//
// One level of /Extends chaining is followed (an object stream may
// extend another, per PDF 1.7 §7.5.7): objects from the extended
// stream are merged in first so the extending stream's own objects can
// shadow them. This is an experimental corner: chains longer than one
// link are not followed, since no PDF encountered so far has needed it.
func (b *Builder) loadObjectStream(streamObjNum int, followExtends bool) (map[int]raw.Object, error) {
	obj, err := b.Resolve(raw.Reference{Num: streamObjNum, Gen: 0})
	if err != nil {
		return nil, err
	}
	stream, ok := obj.(*raw.Stream)
	if !ok {
		return nil, errors.Errorf("object %d is not a stream", streamObjNum)
	}

	decoded, err := b.DecodeStream(stream)
	if err != nil {
		return nil, err
	}

	n := getInt(stream.Dict, "N", 0)
	first := getInt(stream.Dict, "First", 0)
	if n <= 0 {
		return nil, errors.New("object stream /N must be positive")
	}

	result := make(map[int]raw.Object, n)

	if extendsRef, ok := stream.Dict.Get("Extends").(raw.Reference); ok && followExtends {
		extended, err := b.loadObjectStream(extendsRef.Num, false)
		if err == nil {
			for k, v := range extended {
				result[k] = v
			}
		}
	}

	headerCursor := raw.NewCursor(decoded[:min(first, len(decoded))])
	entries := make([]objStmHeaderEntry, 0, n)
	for i := 0; i < n; i++ {
		headerCursor.SkipWhitespace()
		numTok := headerCursor.TakeWhile(isDigit)
		headerCursor.SkipWhitespace()
		offTok := headerCursor.TakeWhile(isDigit)

		num, err := strconv.Atoi(string(numTok))
		if err != nil {
			return nil, errors.Wrapf(err, "object stream header entry %d: bad object number", i)
		}
		off, err := strconv.Atoi(string(offTok))
		if err != nil {
			return nil, errors.Wrapf(err, "object stream header entry %d: bad offset", i)
		}
		entries = append(entries, objStmHeaderEntry{num: num, offset: off})
	}

	for i, e := range entries {
		bodyStart := first + e.offset
		if bodyStart < 0 || bodyStart > len(decoded) {
			return nil, errors.Errorf("object stream entry %d has out-of-range offset", e.num)
		}
		bodyEnd := len(decoded)
		if i+1 < len(entries) {
			candidate := first + entries[i+1].offset
			if candidate <= len(decoded) {
				bodyEnd = candidate
			}
		}

		objCursor := raw.NewCursor(decoded[bodyStart:bodyEnd])
		value, err := raw.ExtractObject(objCursor)
		if err != nil {
			return nil, errors.Wrapf(err, "object stream entry %d", e.num)
		}
		result[e.num] = value
	}

	return result, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func getInt(d *raw.Dictionary, key raw.Name, def int) int {
	if n, ok := d.Get(key).(raw.Integer); ok {
		return int(n)
	}
	return def
}

