package xref

import (
	"github.com/coregx/pdfgraph/internal/filter"
	"github.com/coregx/pdfgraph/internal/raw"
	"github.com/pkg/errors"
)

// ParseStream parses a cross-reference stream object (PDF 1.5+),
// starting at its `N G obj` header.
//
// The stream dictionary doubles as the trailer: it carries /Root,
// /Info, /Size and /Prev directly, plus /W (field widths) and /Index
// (object-number ranges) that describe how to decode the binary body.
//
// Grounded in the earlier reader's ParseXRefStream/parseXRefStreamEntries
// (internal/parser/xref.go, removed); restated to decode through
// internal/filter's Chain/Decode instead of the earlier reader's embedded
// flateDecoder, and an unrecognized entry type (>= 3) is treated as
// free rather than rejected, per this system's Design Notes.
func ParseStream(c *raw.Cursor) (*Table, error) {
	start := c.Pos()
	indirect, err := raw.ExtractIndirectObject(c)
	if err != nil {
		return nil, errors.Wrapf(err, "xref: failed to parse xref stream object at %d", start)
	}

	stream, ok := indirect.Value.(*raw.Stream)
	if !ok {
		return nil, errors.Errorf("xref: object at %d is not a stream", start)
	}
	dict := stream.Dict

	if typeName, _ := dict.Get("Type").(raw.Name); typeName != "XRef" {
		return nil, errors.Errorf("xref: stream /Type is %q, expected /XRef", typeName)
	}
	if stream.LengthRef != nil {
		return nil, errors.New("xref: stream with indirect /Length is not supported (chicken-and-egg: xref isn't parsed yet)")
	}

	specs, err := filter.Chain(dict)
	if err != nil {
		return nil, errors.Wrap(err, "xref: stream filter chain")
	}
	decoded, err := filter.Decode(stream.Data, specs)
	if err != nil {
		return nil, errors.Wrap(err, "xref: decoding stream body")
	}

	trailer, err := BuildTrailer(dict)
	if err != nil {
		return nil, errors.Wrap(err, "xref: malformed xref stream dictionary")
	}

	table, err := decodeEntries(dict, decoded, trailer.Size)
	if err != nil {
		return nil, err
	}
	table.Trailer = trailer
	return table, nil
}

func decodeEntries(dict *raw.Dictionary, data []byte, size int) (*Table, error) {
	wArr, ok := dict.Get("W").(*raw.Array)
	if !ok || len(*wArr) != 3 {
		return nil, errors.New("xref: stream missing valid /W array")
	}
	var widths [3]int
	for i, elem := range *wArr {
		n, ok := elem.(raw.Integer)
		if !ok {
			return nil, errors.Errorf("xref: /W[%d] is not an integer", i)
		}
		widths[i] = int(n)
	}
	entrySize := widths[0] + widths[1] + widths[2]
	if entrySize <= 0 {
		return nil, errors.New("xref: /W describes a zero-length entry")
	}

	var index []int
	if idxArr, ok := dict.Get("Index").(*raw.Array); ok {
		for _, elem := range *idxArr {
			n, ok := elem.(raw.Integer)
			if !ok {
				return nil, errors.New("xref: /Index contains a non-integer")
			}
			index = append(index, int(n))
		}
	} else {
		index = []int{0, size}
	}

	table := NewTable()
	offset := 0
	for i := 0; i+1 < len(index); i += 2 {
		startNum, count := index[i], index[i+1]
		for j := 0; j < count; j++ {
			objNum := startNum + j
			if offset+entrySize > len(data) {
				return nil, errors.Errorf("xref: stream data truncated at object %d", objNum)
			}
			fieldType, field2, field3 := readFields(data[offset:offset+entrySize], widths)
			offset += entrySize

			switch fieldType {
			case 0:
				table.Entries[objNum] = Entry{Kind: Free, Offset: field2, Generation: int(field3)}
			case 1:
				table.Entries[objNum] = Entry{Kind: Plain, Offset: field2, Generation: int(field3)}
			case 2:
				table.Entries[objNum] = Entry{Kind: Compressed, StreamObjNum: int(field2), IndexInStream: int(field3)}
			default:
				// PDF 1.7 §7.5.8.3: readers must treat an unrecognized
				// type as a reference to the null object, i.e. free.
				table.Entries[objNum] = Entry{Kind: Free}
			}
		}
	}
	return table, nil
}

func readFields(entry []byte, widths [3]int) (fieldType int64, field2 int64, field3 int64) {
	pos := 0
	if widths[0] > 0 {
		fieldType = readBigEndian(entry[pos : pos+widths[0]])
		pos += widths[0]
	} else {
		fieldType = 1 // default per PDF 1.7 Table 18
	}
	if widths[1] > 0 {
		field2 = readBigEndian(entry[pos : pos+widths[1]])
		pos += widths[1]
	}
	if widths[2] > 0 {
		field3 = readBigEndian(entry[pos : pos+widths[2]])
	}
	return
}

func readBigEndian(b []byte) int64 {
	var v int64
	for _, x := range b {
		v = (v << 8) | int64(x)
	}
	return v
}
