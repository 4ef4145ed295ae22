package raw

// Stream is a PDF stream object: a Dictionary followed by a raw,
// still-encoded byte body. Decoding (FlateDecode, predictors, ...) is
// internal/filter's job; raw only locates the body bytes.
//
// When the stream's /Length is a direct Integer, Data is already a
// zero-copy slice of the source. When /Length is an indirect reference
// (legal per PDF 1.7 §7.3.8.2, common for streams written before their
// own length is known), Data is nil and DataOffset/LengthRef let
// internal/builder re-slice the source once it has resolved the length
// through the xref table.
type Stream struct {
	Dict       *Dictionary
	Data       []byte
	DataOffset int
	LengthRef  *Reference
}

func (*Stream) isObject()  {}
func (*Stream) Kind() Kind { return KindStream }

// ExtractStreamOrDict recognizes a dictionary and, if followed by the
// `stream` keyword, continues into a Stream. Otherwise the dictionary
// itself is returned.
//
// Grounded in the earlier reader's parseStreamContent (internal/parser,
// removed): same two-step shape (parse dict, check for `stream`
// keyword, skip the single EOL marker, take exactly /Length bytes) but
// over a byte cursor instead of a bufio.Reader, and with no fallback
// scan for `endstream` on missing /Length — this system's Design Notes
// treat a missing/invalid /Length as a hard failure rather than a scan,
// unlike the earlier reader's parseStreamUntilEndstream.
func ExtractStreamOrDict(c *Cursor) (Object, error) {
	dict, err := ExtractDictionary(c)
	if err != nil {
		return nil, err
	}

	save := c.Clone()
	c.SkipWhitespace()
	if !c.MatchBytes("stream") {
		*c = *save
		return dict, nil
	}

	buf := c.Bytes()
	pos := c.Pos()
	if pos < len(buf) && buf[pos] == '\r' {
		pos++
	}
	if pos < len(buf) && buf[pos] == '\n' {
		pos++
	} else if pos > c.Pos() {
		// A lone \r with no following \n is not a valid stream EOL
		// marker per PDF 1.7 §7.3.8.1, but writers in the wild emit it;
		// accept it rather than cut.
	}
	c.Seek(pos)
	dataOffset := c.Pos()

	lengthObj := dict.Get("Length")
	switch lv := lengthObj.(type) {
	case Integer:
		if lv < 0 || int(lv) > c.Len() {
			return nil, newCut(dataOffset, "stream /Length %d exceeds remaining input", lv)
		}
		data := buf[dataOffset : dataOffset+int(lv)]
		c.Seek(dataOffset + int(lv))
		if err := expectEndstream(c); err != nil {
			return nil, err
		}
		return &Stream{Dict: dict, Data: data, DataOffset: dataOffset}, nil
	case Reference:
		// Deferred: internal/builder resolves Length, then re-slices
		// buf[dataOffset:dataOffset+length] and validates `endstream`.
		return &Stream{Dict: dict, DataOffset: dataOffset, LengthRef: &Reference{Num: lv.Num, Gen: lv.Gen}}, nil
	default:
		return nil, newCut(dataOffset, "stream missing a valid /Length")
	}
}

func expectEndstream(c *Cursor) error {
	start := c.Pos()
	c.SkipWhitespace()
	if !c.MatchBytes("endstream") {
		return newCut(start, "expected endstream keyword")
	}
	return nil
}

// ResolveDeferredLength completes a Stream whose /Length was an
// indirect reference, once the caller (internal/builder) has resolved
// it to a concrete integer.
func (s *Stream) ResolveDeferredLength(buf []byte, length int) error {
	if s.LengthRef == nil {
		return nil
	}
	if length < 0 || s.DataOffset+length > len(buf) {
		return newCut(s.DataOffset, "resolved stream /Length %d exceeds remaining input", length)
	}
	s.Data = buf[s.DataOffset : s.DataOffset+length]
	cur := NewCursor(buf)
	cur.Seek(s.DataOffset + length)
	if err := expectEndstream(cur); err != nil {
		return err
	}
	s.LengthRef = nil
	return nil
}
