package raw

// IndirectObject is the result of extracting `N G obj ... endobj`.
type IndirectObject struct {
	Num   int
	Gen   int
	Value Object
}

// ExtractIndirectObject recognizes an indirect object header and body
// and returns the object/generation numbers found in the header. It does
// not check them against any expectation; internal/builder, the layer
// with access to the xref table, compares them with the reference it
// resolved and reports a mismatch as ReferenceIDMismatchError.
//
// Grounded in the livre Rust crate's indirect-object parsing
// (src/complex/indirect.rs), which performs this same header/expectation
// cross-check; the earlier reader's ParseIndirectObject (internal/parser,
// removed) parsed the header but never validated it against an expected
// identity.
func ExtractIndirectObject(c *Cursor) (*IndirectObject, error) {
	start := c.Pos()
	c.SkipWhitespace()

	numObj, err := ExtractNumeric(c)
	if err != nil {
		return nil, newCut(start, "expected object number: %v", err)
	}
	num, ok := numObj.(Integer)
	if !ok {
		return nil, newCut(start, "object number must be an integer")
	}
	c.SkipWhitespace()

	genObj, err := ExtractNumeric(c)
	if err != nil {
		return nil, newCut(start, "expected generation number: %v", err)
	}
	gen, ok := genObj.(Integer)
	if !ok {
		return nil, newCut(start, "generation number must be an integer")
	}
	c.SkipWhitespace()

	if !c.MatchBytes("obj") {
		return nil, newCut(c.Pos(), "expected 'obj' keyword")
	}

	val, err := ExtractObject(c)
	if err != nil {
		return nil, newCut(c.Pos(), "failed to parse indirect object %d %d: %v", num, gen, err)
	}

	c.SkipWhitespace()
	if !c.MatchBytes("endobj") {
		// Some writers omit whitespace before a stream's endobj check
		// already happened inside ExtractStreamOrDict; tolerate a
		// missing endobj only when the value was a Stream, since the
		// stream body parsing already found a firm terminator.
		if _, isStream := val.(*Stream); !isStream {
			return nil, newCut(c.Pos(), "expected 'endobj' keyword")
		}
	}

	return &IndirectObject{Num: int(num), Gen: int(gen), Value: val}, nil
}
