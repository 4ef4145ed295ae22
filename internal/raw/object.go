package raw

// ExtractObject recognizes any direct PDF object at the cursor's
// current position: null, boolean, reference, number, name, string
// (literal or hex), array, or dictionary (which may continue into a
// Stream if followed by the `stream` keyword — see ExtractStreamOrDict).
//
// Grounded in the earlier reader's Parser.ParseObject switch (internal/parser,
// removed), restated as leading-byte dispatch over the Cursor instead
// of a token-type switch, since there is no longer a separate lexing
// pass to produce token types from.
func ExtractObject(c *Cursor) (Object, error) {
	c.SkipWhitespace()
	start := c.Pos()
	b, ok := c.Peek()
	if !ok {
		return nil, newEOF(start, "expected object")
	}

	switch {
	case b == '/':
		return ExtractName(c)
	case b == '(':
		return ExtractLiteralString(c)
	case b == '<':
		if b2, ok := c.PeekAt(1); ok && b2 == '<' {
			return ExtractStreamOrDict(c)
		}
		return ExtractHexString(c)
	case b == '[':
		return ExtractArray(c)
	case b == 'n':
		if v, err := ExtractNull(c); err == nil {
			return v, nil
		}
	case b == 't', b == 'f':
		if v, err := ExtractBoolean(c); err == nil {
			return v, nil
		}
	case isDigit(b), b == '+', b == '-', b == '.':
		if ref, err := ExtractReference(c); err == nil {
			return ref, nil
		}
		return ExtractNumeric(c)
	}

	return nil, newBacktrack(start, "unrecognized object at byte %q", b)
}
