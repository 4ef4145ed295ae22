package raw

// ExtractArray recognizes `[ obj obj ... ]`.
func ExtractArray(c *Cursor) (*Array, error) {
	start := c.Pos()
	if b, ok := c.Peek(); !ok || b != '[' {
		return nil, newBacktrack(start, "expected array")
	}
	c.Advance(1)

	arr := make(Array, 0, 4)
	for {
		c.SkipWhitespace()
		if b, ok := c.Peek(); ok && b == ']' {
			c.Advance(1)
			return &arr, nil
		}
		if c.Len() == 0 {
			return nil, newCut(start, "unterminated array")
		}
		obj, err := ExtractObject(c)
		if err != nil {
			if pe, ok := err.(*ParseError); ok && pe.Kind == Backtrack {
				return nil, newCut(c.Pos(), "invalid array element: %v", err)
			}
			return nil, err
		}
		arr = append(arr, obj)
	}
}
