package raw

// Dictionary is the spec's RawDict: a PDF dictionary object whose
// values have been extracted into Objects but not yet resolved or
// materialized into a typed Go struct. Key order of the source is
// preserved and exposed through Keys.
//
// Grounded in the earlier reader's Dictionary type (internal/parser, removed)
// which exposed the same Get/Set-by-name shape over a map; Keys is
// added here to recover source order, which a bare map cannot.
type Dictionary struct {
	order  []Name
	values map[Name]Object
}

func (*Dictionary) isObject()  {}
func (*Dictionary) Kind() Kind { return KindDictionary }

// NewDictionary returns an empty Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{values: make(map[Name]Object)}
}

// Set inserts or overwrites key, recording first-seen order.
func (d *Dictionary) Set(key Name, val Object) {
	if _, exists := d.values[key]; !exists {
		d.order = append(d.order, key)
	}
	d.values[key] = val
}

// Get returns the value for key, or nil if absent. The returned Object
// may itself be a Reference that the caller must resolve via
// internal/builder.
func (d *Dictionary) Get(key Name) Object {
	return d.values[key]
}

// Has reports whether key is present.
func (d *Dictionary) Has(key Name) bool {
	_, ok := d.values[key]
	return ok
}

// Keys returns the dictionary's keys in first-seen order.
func (d *Dictionary) Keys() []Name {
	return d.order
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.order)
}

// ExtractDictionary recognizes `<< key value ... >>`.
func ExtractDictionary(c *Cursor) (*Dictionary, error) {
	start := c.Pos()
	if !c.MatchBytes("<<") {
		return nil, newBacktrack(start, "expected dictionary")
	}

	dict := NewDictionary()
	for {
		c.SkipWhitespace()
		if c.MatchBytes(">>") {
			return dict, nil
		}
		if c.Len() == 0 {
			return nil, newCut(start, "unterminated dictionary")
		}

		key, err := ExtractName(c)
		if err != nil {
			return nil, newCut(c.Pos(), "expected name key in dictionary: %v", err)
		}
		c.SkipWhitespace()

		val, err := ExtractObject(c)
		if err != nil {
			return nil, newCut(c.Pos(), "invalid value for key %q: %v", key, err)
		}
		dict.Set(key, val)
	}
}
