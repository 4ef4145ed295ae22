package xref

import (
	"strconv"

	"github.com/coregx/pdfgraph/internal/raw"
	"github.com/pkg/errors"
)

// ParseClassical parses a traditional cross-reference table and its
// trailer, starting at the `xref` keyword.
//
// Format (PDF 1.7 §7.5.4):
//
//	xref
//	startNum count
//	nnnnnnnnnn ggggg n
//	...
//	trailer
//	<< ... >>
//
// Grounded in the earlier reader's parseXRefSubsections/parseXRefEntry/
// parseXRefTrailer (internal/parser/xref.go, removed), which parsed the
// same fixed-field-width grammar through a token stream; this version
// walks the same grammar directly over bytes.
func ParseClassical(c *raw.Cursor) (*Table, error) {
	start := c.Pos()
	c.SkipWhitespace()
	if !c.MatchBytes("xref") {
		return nil, errors.Errorf("xref: expected 'xref' keyword at offset %d", start)
	}

	table := NewTable()
	for {
		c.SkipWhitespace()
		b, ok := c.Peek()
		if !ok || !isDigitByte(b) {
			break
		}
		if err := parseSubsection(c, table); err != nil {
			return nil, err
		}
	}

	c.SkipWhitespace()
	if !c.MatchBytes("trailer") {
		return nil, errors.Errorf("xref: expected 'trailer' keyword at offset %d", c.Pos())
	}
	c.SkipWhitespace()

	dict, err := raw.ExtractDictionary(c)
	if err != nil {
		return nil, errors.Wrap(err, "xref: failed to parse trailer dictionary")
	}
	trailer, err := BuildTrailer(dict)
	if err != nil {
		return nil, errors.Wrap(err, "xref: malformed trailer")
	}
	table.Trailer = trailer
	return table, nil
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

func parseSubsection(c *raw.Cursor, table *Table) error {
	startTok := c.TakeWhile(isDigitByte)
	startNum, err := strconv.Atoi(string(startTok))
	if err != nil {
		return errors.Wrapf(err, "xref: invalid subsection start")
	}
	c.SkipWhitespace()

	countTok := c.TakeWhile(isDigitByte)
	count, err := strconv.Atoi(string(countTok))
	if err != nil {
		return errors.Wrapf(err, "xref: invalid subsection count")
	}

	for i := 0; i < count; i++ {
		c.SkipWhitespace()
		entry, err := parseEntry(c)
		if err != nil {
			return errors.Wrapf(err, "xref: entry %d", startNum+i)
		}
		table.Entries[startNum+i] = entry
	}
	return nil
}

// parseEntry reads one fixed-width classical entry:
//
//	nnnnnnnnnn ggggg f/n
func parseEntry(c *raw.Cursor) (Entry, error) {
	offTok := c.TakeWhile(isDigitByte)
	offset, err := strconv.ParseInt(string(offTok), 10, 64)
	if err != nil {
		return Entry{}, errors.Wrap(err, "invalid offset field")
	}
	c.SkipWhitespace()

	genTok := c.TakeWhile(isDigitByte)
	gen, err := strconv.Atoi(string(genTok))
	if err != nil {
		return Entry{}, errors.Wrap(err, "invalid generation field")
	}
	c.SkipWhitespace()

	typeByte, ok := c.Peek()
	if !ok {
		return Entry{}, errors.New("missing entry type byte")
	}
	c.Advance(1)

	switch typeByte {
	case 'n':
		return Entry{Kind: Plain, Offset: offset, Generation: gen}, nil
	case 'f':
		return Entry{Kind: Free, Offset: offset, Generation: gen}, nil
	default:
		return Entry{}, errors.Errorf("invalid entry type %q (expected 'n' or 'f')", typeByte)
	}
}
