package font

import (
	"golang.org/x/text/encoding/unicode"

	"github.com/coregx/pdfgraph/internal/raw"
)

// CMap is a character-code → Unicode mapping compiled from a ToUnicode
// stream's bfchar/bfrange sections (PDF 1.7 §9.10.3).
//
// Grounded in the earlier reader's internal/extractor/cmap_parser.go (removed
// during adaptation): same bfchar/bfrange scan, restated over
// internal/raw's Cursor/hex-string extractor instead of the earlier reader's
// line-oriented tokenizer.
type CMap struct {
	table map[uint16][]rune
}

// Lookup returns the Unicode sequence ToUnicode maps code to, if any.
func (c *CMap) Lookup(code uint16) ([]rune, bool) {
	rs, ok := c.table[code]
	return rs, ok
}

var utf16BEDecoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()

// ParseCMap compiles a decoded ToUnicode CMap stream's bfchar/bfrange
// sections into a CMap. Everything outside those sections (codespace
// ranges, CIDSystemInfo, PostScript procedure boilerplate) is skipped.
func ParseCMap(data []byte) (*CMap, error) {
	cmap := &CMap{table: make(map[uint16][]rune)}
	c := raw.NewCursor(data)

	for {
		c.SkipWhitespace()
		if c.Len() == 0 {
			break
		}
		start := c.Pos()
		switch {
		case c.MatchBytes("beginbfchar"):
			parseBfChar(c, cmap)
		case c.MatchBytes("beginbfrange"):
			parseBfRange(c, cmap)
		default:
			skipToken(c)
		}
		if c.Pos() == start {
			c.Advance(1)
		}
	}
	return cmap, nil
}

func skipToken(c *raw.Cursor) {
	b, ok := c.Peek()
	if !ok {
		return
	}
	switch b {
	case '<':
		if _, err := raw.ExtractHexString(c); err != nil {
			c.Advance(1)
		}
	case '[':
		if _, err := raw.ExtractArray(c); err != nil {
			c.Advance(1)
		}
	case '/':
		if _, err := raw.ExtractName(c); err != nil {
			c.Advance(1)
		}
	case '(':
		if _, err := raw.ExtractLiteralString(c); err != nil {
			c.Advance(1)
		}
	default:
		c.TakeWhile(isCMapWordByte)
	}
}

func isCMapWordByte(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', 0, '<', '>', '[', ']', '(', ')', '/', '%':
		return false
	default:
		return true
	}
}

func parseBfChar(c *raw.Cursor, cmap *CMap) {
	for {
		c.SkipWhitespace()
		if c.Len() == 0 || c.MatchBytes("endbfchar") {
			return
		}
		src, err := raw.ExtractHexString(c)
		if err != nil {
			c.Advance(1)
			continue
		}
		c.SkipWhitespace()
		dst, err := raw.ExtractHexString(c)
		if err != nil {
			continue
		}
		cmap.table[hexCode(src)] = utf16BEToRunes(dst)
	}
}

func parseBfRange(c *raw.Cursor, cmap *CMap) {
	for {
		c.SkipWhitespace()
		if c.Len() == 0 || c.MatchBytes("endbfrange") {
			return
		}
		loSrc, err := raw.ExtractHexString(c)
		if err != nil {
			c.Advance(1)
			continue
		}
		c.SkipWhitespace()
		hiSrc, err := raw.ExtractHexString(c)
		if err != nil {
			continue
		}
		c.SkipWhitespace()
		lo, hi := hexCode(loSrc), hexCode(hiSrc)

		if b, ok := c.Peek(); ok && b == '[' {
			arr, err := raw.ExtractArray(c)
			if err != nil {
				continue
			}
			for i, el := range *arr {
				dst, ok := el.(raw.PdfString)
				if !ok {
					continue
				}
				code := lo + uint16(i)
				if code > hi {
					break
				}
				cmap.table[code] = utf16BEToRunes(dst)
			}
			continue
		}

		dst, err := raw.ExtractHexString(c)
		if err != nil {
			continue
		}
		base := utf16BEToRunes(dst)
		// Use uint32 so the loop terminates when hi is 0xFFFF (the
		// common Identity <0000> <ffff> ToUnicode range) — a uint16
		// counter would wrap 0xFFFF -> 0x0000 and never reach the
		// `code <= hi` exit.
		for code := uint32(lo); code <= uint32(hi); code++ {
			r := append([]rune(nil), base...)
			if len(r) > 0 {
				r[len(r)-1] += rune(code - uint32(lo))
			}
			cmap.table[uint16(code)] = r
		}
	}
}

func hexCode(s raw.PdfString) uint16 {
	var v uint32
	for _, b := range s {
		v = v<<8 | uint32(b)
	}
	return uint16(v)
}

func utf16BEToRunes(s raw.PdfString) []rune {
	decoded, err := utf16BEDecoder.Bytes([]byte(s))
	if err != nil {
		return []rune(string(s))
	}
	return []rune(string(decoded))
}
