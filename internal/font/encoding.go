package font

import "github.com/coregx/pdfgraph/internal/raw"

// Encoding maps a single-byte character code to a Unicode rune, used as
// the fallback when a simple font carries no ToUnicode CMap. A zero
// entry means "unmapped"; callers fall back to byte-as-ASCII.
type Encoding struct {
	table [256]rune
}

// Lookup returns the rune code maps to, if the encoding defines one.
func (e *Encoding) Lookup(code int) (rune, bool) {
	if code < 0 || code > 255 {
		return 0, false
	}
	r := e.table[code]
	if r == 0 {
		return 0, false
	}
	return r, true
}

// StandardEncoding approximates PDF 1.7 Appendix D's StandardEncoding:
// identical to ASCII below 128. The high half of StandardEncoding
// diverges from Latin-1 for a scattering of punctuation and accented
// glyphs; this implementation leaves those unmapped rather than
// misrepresenting them, falling back to byte-as-ASCII for those codes.
func StandardEncoding() *Encoding {
	e := &Encoding{}
	for i := 0; i < 128; i++ {
		e.table[i] = rune(i)
	}
	return e
}

// WinAnsiEncoding approximates PDF 1.7 Appendix D's WinAnsiEncoding,
// which is identical to Windows-1252 and therefore to Latin-1 (ISO
// 8859-1) except for the 0x80-0x9F block; that block is left unmapped
// here rather than guessed.
func WinAnsiEncoding() *Encoding {
	e := &Encoding{}
	for i := 0; i < 256; i++ {
		if i >= 0x80 && i <= 0x9F {
			continue
		}
		e.table[i] = rune(i)
	}
	return e
}

// MacRomanEncoding is approximated by the whole WinAnsiEncoding table:
// the ASCII range is identical, but codes 0x80-0xFF map to their
// WinAnsi characters, not to the Mac Roman ones.
func MacRomanEncoding() *Encoding {
	return WinAnsiEncoding()
}

func encodingByName(name raw.Name) *Encoding {
	switch name {
	case "WinAnsiEncoding":
		return WinAnsiEncoding()
	case "MacRomanEncoding":
		return MacRomanEncoding()
	default:
		return StandardEncoding()
	}
}

// Resolver resolves an indirect reference to its direct object, the
// operation BuildEncoding needs to follow a font's /Encoding /Differences
// array when it was written as an indirect object.
type Resolver interface {
	Resolved(obj raw.Object) (raw.Object, error)
}

// BuildEncoding builds an Encoding from a font dictionary's /Encoding
// entry, which PDF 1.7 §9.6.6 allows to be either a bare base-encoding
// name or a dictionary naming a base encoding plus a /Differences array
// of code/glyph-name pairs.
func BuildEncoding(obj raw.Object, r Resolver) *Encoding {
	switch v := obj.(type) {
	case raw.Name:
		return encodingByName(v)
	case *raw.Dictionary:
		base := StandardEncoding()
		if baseName, ok := v.Get("BaseEncoding").(raw.Name); ok {
			base = encodingByName(baseName)
		}
		if diffs := v.Get("Differences"); diffs != nil {
			if resolved, err := r.Resolved(diffs); err == nil {
				if arr, ok := resolved.(*raw.Array); ok {
					applyDifferences(base, *arr)
				}
			}
		}
		return base
	default:
		return StandardEncoding()
	}
}

func applyDifferences(e *Encoding, items []raw.Object) {
	code := 0
	for _, item := range items {
		switch v := item.(type) {
		case raw.Integer:
			code = int(v)
		case raw.Name:
			if code >= 0 && code < 256 {
				if r := glyphNameToRune(string(v)); r != 0 {
					e.table[code] = r
				}
			}
			code++
		}
	}
}

func glyphNameToRune(name string) rune {
	if r, ok := glyphNames[name]; ok {
		return r
	}
	if len(name) == 1 {
		return rune(name[0])
	}
	return 0
}

// glyphNames covers the common ASCII-range Adobe glyph names that show
// up in /Differences arrays for subset fonts; the full Adobe Glyph List
// (thousands of entries, mostly ligatures and symbol sets this system's
// text extraction use case never needs) is out of scope.
var glyphNames = map[string]rune{
	"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#',
	"dollar": '$', "percent": '%', "ampersand": '&', "quotesingle": '\'',
	"quoteright": '\'', "parenleft": '(', "parenright": ')', "asterisk": '*',
	"plus": '+', "comma": ',', "hyphen": '-', "period": '.', "slash": '/',
	"zero": '0', "one": '1', "two": '2', "three": '3', "four": '4',
	"five": '5', "six": '6', "seven": '7', "eight": '8', "nine": '9',
	"colon": ':', "semicolon": ';', "less": '<', "equal": '=', "greater": '>',
	"question": '?', "at": '@', "bracketleft": '[', "backslash": '\\',
	"bracketright": ']', "asciicircum": '^', "underscore": '_',
	"grave": '`', "braceleft": '{', "bar": '|', "braceright": '}',
	"asciitilde": '~', "quoteleft": '`',
}
