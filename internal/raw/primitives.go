package raw

import (
	"strconv"
)

// ExtractNull recognizes the `null` keyword.
func ExtractNull(c *Cursor) (Null, error) {
	start := c.Pos()
	if !c.MatchBytes("null") {
		return Null{}, newBacktrack(start, "expected null")
	}
	return Null{}, nil
}

// ExtractBoolean recognizes `true` or `false`.
func ExtractBoolean(c *Cursor) (Boolean, error) {
	start := c.Pos()
	if c.MatchBytes("true") {
		return Boolean(true), nil
	}
	if c.MatchBytes("false") {
		return Boolean(false), nil
	}
	return false, newBacktrack(start, "expected boolean")
}

// ExtractNumeric recognizes a PDF number, returning either an Integer
// or a Real depending on whether a '.' or exponent-free fractional form
// was present. PDF numbers never use exponent notation (PDF 1.7 §7.3.3),
// unlike Go's own float literals, so a minimal hand-rolled scan is used
// rather than delegating straight to strconv.ParseFloat's grammar.
func ExtractNumeric(c *Cursor) (Object, error) {
	start := c.Pos()
	pos := c.Pos()
	buf := c.Bytes()

	if pos < len(buf) && (buf[pos] == '+' || buf[pos] == '-') {
		pos++
	}
	isReal := false
	for pos < len(buf) && isDigit(buf[pos]) {
		pos++
	}
	if pos < len(buf) && buf[pos] == '.' {
		isReal = true
		pos++
		for pos < len(buf) && isDigit(buf[pos]) {
			pos++
		}
	}
	if pos == start || (pos-start == 1 && (buf[start] == '+' || buf[start] == '-')) {
		return nil, newBacktrack(start, "expected number")
	}

	lit := string(buf[start:pos])
	c.Seek(pos)

	if isReal {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, newCut(start, "malformed real %q: %v", lit, err)
		}
		return Real(f), nil
	}
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		// Some PDF writers emit integers too large for int64; fall back
		// to float so the document still loads.
		f, ferr := strconv.ParseFloat(lit, 64)
		if ferr != nil {
			return nil, newCut(start, "malformed number %q: %v", lit, err)
		}
		return Real(f), nil
	}
	return Integer(n), nil
}

// ExtractName recognizes a `/Name`, decoding `#HH` hex escapes per PDF
// 1.7 §7.3.5.
func ExtractName(c *Cursor) (Name, error) {
	start := c.Pos()
	if b, ok := c.Peek(); !ok || b != '/' {
		return "", newBacktrack(start, "expected name")
	}
	c.Advance(1)

	buf := c.Bytes()
	pos := c.Pos()
	out := make([]byte, 0, 16)
	for pos < len(buf) && isRegular(buf[pos]) {
		if buf[pos] == '#' && pos+2 < len(buf) && isHexDigit(buf[pos+1]) && isHexDigit(buf[pos+2]) {
			out = append(out, hexByte(buf[pos+1], buf[pos+2]))
			pos += 3
			continue
		}
		out = append(out, buf[pos])
		pos++
	}
	c.Seek(pos)
	return Name(out), nil
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexDigitValue(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	default:
		return 0
	}
}

func hexByte(hi, lo byte) byte {
	return hexDigitValue(hi)<<4 | hexDigitValue(lo)
}

// ExtractLiteralString recognizes a `(...)` literal string, resolving
// backslash escapes, octal escapes, line-continuation and balanced
// nested parens per PDF 1.7 §7.3.4.2.
//
// Escape grammar restated from a from-scratch byte-level string-escape
// reader: backslash-letter escapes, up-to-three-digit octal escapes,
// a trailing backslash-newline as a line continuation that contributes
// no character, and paren nesting depth tracked so an unescaped `(`
// doesn't end the string early.
func ExtractLiteralString(c *Cursor) (PdfString, error) {
	start := c.Pos()
	if b, ok := c.Peek(); !ok || b != '(' {
		return nil, newBacktrack(start, "expected literal string")
	}
	c.Advance(1)

	buf := c.Bytes()
	pos := c.Pos()
	depth := 1
	out := make([]byte, 0, 32)

	for pos < len(buf) {
		b := buf[pos]
		switch b {
		case '(':
			depth++
			out = append(out, b)
			pos++
		case ')':
			depth--
			pos++
			if depth == 0 {
				c.Seek(pos)
				return PdfString(out), nil
			}
			out = append(out, b)
		case '\\':
			pos++
			if pos >= len(buf) {
				return nil, newCut(start, "unterminated escape in literal string")
			}
			esc := buf[pos]
			switch esc {
			case 'n':
				out = append(out, '\n')
				pos++
			case 'r':
				out = append(out, '\r')
				pos++
			case 't':
				out = append(out, '\t')
				pos++
			case 'b':
				out = append(out, '\b')
				pos++
			case 'f':
				out = append(out, '\f')
				pos++
			case '(', ')', '\\':
				out = append(out, esc)
				pos++
			case '\r':
				pos++
				if pos < len(buf) && buf[pos] == '\n' {
					pos++
				}
			case '\n':
				pos++
			default:
				if isDigit(esc) {
					val := 0
					n := 0
					for n < 3 && pos < len(buf) && buf[pos] >= '0' && buf[pos] <= '7' {
						val = val*8 + int(buf[pos]-'0')
						pos++
						n++
					}
					out = append(out, byte(val))
				} else {
					// Unknown escape: the backslash is dropped and the
					// byte is kept literally, per PDF 1.7 §7.3.4.2 Table 3.
					out = append(out, esc)
					pos++
				}
			}
		default:
			out = append(out, b)
			pos++
		}
	}
	return nil, newCut(start, "unterminated literal string")
}

// ExtractHexString recognizes a `<...>` hex string. Whitespace between
// digit pairs is ignored; an odd trailing digit is padded with 0, per
// PDF 1.7 §7.3.4.3.
func ExtractHexString(c *Cursor) (PdfString, error) {
	start := c.Pos()
	if b, ok := c.Peek(); !ok || b != '<' {
		return nil, newBacktrack(start, "expected hex string")
	}
	if b2, ok := c.PeekAt(1); ok && b2 == '<' {
		return nil, newBacktrack(start, "expected hex string, found dictionary")
	}
	c.Advance(1)

	buf := c.Bytes()
	pos := c.Pos()
	var digits []byte
	for pos < len(buf) && buf[pos] != '>' {
		if isHexDigit(buf[pos]) {
			digits = append(digits, buf[pos])
		} else if !isWhitespace(buf[pos]) {
			return nil, newCut(pos, "invalid hex digit %q", buf[pos])
		}
		pos++
	}
	if pos >= len(buf) {
		return nil, newCut(start, "unterminated hex string")
	}
	pos++ // consume '>'
	c.Seek(pos)

	if len(digits)%2 != 0 {
		digits = append(digits, '0')
	}
	out := make([]byte, len(digits)/2)
	for i := range out {
		out[i] = hexByte(digits[2*i], digits[2*i+1])
	}
	return PdfString(out), nil
}

// ExtractReference recognizes `N G R`, backtracking cleanly if the
// trailing `R` is absent (the input was just an Integer followed by
// another Integer, e.g. two array elements).
func ExtractReference(c *Cursor) (Reference, error) {
	start := c.Pos()
	look := c.Clone()
	look.SkipWhitespace()

	numObj, err := ExtractNumeric(look)
	if err != nil {
		return Reference{}, newBacktrack(start, "expected reference")
	}
	num, ok := numObj.(Integer)
	if !ok || num < 0 {
		return Reference{}, newBacktrack(start, "expected non-negative object number")
	}

	look.SkipWhitespace()
	genObj, err := ExtractNumeric(look)
	if err != nil {
		return Reference{}, newBacktrack(start, "expected reference")
	}
	gen, ok := genObj.(Integer)
	if !ok || gen < 0 {
		return Reference{}, newBacktrack(start, "expected non-negative generation number")
	}

	look.SkipWhitespace()
	if b, ok := look.Peek(); !ok || b != 'R' {
		return Reference{}, newBacktrack(start, "expected reference")
	}
	look.Advance(1)
	if b, ok := look.Peek(); ok && isRegular(b) {
		return Reference{}, newBacktrack(start, "expected reference")
	}

	*c = *look
	return Reference{Num: int(num), Gen: int(gen)}, nil
}
