package xref

import (
	"bytes"

	"github.com/coregx/pdfgraph/internal/raw"
	"github.com/pkg/errors"
)

// DefaultMaxChainDepth bounds how many /Prev links are followed before
// giving up, guarding against a cyclic or unreasonably long update
// chain. Callers that expect unusually long incremental-update chains
// can raise it via pdfgraph.WithMaxXRefChainDepth.
//
// Grounded in the earlier reader's Reader.maxXRefChainDepth (internal/parser/
// reader.go, removed), same constant value.
const DefaultMaxChainDepth = 100

// searchWindow is how many trailing bytes are scanned for the
// `startxref` keyword, per PDF 1.7 Appendix H implementation note 18
// (readers should not assume the footer is at the exact end of file).
const searchWindow = 2048

// LocateStartXRef scans the tail of buf for the final `startxref`
// keyword and returns the byte offset it points to.
func LocateStartXRef(buf []byte) (int64, error) {
	tailStart := len(buf) - searchWindow
	if tailStart < 0 {
		tailStart = 0
	}
	tail := buf[tailStart:]

	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return 0, errors.New("xref: startxref keyword not found")
	}

	c := raw.NewCursor(tail)
	c.Seek(idx)
	c.MatchBytes("startxref")
	c.SkipWhitespace()

	digits := c.TakeWhile(func(b byte) bool { return b >= '0' && b <= '9' })
	if len(digits) == 0 {
		return 0, errors.New("xref: startxref missing offset")
	}
	var offset int64
	for _, d := range digits {
		offset = offset*10 + int64(d-'0')
	}
	return offset, nil
}

// Load locates, parses and merges the full cross-reference chain of a
// PDF file, following /Prev links with newest-wins semantics. A hybrid
// file's /XRefStm link is recorded in the Trailer but not followed.
// maxDepth bounds the /Prev chain walk; callers with no
// preference should pass DefaultMaxChainDepth.
//
// Grounded in the earlier reader's Reader.parseXRefAndTrailer loop
// (internal/parser/reader.go, removed), which walked the same /Prev
// chain with the same depth guard and the same MergeOlder semantics.
func Load(buf []byte, maxDepth int) (*Table, error) {
	offset, err := LocateStartXRef(buf)
	if err != nil {
		return nil, err
	}

	merged := NewTable()
	var firstTrailer *Trailer
	seen := map[int64]bool{}

	for depth := 0; depth < maxDepth; depth++ {
		if offset < 0 || int(offset) >= len(buf) {
			return nil, errors.Errorf("xref: offset %d out of bounds", offset)
		}
		if seen[offset] {
			break // cyclic /Prev chain; stop rather than loop forever
		}
		seen[offset] = true

		c := raw.NewCursor(buf)
		c.Seek(int(offset))
		c.SkipWhitespace()

		table, err := parseSection(c)
		if err != nil {
			return nil, errors.Wrapf(err, "xref: section at offset %d", offset)
		}

		merged.MergeOlder(table)
		if firstTrailer == nil {
			firstTrailer = table.Trailer
		}

		if table.Trailer == nil || table.Trailer.Prev == 0 {
			break
		}
		offset = int64(table.Trailer.Prev)
	}

	merged.Trailer = firstTrailer
	return merged, nil
}

// parseSection parses either xref form, branching on whether the
// cursor sees `xref` or an integer (the start of an indirect object
// header, meaning an xref stream).
func parseSection(c *raw.Cursor) (*Table, error) {
	b, ok := c.Peek()
	if !ok {
		return nil, errors.New("xref: unexpected end of input")
	}
	if b == 'x' {
		return ParseClassical(c)
	}
	return ParseStream(c)
}
