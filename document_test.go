package pdfgraph

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/pdfgraph/internal/raw"
)

// pdfBuilder assembles a minimal PDF byte-for-byte, tracking each
// indirect object's offset so a matching classical xref table and
// trailer can be appended afterward — the same "write objects, note
// offsets, emit xref" shape a real writer follows, scaled down to what
// a test fixture needs.
type pdfBuilder struct {
	buf     []byte
	offsets map[int]int64
}

func newPDFBuilder() *pdfBuilder {
	b := &pdfBuilder{offsets: make(map[int]int64)}
	b.buf = append(b.buf, "%PDF-1.7\n"...)
	return b
}

func (b *pdfBuilder) object(num int, body string) {
	b.offsets[num] = int64(len(b.buf))
	b.buf = append(b.buf, fmt.Sprintf("%d 0 obj\n%s\nendobj\n", num, body)...)
}

func (b *pdfBuilder) stream(num int, dictBody, streamData string) {
	b.offsets[num] = int64(len(b.buf))
	b.buf = append(b.buf, fmt.Sprintf(
		"%d 0 obj\n<< %s /Length %d >>\nstream\n%s\nendstream\nendobj\n",
		num, dictBody, len(streamData), streamData)...)
}

func (b *pdfBuilder) finish(rootNum, maxNum int) []byte {
	xrefOffset := int64(len(b.buf))
	b.buf = append(b.buf, fmt.Sprintf("xref\n0 %d\n", maxNum+1)...)
	b.buf = append(b.buf, "0000000000 65535 f \n"...)
	for i := 1; i <= maxNum; i++ {
		b.buf = append(b.buf, fmt.Sprintf("%010d 00000 n \n", b.offsets[i])...)
	}
	b.buf = append(b.buf, fmt.Sprintf(
		"trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF",
		maxNum+1, rootNum, xrefOffset)...)
	return b.buf
}

// buildOnePagePDF produces a single-page document: a Catalog, one Pages
// root with an inherited MediaBox, one Page leaf with its own Resources/
// Font and a content stream drawing one string of text.
func buildOnePagePDF() []byte {
	b := newPDFBuilder()
	b.object(1, "<< /Type /Catalog /Pages 2 0 R /PageLayout /OneColumn >>")
	b.object(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 612 792] >>")
	b.object(3, "<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>")
	// Widths cover codes 72-105 (H...i) with a uniform non-zero advance
	// so successive glyphs in "Hi" visibly move the text matrix right.
	widths := strings.TrimSpace(strings.Repeat("500 ", 105-72+1))
	b.object(4, fmt.Sprintf(
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /FirstChar 72 /LastChar 105 /Widths [%s] >>", widths))
	b.stream(5, "", "BT /F1 12 Tf 100 700 Td (Hi) Tj ET")
	return b.finish(1, 5)
}

func TestParseDocumentCatalogAndPages(t *testing.T) {
	doc, err := ParseDocument(buildOnePagePDF())
	require.NoError(t, err)

	cat, err := doc.Catalog()
	require.NoError(t, err)
	assert.Equal(t, PageLayoutOneColumn, cat.PageLayout)
	assert.Equal(t, PageModeUseNone, cat.PageMode)

	pages, err := doc.Pages()
	require.NoError(t, err)
	require.Len(t, pages, 1)

	mb := pages[0].MediaBox()
	assert.Equal(t, Rectangle{LLX: 0, LLY: 0, URX: 612, URY: 792}, mb)
	assert.Equal(t, mb, pages[0].CropBox(), "CropBox falls back to MediaBox")
}

func TestPageContentAndFonts(t *testing.T) {
	doc, err := ParseDocument(buildOnePagePDF())
	require.NoError(t, err)
	pages, err := doc.Pages()
	require.NoError(t, err)
	require.Len(t, pages, 1)

	content, err := pages[0].Content()
	require.NoError(t, err)
	assert.Contains(t, string(content), "Tj")

	fonts, err := pages[0].Fonts()
	require.NoError(t, err)
	require.Contains(t, fonts, raw.Name("F1"))
	assert.Equal(t, "Helvetica", fonts[raw.Name("F1")].Name())
}

func TestPageIterTextObjectsPositionsGlyphs(t *testing.T) {
	doc, err := ParseDocument(buildOnePagePDF())
	require.NoError(t, err)
	pages, err := doc.Pages()
	require.NoError(t, err)

	objects, err := pages[0].IterTextObjects()
	require.NoError(t, err)
	require.Len(t, objects, 1)
	require.Len(t, objects[0].Elements, 2)
	assert.Equal(t, 'H', objects[0].Elements[0].Char)
	assert.Equal(t, 'i', objects[0].Elements[1].Char)
	assert.Less(t, objects[0].Elements[0].LowerLeft.X, objects[0].Elements[1].LowerLeft.X)
}
