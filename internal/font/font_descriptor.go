// Package font builds Font values (simple and composite/CID) out of
// resolved PDF font dictionaries: width lookup, ascent/descent for
// bounding boxes, and character-code-to-Unicode decoding via an
// embedded CMap or a built-in encoding table.
//
// Grounded in the earlier reader's internal/fonts package (font_descriptor.go,
// ttf_parser.go, tounicode.go — the latter two removed during
// adaptation): the earlier reader's FontDescriptor generated metrics *for*
// embedding a TrueType font into a written PDF; this package instead
// materializes the same dictionary shape *from* an already-parsed PDF.
package font

import "github.com/coregx/pdfgraph/internal/raw"

// FontDescriptor mirrors a PDF FontDescriptor dictionary (PDF 1.7
// §9.8.1). Metric fields are glyph-space units (thousandths of an em),
// matching how the PDF file stores them; callers divide by 1000 when
// they need a fraction of the font size.
type FontDescriptor struct {
	FontName    raw.Name `pdf:"FontName,optional"`
	Flags       int      `pdf:"Flags,optional"`
	ItalicAngle float64  `pdf:"ItalicAngle,optional"`
	Ascent      float64  `pdf:"Ascent,optional,default=0"`
	Descent     float64  `pdf:"Descent,optional,default=0"`
	CapHeight   float64  `pdf:"CapHeight,optional"`
	StemV       float64  `pdf:"StemV,optional"`
	XHeight     float64  `pdf:"XHeight,optional"`
	MissingWidth float64 `pdf:"MissingWidth,optional,default=0"`
}
