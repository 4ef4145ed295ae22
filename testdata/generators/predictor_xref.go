//go:build ignore

// Generator for testdata/pdfs/predictor_xref.pdf: a minimal PDF 1.5
// file whose cross-reference section is a PNG-Up-predictor-compressed
// xref stream (PDF 1.7 §7.5.8.3 + Predictor 12), exercising the path
// internal/filter and internal/xref's stream-form xref decoder share
// when no classical xref table exists anywhere in the file.
//
// Run with: go run predictor_xref.go
package main

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"os"
	"path/filepath"
)

// xrefEntry is one row of the raw (pre-predictor) xref stream body:
// /W [1 2 1] gives a 1-byte type, 2-byte field2, 1-byte field3.
type xrefEntry struct {
	typ     byte
	offset  int
	genOrIx byte
}

func main() {
	var pdf bytes.Buffer

	pdf.WriteString("%PDF-1.5\n%\xe2\xe3\xcf\xd3\n")

	offCatalog := pdf.Len()
	pdf.WriteString("1 0 obj\n<</Type/Catalog/Pages 2 0 R>>\nendobj\n")

	offPages := pdf.Len()
	pdf.WriteString("2 0 obj\n<</Type/Pages/Kids[3 0 R]/Count 1>>\nendobj\n")

	offPage := pdf.Len()
	pdf.WriteString("3 0 obj\n<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]/Contents 4 0 R/Resources<</Font<</F1 5 0 R>>>>>>\nendobj\n")

	offContents := pdf.Len()
	content := []byte("BT /F1 18 Tf 72 700 Td (predictor-compressed xref fixture) Tj ET")
	pdf.WriteString(fmt.Sprintf("4 0 obj\n<</Length %d>>\nstream\n", len(content)))
	pdf.Write(content)
	pdf.WriteString("\nendstream\nendobj\n")

	offFont := pdf.Len()
	pdf.WriteString("5 0 obj\n<</Type/Font/Subtype/Type1/BaseFont/Times-Roman>>\nendobj\n")

	xrefOff := pdf.Len()

	entries := []xrefEntry{
		{typ: 0, offset: 0, genOrIx: 0},
		{typ: 1, offset: offCatalog, genOrIx: 0},
		{typ: 1, offset: offPages, genOrIx: 0},
		{typ: 1, offset: offPage, genOrIx: 0},
		{typ: 1, offset: offContents, genOrIx: 0},
		{typ: 1, offset: offFont, genOrIx: 0},
	}

	var rawRows bytes.Buffer
	for _, e := range entries {
		rawRows.WriteByte(e.typ)
		rawRows.WriteByte(byte(e.offset >> 8))
		rawRows.WriteByte(byte(e.offset & 0xFF))
		rawRows.WriteByte(e.genOrIx)
	}

	predicted := applyUpPredictor(rawRows.Bytes(), 4)

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	zw.Write(predicted)
	zw.Close()

	pdf.WriteString(fmt.Sprintf("6 0 obj\n<</Type/XRef/Size 6/W[1 2 1]/Root 1 0 R/DecodeParms<</Columns 4/Predictor 12>>/Filter/FlateDecode/Length %d>>\nstream\n", compressed.Len()))
	pdf.Write(compressed.Bytes())
	pdf.WriteString("\nendstream\nendobj\n")

	pdf.WriteString(fmt.Sprintf("startxref\n%d\n%%%%EOF\n", xrefOff))

	outputPath := filepath.Join("..", "pdfs", "predictor_xref.pdf")
	if err := os.WriteFile(outputPath, pdf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "predictor_xref: writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d bytes)\n", outputPath, pdf.Len())
}

// applyUpPredictor prefixes each rowWidth-byte row with a PNG filter-type
// byte (2 == Up) and rewrites the row as its delta from the previous row,
// the inverse of internal/filter's decode path.
func applyUpPredictor(data []byte, rowWidth int) []byte {
	var out bytes.Buffer
	prev := make([]byte, rowWidth)
	for i := 0; i < len(data); i += rowWidth {
		row := data[i : i+rowWidth]
		out.WriteByte(2)
		for j := 0; j < rowWidth; j++ {
			out.WriteByte(row[j] - prev[j])
		}
		copy(prev, row)
	}
	return out.Bytes()
}
