package filter

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/coregx/pdfgraph/internal/raw"
	"github.com/pkg/errors"
)

// FlateDecode inflates a zlib-wrapped stream, per PDF 1.7 §7.4.4.
//
// Grounded in the earlier reader's flateDecoder (internal/parser/xref.go,
// removed), which did exactly this with stdlib compress/zlib; no
// ecosystem inflate package improves on the standard library here, so
// this stays on compress/zlib rather than bringing in a third-party one.
func FlateDecode(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "flate: invalid zlib stream")
	}
	defer func() { _ = r.Close() }()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, errors.Wrap(err, "flate: decompression failed")
	}
	return buf.Bytes(), nil
}

const maxPredictorColumns = 100_000

// ApplyPredictor applies the PNG predictor named by a filter's
// /DecodeParms, if any. A missing /Predictor (or /Predictor 1) is a
// no-op; the TIFF predictor (2) is reported as not implemented.
//
// Grounded in the earlier reader's applyPNGPredictor/paethPredictor
// (internal/parser, removed during adaptation but preserved here near
// verbatim) — this is the one piece of filter-layer logic the earlier implementation
// itself implements and tests, unlike the Rust original this system was
// distilled from, which leaves predictor support an explicit
// unimplemented TODO in its flate filter.
func ApplyPredictor(data []byte, parms *raw.Dictionary) ([]byte, error) {
	if parms == nil {
		return data, nil
	}
	predictor := getInt(parms, "Predictor", 1)
	if predictor <= 1 {
		return data, nil
	}
	if predictor == 2 {
		return nil, NotImplemented("TIFF predictor")
	}
	if predictor < 10 || predictor > 15 {
		return nil, errors.Errorf("filter: unsupported predictor %d", predictor)
	}

	colors := getInt(parms, "Colors", 1)
	bpc := getInt(parms, "BitsPerComponent", 8)
	columns := getInt(parms, "Columns", 1)

	bytesPerPixel := (colors*bpc + 7) / 8
	rowBytes := (colors*bpc*columns + 7) / 8

	return applyPNGPredictor(data, rowBytes, bytesPerPixel)
}

func getInt(d *raw.Dictionary, key raw.Name, def int) int {
	v := d.Get(key)
	if n, ok := v.(raw.Integer); ok {
		return int(n)
	}
	return def
}

// applyPNGPredictor reverses PNG-style row filtering (PDF 1.7 §7.4.4.4,
// borrowing the PNG spec's five filter types). Each row is prefixed
// with a filter-type byte followed by rowBytes bytes of filtered data.
func applyPNGPredictor(data []byte, rowBytes, bpp int) ([]byte, error) {
	if rowBytes <= 0 || rowBytes > maxPredictorColumns {
		return nil, errors.Errorf("filter: predictor row size %d out of valid range", rowBytes)
	}
	stride := rowBytes + 1
	if len(data)%stride != 0 {
		return nil, errors.Errorf("filter: predictor data length %d not divisible by row size %d", len(data), stride)
	}

	rows := len(data) / stride
	out := make([]byte, 0, rows*rowBytes)
	prevRow := make([]byte, rowBytes)

	for r := 0; r < rows; r++ {
		rowStart := r * stride
		filterType := data[rowStart]
		src := data[rowStart+1 : rowStart+1+rowBytes]
		row := make([]byte, rowBytes)

		switch filterType {
		case 0: // None
			copy(row, src)
		case 1: // Sub
			for i := 0; i < rowBytes; i++ {
				var left byte
				if i-bpp >= 0 {
					left = row[i-bpp]
				}
				row[i] = src[i] + left
			}
		case 2: // Up
			for i := 0; i < rowBytes; i++ {
				row[i] = src[i] + prevRow[i]
			}
		case 3: // Average
			for i := 0; i < rowBytes; i++ {
				var left int
				if i-bpp >= 0 {
					left = int(row[i-bpp])
				}
				up := int(prevRow[i])
				row[i] = src[i] + byte((left+up)/2)
			}
		case 4: // Paeth
			for i := 0; i < rowBytes; i++ {
				var left, upLeft byte
				if i-bpp >= 0 {
					left = row[i-bpp]
					upLeft = prevRow[i-bpp]
				}
				up := prevRow[i]
				row[i] = src[i] + paethPredictor(left, up, upLeft)
			}
		default:
			return nil, errors.Errorf("filter: unknown PNG filter type: %d", filterType)
		}

		out = append(out, row...)
		prevRow = row
	}

	return out, nil
}

// paethPredictor implements the PNG Paeth predictor (PNG spec §6.6):
// pick whichever of left/up/upLeft is closest to left+up-upLeft, with
// ties broken in favor of left then up.
func paethPredictor(left, up, upLeft byte) byte {
	p := int(left) + int(up) - int(upLeft)
	pLeft := abs(p - int(left))
	pUp := abs(p - int(up))
	pUpLeft := abs(p - int(upLeft))

	switch {
	case pLeft <= pUp && pLeft <= pUpLeft:
		return left
	case pUp <= pUpLeft:
		return up
	default:
		return upLeft
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
