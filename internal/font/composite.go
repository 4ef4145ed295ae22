package font

import (
	"github.com/pkg/errors"

	"github.com/coregx/pdfgraph/internal/builder"
	"github.com/coregx/pdfgraph/internal/content"
	"github.com/coregx/pdfgraph/internal/raw"
)

// WEntry is one parsed element of a CIDFont's /W width array, in
// either of its two forms (PDF 1.7 §9.7.4.3): a run of explicit
// per-CID widths starting at Start (Widths non-nil), or a uniform
// width for the CID range [Start, End] (Widths nil).
type WEntry struct {
	Start, End int
	Widths     []float64
	Width      float64
}

// CompositeFont is a Type0 font wrapping a single descendant CIDFont:
// two-byte character codes (Identity-H/V encoding assumed, the only
// CMap encoding this system resolves — custom predefined CMaps beyond
// Identity are out of scope), CID-indexed widths, and an optional
// ToUnicode CMap.
type CompositeFont struct {
	BaseName   raw.Name
	DW         float64
	WEntries   []WEntry
	Descriptor *FontDescriptor
	ToUnicode  *CMap
}

func (f *CompositeFont) Name() string { return string(f.BaseName) }

func (f *CompositeFont) Ascent() float64 {
	if f.Descriptor != nil && f.Descriptor.Ascent != 0 {
		return f.Descriptor.Ascent / 1000
	}
	return 0.75
}

func (f *CompositeFont) Descent() float64 {
	if f.Descriptor != nil && f.Descriptor.Descent != 0 {
		return f.Descriptor.Descent / 1000
	}
	return -0.25
}

// widthForCID scans /W entries in their original parse order and
// returns the first match, so an earlier entry wins when ranges
// overlap; falls back to /DW.
func (f *CompositeFont) widthForCID(cid int) float64 {
	for _, e := range f.WEntries {
		if e.Widths != nil {
			if idx := cid - e.Start; cid >= e.Start && idx < len(e.Widths) {
				return e.Widths[idx] / 1000
			}
			continue
		}
		if cid >= e.Start && cid <= e.End {
			return e.Width / 1000
		}
	}
	return f.DW / 1000
}

// Process implements content.Font: two-byte big-endian code units,
// Identity CID mapping. Single-byte words never apply Tw to composite
// fonts (PDF 1.7 §9.3.3), so IsSpace is always false.
func (f *CompositeFont) Process(s []byte) []content.Glyph {
	out := make([]content.Glyph, 0, len(s)/2)
	for i := 0; i+1 < len(s); i += 2 {
		code := int(s[i])<<8 | int(s[i+1])
		r := rune(code)
		if f.ToUnicode != nil {
			if rs, ok := f.ToUnicode.Lookup(uint16(code)); ok && len(rs) > 0 {
				r = rs[0]
			}
		}
		out = append(out, content.Glyph{Char: r, Width: f.widthForCID(code)})
	}
	return out
}

// BuildCompositeFont materializes a CompositeFont from a Type0 font
// dictionary, following its single /DescendantFonts entry for /DW, /W
// and /FontDescriptor per PDF 1.7 §9.7.
func BuildCompositeFont(b *builder.Builder, dict *raw.Dictionary) (*CompositeFont, error) {
	f := &CompositeFont{DW: 1000}

	if name, ok := dict.Get("BaseFont").(raw.Name); ok {
		f.BaseName = name
	}
	if ref, ok := dict.Get("ToUnicode").(raw.Reference); ok {
		if data, err := b.StreamData(ref); err == nil {
			if cmap, err := ParseCMap(data); err == nil {
				f.ToUnicode = cmap
			}
		}
	}

	descFonts, ok := dict.Get("DescendantFonts").(*raw.Array)
	if !ok || len(*descFonts) == 0 {
		return f, nil
	}
	cidDict, err := resolveDictElem(b, (*descFonts)[0])
	if err != nil {
		return f, nil
	}

	switch dw := cidDict.Get("DW").(type) {
	case raw.Integer:
		f.DW = float64(dw)
	case raw.Real:
		f.DW = float64(dw)
	}

	if wObj := cidDict.Get("W"); wObj != nil {
		resolved, err := b.Resolved(wObj)
		if err == nil {
			if arr, ok := resolved.(*raw.Array); ok {
				f.WEntries = parseWArray(b, arr)
			}
		}
	}

	if ref, ok := cidDict.Get("FontDescriptor").(raw.Reference); ok {
		if descDict, err := b.ResolveDict(ref); err == nil {
			desc := &FontDescriptor{}
			if err := raw.FromRawDict(descDict, desc); err == nil {
				f.Descriptor = desc
			}
		}
	}

	return f, nil
}

func resolveDictElem(b *builder.Builder, o raw.Object) (*raw.Dictionary, error) {
	resolved, err := b.Resolved(o)
	if err != nil {
		return nil, err
	}
	d, ok := resolved.(*raw.Dictionary)
	if !ok {
		return nil, errors.Errorf("font: expected dictionary, got %s", resolved.Kind())
	}
	return d, nil
}

func parseWArray(b *builder.Builder, arr *raw.Array) []WEntry {
	items := *arr
	var entries []WEntry
	i := 0
	for i < len(items) {
		startObj, err := b.Resolved(items[i])
		if err != nil {
			break
		}
		start, ok := asInt(startObj)
		if !ok {
			break
		}
		i++
		if i >= len(items) {
			break
		}

		next, err := b.Resolved(items[i])
		if err != nil {
			break
		}
		if subArr, ok := next.(*raw.Array); ok {
			widths := make([]float64, len(*subArr))
			for j, wo := range *subArr {
				rv, err := b.Resolved(wo)
				if err != nil {
					continue
				}
				fv, _ := raw.AsFloat(rv)
				widths[j] = fv
			}
			entries = append(entries, WEntry{Start: start, Widths: widths})
			i++
			continue
		}

		end, ok := asInt(next)
		if !ok {
			break
		}
		i++
		if i >= len(items) {
			break
		}
		wObj, err := b.Resolved(items[i])
		if err != nil {
			break
		}
		w, _ := raw.AsFloat(wObj)
		entries = append(entries, WEntry{Start: start, End: end, Width: w})
		i++
	}
	return entries
}

func asInt(o raw.Object) (int, bool) {
	if n, ok := o.(raw.Integer); ok {
		return int(n), true
	}
	if f, ok := raw.AsFloat(o); ok {
		return int(f), true
	}
	return 0, false
}
