package font

import (
	"github.com/coregx/pdfgraph/internal/builder"
	"github.com/coregx/pdfgraph/internal/content"
	"github.com/coregx/pdfgraph/internal/raw"
)

// SimpleFont is a Type1/TrueType/MMType1 font: single-byte character
// codes, a flat per-code width table, and an encoding (base table plus
// optional /Differences) for code-to-Unicode fallback. Grounded in
// the SimpleFont data shape.
type SimpleFont struct {
	BaseName   raw.Name
	FirstChar  int
	LastChar   int
	Widths     []float64
	Descriptor *FontDescriptor
	Encoding   *Encoding
	ToUnicode  *CMap
}

func (f *SimpleFont) Name() string { return string(f.BaseName) }

func (f *SimpleFont) Ascent() float64 {
	if f.Descriptor != nil && f.Descriptor.Ascent != 0 {
		return f.Descriptor.Ascent / 1000
	}
	return 0.75
}

func (f *SimpleFont) Descent() float64 {
	if f.Descriptor != nil && f.Descriptor.Descent != 0 {
		return f.Descriptor.Descent / 1000
	}
	return -0.25
}

// widthForCode looks up a single-byte code's advance width:
// Widths[code-FirstChar] if in range, else Descriptor.MissingWidth,
// divided by 1000 either way to express it as a fraction of the em square.
func (f *SimpleFont) widthForCode(code int) float64 {
	if code >= f.FirstChar {
		if idx := code - f.FirstChar; idx < len(f.Widths) {
			return f.Widths[idx] / 1000
		}
	}
	if f.Descriptor != nil {
		return f.Descriptor.MissingWidth / 1000
	}
	return 0
}

func (f *SimpleFont) toUnicode(code int) rune {
	if f.ToUnicode != nil {
		if rs, ok := f.ToUnicode.Lookup(uint16(code)); ok && len(rs) > 0 {
			return rs[0]
		}
	}
	if f.Encoding != nil {
		if r, ok := f.Encoding.Lookup(code); ok {
			return r
		}
	}
	return rune(code)
}

// Process implements content.Font: one code unit per byte.
func (f *SimpleFont) Process(s []byte) []content.Glyph {
	out := make([]content.Glyph, 0, len(s))
	for _, b := range s {
		code := int(b)
		out = append(out, content.Glyph{
			Char:    f.toUnicode(code),
			Width:   f.widthForCode(code),
			IsSpace: code == 0x20,
		})
	}
	return out
}

// BuildSimpleFont materializes a SimpleFont from an already-resolved
// font dictionary.
//
// Grounded in the earlier reader's font-loading path in
// internal/extractor/text_extractor.go (removed); restated to pull
// fields through Builder.Resolved instead of assuming they are already
// direct objects, since /Widths, /FontDescriptor and /ToUnicode are
// routinely indirect references in real PDFs.
func BuildSimpleFont(b *builder.Builder, dict *raw.Dictionary) (*SimpleFont, error) {
	f := &SimpleFont{}

	if name, ok := dict.Get("BaseFont").(raw.Name); ok {
		f.BaseName = name
	}
	if fc, ok := dict.Get("FirstChar").(raw.Integer); ok {
		f.FirstChar = int(fc)
	}
	if lc, ok := dict.Get("LastChar").(raw.Integer); ok {
		f.LastChar = int(lc)
	}

	if w := dict.Get("Widths"); w != nil {
		resolved, err := b.Resolved(w)
		if err != nil {
			return nil, err
		}
		if arr, ok := resolved.(*raw.Array); ok {
			f.Widths = make([]float64, len(*arr))
			for i, el := range *arr {
				rv, err := b.Resolved(el)
				if err != nil {
					return nil, err
				}
				if fv, ok := raw.AsFloat(rv); ok {
					f.Widths[i] = fv
				}
			}
		}
	}

	if ref, ok := dict.Get("FontDescriptor").(raw.Reference); ok {
		if descDict, err := b.ResolveDict(ref); err == nil {
			desc := &FontDescriptor{}
			if err := raw.FromRawDict(descDict, desc); err == nil {
				f.Descriptor = desc
			}
		}
	}

	if enc := dict.Get("Encoding"); enc != nil {
		resolved, err := b.Resolved(enc)
		if err == nil {
			f.Encoding = BuildEncoding(resolved, b)
		} else {
			f.Encoding = StandardEncoding()
		}
	} else {
		f.Encoding = StandardEncoding()
	}

	if ref, ok := dict.Get("ToUnicode").(raw.Reference); ok {
		if data, err := b.StreamData(ref); err == nil {
			if cmap, err := ParseCMap(data); err == nil {
				f.ToUnicode = cmap
			}
		}
	}

	return f, nil
}
