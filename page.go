package pdfgraph

import (
	"bytes"

	"github.com/coregx/pdfgraph/internal/content"
	"github.com/coregx/pdfgraph/internal/font"
	"github.com/coregx/pdfgraph/internal/raw"
)

// Page is one leaf of a flattened page tree, with its inherited
// attributes already resolved.
//
// Grounded in the earlier reader's Page type (document.go, removed), trimmed
// to the MediaBox/CropBox/Rotate/Content/Fonts surface the design names;
// the earlier reader's table-detection and image-extraction methods have no
// home here (see DESIGN.md's dropped-modules list).
type Page struct {
	doc  *Document
	leaf pageLeaf
}

// MediaBox returns the page's media box, present by construction
// (listPages refuses to produce a leaf lacking one).
func (p *Page) MediaBox() Rectangle { return *p.leaf.props.MediaBox }

// CropBox returns the page's crop box, falling back to its media box
// when none was inherited (PDF 1.7 §14.11.2's documented default).
func (p *Page) CropBox() Rectangle {
	if p.leaf.props.CropBox != nil {
		return *p.leaf.props.CropBox
	}
	return p.MediaBox()
}

// Rotate returns the page's clockwise display rotation in degrees as
// stored in /Rotate; the value is not normalized to 0/90/180/270.
func (p *Page) Rotate() int { return p.leaf.props.Rotate }

// Content concatenates and decodes the page's content streams, per PDF
// 1.7 §7.8.2 (an array of streams is treated as a single stream with a
// whitespace separator inserted between each pair).
func (p *Page) Content() ([]byte, error) {
	var buf bytes.Buffer
	for i, ref := range p.leaf.contents {
		data, err := p.doc.b.StreamData(ref)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// Fonts resolves the page's /Resources/Font dictionary into a map of
// content.Font keyed by resource name, dispatching each entry to
// font.BuildSimpleFont or font.BuildCompositeFont by its /Subtype.
func (p *Page) Fonts() (map[raw.Name]content.Font, error) {
	out := make(map[raw.Name]content.Font)
	if p.leaf.props.Resources == nil {
		return out, nil
	}
	fontsObj := p.leaf.props.Resources.Get("Font")
	if fontsObj == nil {
		return out, nil
	}
	resolved, err := p.doc.b.Resolved(fontsObj)
	if err != nil {
		return nil, err
	}
	fontDict, ok := resolved.(*raw.Dictionary)
	if !ok {
		return out, nil
	}

	for _, name := range fontDict.Keys() {
		entryResolved, err := p.doc.b.Resolved(fontDict.Get(name))
		if err != nil {
			continue
		}
		dict, ok := entryResolved.(*raw.Dictionary)
		if !ok {
			continue
		}
		subtype, _ := dict.Get("Subtype").(raw.Name)
		var f content.Font
		if subtype == "Type0" {
			f, err = font.BuildCompositeFont(p.doc.b, dict)
		} else {
			f, err = font.BuildSimpleFont(p.doc.b, dict)
		}
		if err != nil {
			continue
		}
		out[name] = f
	}
	return out, nil
}

// TextObject is the flattened output of one BT...ET block: the
// positioned glyphs content.TextState computed for it.
type TextObject struct {
	Elements []content.TextElement
}

// IterTextObjects parses the page's content stream and runs each
// BT...ET block through a fresh text-state interpreter. Each block
// starts from a reset text state, matching PDF 1.7 §9.4.1 (text objects
// may not nest and carry no state across ET/BT boundaries other than
// the graphics state, which this system does not track outside text
// parameters).
func (p *Page) IterTextObjects() ([]TextObject, error) {
	data, err := p.Content()
	if err != nil {
		return nil, err
	}
	ops, err := content.Parse(data)
	if err != nil {
		return nil, err
	}
	fonts, err := p.Fonts()
	if err != nil {
		return nil, err
	}

	var objects []TextObject
	var block []content.Operator
	inText := false
	for _, op := range ops {
		switch op.Kind() {
		case content.OpBeginText:
			inText = true
			block = block[:0]
		case content.OpEndText:
			if inText {
				ts := content.NewTextState(fonts)
				ts.Run(block)
				objects = append(objects, TextObject{Elements: ts.Elements})
			}
			inText = false
		default:
			if inText {
				block = append(block, op)
			}
		}
	}
	return objects, nil
}
