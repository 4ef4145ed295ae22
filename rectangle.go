package pdfgraph

import (
	"github.com/coregx/pdfgraph/internal/builder"
	"github.com/coregx/pdfgraph/internal/content"
	"github.com/coregx/pdfgraph/internal/raw"
)

// Rectangle is a PDF rectangle (PDF 1.7 §7.9.5): four numbers giving
// any two opposite corners, here normalized to lower-left/upper-right.
//
// Not named in the data model directly (MediaBox/CropBox are
// described there as plain number arrays); supplemented here as a named
// type since every consumer of a page's boxes wants corner/width/height
// accessors rather than a raw four-element array.
type Rectangle struct {
	LLX, LLY, URX, URY float64
}

func (r Rectangle) Width() float64  { return r.URX - r.LLX }
func (r Rectangle) Height() float64 { return r.URY - r.LLY }

func (r Rectangle) LowerLeft() content.Point  { return content.Point{X: r.LLX, Y: r.LLY} }
func (r Rectangle) UpperRight() content.Point { return content.Point{X: r.URX, Y: r.URY} }

// rectangleFromArray resolves o (expected to be, or resolve to, a
// four-element number array) into a Rectangle, resolving each element
// individually since a malformed or hand-edited file may legally store
// any element as an indirect reference.
func rectangleFromArray(b *builder.Builder, o raw.Object) (*Rectangle, bool) {
	resolved, err := b.Resolved(o)
	if err != nil {
		return nil, false
	}
	arr, ok := resolved.(*raw.Array)
	if !ok || len(*arr) != 4 {
		return nil, false
	}

	vals := make([]float64, 4)
	for i, el := range *arr {
		rv, err := b.Resolved(el)
		if err != nil {
			return nil, false
		}
		fv, ok := raw.AsFloat(rv)
		if !ok {
			return nil, false
		}
		vals[i] = fv
	}

	llx, lly, urx, ury := vals[0], vals[1], vals[2], vals[3]
	if llx > urx {
		llx, urx = urx, llx
	}
	if lly > ury {
		lly, ury = ury, lly
	}
	return &Rectangle{LLX: llx, LLY: lly, URX: urx, URY: ury}, true
}
