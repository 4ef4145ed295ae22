package content

import "github.com/coregx/pdfgraph/internal/raw"

// Font is the minimal surface the text-state interpreter needs from a
// resolved font: enough to turn a shown PDF string into a sequence of
// positioned glyphs. internal/font's SimpleFont and CompositeFont both
// satisfy this, so content never imports internal/font — the caller
// (the top-level pdfgraph package) resolves a page's /Font dictionary
// and hands the interpreter a map keyed by resource name.
//
// Grounded in the font-abstraction split used by internal/font's
// SimpleFont and CompositeFont, narrowed to the subset this package needs.
type Font interface {
	Name() string
	Ascent() float64
	Descent() float64
	Process(s []byte) []Glyph
}

// Glyph is one decoded character from a shown string: its Unicode
// rune (best-effort; falls back to the raw byte as ASCII when no
// ToUnicode mapping exists), its advance width as a fraction of the
// font's em square, and whether it counts as a "space" for Tw purposes
// (PDF 1.7 §9.3.3: only the single-byte code 32 in a simple font).
type Glyph struct {
	Char    rune
	Width   float64
	IsSpace bool
}

// TextElement is one positioned glyph: its rune and the bounding box its
// advance width and the active font's ascent/descent project it into.
type TextElement struct {
	Char       rune
	LowerLeft  Point
	UpperRight Point
}

// TextState interprets a BT…ET-scoped operator sequence into positioned
// TextElements.
//
// Grounded in the earlier reader's TextExtractor state fields
// (internal/extractor/text_extractor.go, removed): CharSpace/WordSpace/
// HorizScale/Leading/FontName/FontSize/render mode carry over with the
// same names translated to this package's casing; the earlier implementation tracked
// only a running (x, y) cursor, so the full 3x3 TextMatrix/LineMatrix
// affine math is new, needed to position glyphs under rotated or skewed
// page and text matrices rather than just a straight baseline.
type TextState struct {
	FontName    raw.Name
	FontSize    float64
	CharSpacing float64
	WordSpacing float64
	HScaling    float64
	Leading     float64
	RenderMode  int
	Rise        float64

	TextMatrix Matrix
	LineMatrix Matrix

	inText bool

	Fonts map[raw.Name]Font

	Elements []TextElement
}

// NewTextState creates a TextState with the PDF default text-state values
// (horizontal_scaling = 1.0, i.e. Tz's default of 100; TextMatrix and
// LineMatrix reset to identity, same as BeginText.apply, since a caller
// that starts interpretation mid-stream past a BT never sees that
// operator applied) and a font lookup table resolved from the page's
// /Font resource dictionary.
func NewTextState(fonts map[raw.Name]Font) *TextState {
	return &TextState{
		HScaling:   1,
		TextMatrix: Identity(),
		LineMatrix: Identity(),
		Fonts:      fonts,
	}
}

// Run applies every operator in order, accumulating TextElements for
// each ShowText (directly, via ', ", or within a TJ array).
func (ts *TextState) Run(ops []Operator) {
	for _, op := range ops {
		op.apply(ts)
	}
}

func (BeginText) apply(ts *TextState) {
	ts.TextMatrix = Identity()
	ts.LineMatrix = Identity()
	ts.inText = true
}

func (EndText) apply(ts *TextState) {
	ts.inText = false
}

func (o SetCharSpacing) apply(ts *TextState) { ts.CharSpacing = o.Value }
func (o SetWordSpacing) apply(ts *TextState) { ts.WordSpacing = o.Value }
func (o SetHScaling) apply(ts *TextState)    { ts.HScaling = o.Value / 100 }
func (o SetLeading) apply(ts *TextState)     { ts.Leading = o.Value }

func (o SetFont) apply(ts *TextState) {
	ts.FontName = o.Name
	ts.FontSize = o.Size
}

func (o SetRenderMode) apply(ts *TextState) { ts.RenderMode = o.Mode }
func (o SetRise) apply(ts *TextState)       { ts.Rise = o.Value }

func (o MoveBy) apply(ts *TextState) {
	ts.LineMatrix = Translation(o.Tx, o.Ty).Mul(ts.LineMatrix)
	ts.TextMatrix = ts.LineMatrix
}

func (o MoveByAndSetLeading) apply(ts *TextState) {
	ts.Leading = -o.Ty
	MoveBy{Tx: o.Tx, Ty: o.Ty}.apply(ts)
}

func (o SetMatrix) apply(ts *TextState) {
	m := Matrix{A: o.A, B: o.B, C: o.C, D: o.D, E: o.E, F: o.F}
	ts.TextMatrix = m
	ts.LineMatrix = m
}

func (NextLine) apply(ts *TextState) {
	MoveBy{Tx: 0, Ty: -ts.Leading}.apply(ts)
}

func (o ShowText) apply(ts *TextState) { ts.show(o.Text) }

func (o NextLineShow) apply(ts *TextState) {
	NextLine{}.apply(ts)
	ts.show(o.Text)
}

func (o SpaceAndShow) apply(ts *TextState) {
	ts.WordSpacing = o.AW
	ts.CharSpacing = o.AC
	NextLineShow{Text: o.Text}.apply(ts)
}

func (o ShowArray) apply(ts *TextState) {
	for _, elem := range o.Elements {
		if elem.Text != nil {
			ts.show(elem.Text)
			continue
		}
		tx := -elem.Amount / 1000 * ts.HScaling * ts.FontSize
		ts.TextMatrix = Translation(tx, 0).Mul(ts.TextMatrix)
	}
}

func (NotImplemented) apply(*TextState) {}

// show emits one TextElement per glyph in text and advances TextMatrix
// by each glyph's scaled width plus character/word spacing.
func (ts *TextState) show(text []byte) {
	font := ts.Fonts[ts.FontName]

	var glyphs []Glyph
	if font != nil {
		glyphs = font.Process(text)
	} else {
		glyphs = fallbackGlyphs(text)
	}

	ascent, descent := 0.75, -0.25
	if font != nil {
		ascent, descent = font.Ascent(), font.Descent()
	}

	for _, g := range glyphs {
		llX, llY := ts.TextMatrix.Apply(0, descent*ts.FontSize+ts.Rise)
		urX, urY := ts.TextMatrix.Apply(g.Width*ts.FontSize, ascent*ts.FontSize+ts.Rise)
		ts.Elements = append(ts.Elements, TextElement{
			Char:       g.Char,
			LowerLeft:  Point{X: llX, Y: llY},
			UpperRight: Point{X: urX, Y: urY},
		})

		ws := 0.0
		if g.IsSpace {
			ws = ts.WordSpacing
		}
		tx := (g.Width*ts.FontSize + ts.CharSpacing + ws) * ts.HScaling
		ts.TextMatrix = Translation(tx, 0).Mul(ts.TextMatrix)
	}
}

// fallbackGlyphs interprets raw bytes as ASCII with a nominal width,
// used only when a ShowText operator names a font that was never
// resolved (missing /Font entry, or the page's resource dict couldn't
// be built) — defensive, keeps extraction going rather than dropping
// the text entirely.
func fallbackGlyphs(text []byte) []Glyph {
	out := make([]Glyph, 0, len(text))
	for _, b := range text {
		out = append(out, Glyph{Char: rune(b), Width: 0.5, IsSpace: b == ' '})
	}
	return out
}
