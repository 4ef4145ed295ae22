// Package content parses a page's content-stream bytes into a typed
// operator sequence and interprets the text-showing subset of it into
// positioned glyphs.
//
// Grounded in the earlier reader's internal/extractor package (text_extractor.go,
// removed during adaptation): the same BT/ET-scoped text state and the
// same operator set are kept, restated as a tagged-union Operator type
// that parser.go's dispatch builds with a switch on the operator name.
package content

import "github.com/coregx/pdfgraph/internal/raw"

// OpKind identifies which concrete Operator variant a value holds.
type OpKind int

const (
	OpBeginText OpKind = iota
	OpEndText
	OpSetCharSpacing
	OpSetWordSpacing
	OpSetHScaling
	OpSetLeading
	OpSetFont
	OpSetRenderMode
	OpSetRise
	OpMoveBy
	OpMoveByAndSetLeading
	OpSetMatrix
	OpNextLine
	OpShowText
	OpNextLineShow
	OpSpaceAndShow
	OpShowArray
	OpNotImplemented
)

// Operator is the tagged union of every content-stream instruction this
// package understands. Concrete variants own their operands; the
// TextState interpreter applies each one through a single polymorphic
// apply method.
type Operator interface {
	Kind() OpKind
	apply(ts *TextState)
}

type BeginText struct{}

func (BeginText) Kind() OpKind { return OpBeginText }

type EndText struct{}

func (EndText) Kind() OpKind { return OpEndText }

type SetCharSpacing struct{ Value float64 }

func (SetCharSpacing) Kind() OpKind { return OpSetCharSpacing }

type SetWordSpacing struct{ Value float64 }

func (SetWordSpacing) Kind() OpKind { return OpSetWordSpacing }

type SetHScaling struct{ Value float64 }

func (SetHScaling) Kind() OpKind { return OpSetHScaling }

type SetLeading struct{ Value float64 }

func (SetLeading) Kind() OpKind { return OpSetLeading }

type SetFont struct {
	Name raw.Name
	Size float64
}

func (SetFont) Kind() OpKind { return OpSetFont }

type SetRenderMode struct{ Mode int }

func (SetRenderMode) Kind() OpKind { return OpSetRenderMode }

type SetRise struct{ Value float64 }

func (SetRise) Kind() OpKind { return OpSetRise }

type MoveBy struct{ Tx, Ty float64 }

func (MoveBy) Kind() OpKind { return OpMoveBy }

type MoveByAndSetLeading struct{ Tx, Ty float64 }

func (MoveByAndSetLeading) Kind() OpKind { return OpMoveByAndSetLeading }

// SetMatrix is `Tm`: sets both text and line matrices to the affine
// transform [[a b 0][c d 0][e f 1]].
type SetMatrix struct{ A, B, C, D, E, F float64 }

func (SetMatrix) Kind() OpKind { return OpSetMatrix }

type NextLine struct{}

func (NextLine) Kind() OpKind { return OpNextLine }

type ShowText struct{ Text []byte }

func (ShowText) Kind() OpKind { return OpShowText }

type NextLineShow struct{ Text []byte }

func (NextLineShow) Kind() OpKind { return OpNextLineShow }

type SpaceAndShow struct {
	AW, AC float64
	Text   []byte
}

func (SpaceAndShow) Kind() OpKind { return OpSpaceAndShow }

// ShowArrayElem is one element of a TJ operand: either a string to show
// or a number to translate the text matrix by before the next string.
type ShowArrayElem struct {
	Text   []byte  // non-nil when this element is a string
	Amount float64 // valid when Text is nil
}

type ShowArray struct{ Elements []ShowArrayElem }

func (ShowArray) Kind() OpKind { return OpShowArray }

// NotImplemented is a non-fatal placeholder, carrying whatever operands
// preceded it, for any operator this package has no text-state effect
// for: path construction,
// painting, clipping, graphics-state, color, XObject, marked-content and
// inline-image operators. An unrecognized content-stream operator is
// never treated as an error — content streams routinely carry operators
// irrelevant to text extraction, and failing on them would make every
// real-world PDF unparsable.
type NotImplemented struct {
	Tag      string
	Operands []raw.Object
}

func (NotImplemented) Kind() OpKind { return OpNotImplemented }
