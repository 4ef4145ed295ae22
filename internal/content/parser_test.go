package content

import (
	"testing"

	"github.com/coregx/pdfgraph/internal/raw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleTextBlock(t *testing.T) {
	ops, err := Parse([]byte("BT /F1 12 Tf 100 200 Td (AB) Tj ET"))
	require.NoError(t, err)
	require.Len(t, ops, 5)

	assert.Equal(t, BeginText{}, ops[0])
	assert.Equal(t, SetFont{Name: "F1", Size: 12}, ops[1])
	assert.Equal(t, MoveBy{Tx: 100, Ty: 200}, ops[2])
	assert.Equal(t, ShowText{Text: []byte("AB")}, ops[3])
	assert.Equal(t, EndText{}, ops[4])
}

func TestParseTJArray(t *testing.T) {
	ops, err := Parse([]byte("[(A) -250 (B)] TJ"))
	require.NoError(t, err)
	require.Len(t, ops, 1)

	sa, ok := ops[0].(ShowArray)
	require.True(t, ok)
	require.Len(t, sa.Elements, 3)
	assert.Equal(t, []byte("A"), sa.Elements[0].Text)
	assert.Equal(t, float64(-250), sa.Elements[1].Amount)
	assert.Equal(t, []byte("B"), sa.Elements[2].Text)
}

func TestParseUnknownOperatorIsNotImplemented(t *testing.T) {
	ops, err := Parse([]byte("1 0 0 1 0 0 cm"))
	require.NoError(t, err)
	require.Len(t, ops, 1)

	ni, ok := ops[0].(NotImplemented)
	require.True(t, ok)
	assert.Equal(t, "cm", ni.Tag)
	assert.Len(t, ni.Operands, 6)
}

func TestParseInlineImageSkipsBinaryBody(t *testing.T) {
	// Binary body deliberately contains a byte sequence that looks like
	// a delimiter so a naive object-tokenizer would choke on it.
	input := "BI /W 1 /H 1 /BPC 8 ID \xff\x28\xff EI (after) Tj"
	ops, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, ops, 2)

	ni, ok := ops[0].(NotImplemented)
	require.True(t, ok)
	assert.Equal(t, "BI", ni.Tag)

	assert.Equal(t, ShowText{Text: []byte("after")}, ops[1])
}

func TestDispatchQuoteOperators(t *testing.T) {
	ops, err := Parse([]byte("(hi) '"))
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, NextLineShow{Text: []byte("hi")}, ops[0])

	ops, err = Parse([]byte("1 2 (hi) \""))
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, SpaceAndShow{AW: 1, AC: 2, Text: []byte("hi")}, ops[0])
}

func TestTextStateMovesRightAfterShowText(t *testing.T) {
	ops, err := Parse([]byte("BT /F1 12 Tf 100 200 Td (AB) Tj ET"))
	require.NoError(t, err)

	fonts := map[raw.Name]Font{
		"F1": fakeFont{widths: map[byte]float64{'A': 0.5, 'B': 1.0}},
	}
	ts := NewTextState(fonts)
	ts.Run(ops)

	require.Len(t, ts.Elements, 2)
	assert.InDelta(t, 100, ts.Elements[0].LowerLeft.X, 1e-9)
	assert.InDelta(t, 100+0.5*12, ts.Elements[1].LowerLeft.X, 1e-9)
}

type fakeFont struct {
	widths map[byte]float64
}

func (f fakeFont) Name() string    { return "fake" }
func (f fakeFont) Ascent() float64 { return 0.75 }
func (f fakeFont) Descent() float64 { return -0.25 }

func (f fakeFont) Process(s []byte) []Glyph {
	out := make([]Glyph, 0, len(s))
	for _, b := range s {
		w := f.widths[b]
		out = append(out, Glyph{Char: rune(b), Width: w, IsSpace: b == ' '})
	}
	return out
}
