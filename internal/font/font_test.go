package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/pdfgraph/internal/raw"
)

func TestSimpleFontWidthForCode(t *testing.T) {
	f := &SimpleFont{
		FirstChar:  65,
		Widths:     []float64{500, 1000},
		Descriptor: &FontDescriptor{MissingWidth: 250},
	}
	assert.Equal(t, 0.5, f.widthForCode(65))
	assert.Equal(t, 1.0, f.widthForCode(66))
	assert.Equal(t, 0.25, f.widthForCode(67))
}

func TestSimpleFontProcessFallsBackToASCII(t *testing.T) {
	f := &SimpleFont{FirstChar: 0, Widths: []float64{0}}
	glyphs := f.Process([]byte("A"))
	require.Len(t, glyphs, 1)
	assert.Equal(t, 'A', glyphs[0].Char)
}

func TestCompositeFontWidthForCID(t *testing.T) {
	f := &CompositeFont{
		DW: 1000,
		WEntries: []WEntry{
			{Start: 1, End: 3, Width: 600},
			{Start: 10, Widths: []float64{100, 200, 300}},
		},
	}
	assert.Equal(t, 0.6, f.widthForCID(2))
	assert.Equal(t, 0.2, f.widthForCID(11))
	assert.Equal(t, 1.0, f.widthForCID(999))
}

func TestCompositeFontProcessTwoByteCodes(t *testing.T) {
	f := &CompositeFont{DW: 1000}
	glyphs := f.Process([]byte{0x00, 0x41, 0x00, 0x42})
	require.Len(t, glyphs, 2)
	assert.Equal(t, rune(0x41), glyphs[0].Char)
	assert.Equal(t, rune(0x42), glyphs[1].Char)
	assert.False(t, glyphs[0].IsSpace)
}

func TestParseCMapBfChar(t *testing.T) {
	data := []byte("1 beginbfchar\n<0041> <0042>\nendbfchar")
	cmap, err := ParseCMap(data)
	require.NoError(t, err)
	rs, ok := cmap.Lookup(0x0041)
	require.True(t, ok)
	assert.Equal(t, []rune{0x42}, rs)
}

func TestParseCMapBfRange(t *testing.T) {
	data := []byte("1 beginbfrange\n<0041> <0043> <0061>\nendbfrange")
	cmap, err := ParseCMap(data)
	require.NoError(t, err)

	rs, ok := cmap.Lookup(0x0041)
	require.True(t, ok)
	assert.Equal(t, []rune{0x61}, rs)

	rs, ok = cmap.Lookup(0x0043)
	require.True(t, ok)
	assert.Equal(t, []rune{0x63}, rs)
}

func TestParseCMapBfRangeArrayForm(t *testing.T) {
	data := []byte("1 beginbfrange\n<0041> <0042> [<0061> <0062>]\nendbfrange")
	cmap, err := ParseCMap(data)
	require.NoError(t, err)
	rs, ok := cmap.Lookup(0x0042)
	require.True(t, ok)
	assert.Equal(t, []rune{0x62}, rs)
}

func TestBuildEncodingWithDifferences(t *testing.T) {
	dict := raw.NewDictionary()
	dict.Set("BaseEncoding", raw.Name("WinAnsiEncoding"))
	diffs := raw.Array{raw.Integer(65), raw.Name("space"), raw.Name("exclam")}
	dict.Set("Differences", &diffs)

	enc := BuildEncoding(dict, fakeResolver{})
	r, ok := enc.Lookup(65)
	require.True(t, ok)
	assert.Equal(t, ' ', r)
	r, ok = enc.Lookup(66)
	require.True(t, ok)
	assert.Equal(t, '!', r)
}

type fakeResolver struct{}

func (fakeResolver) Resolved(obj raw.Object) (raw.Object, error) { return obj, nil }
