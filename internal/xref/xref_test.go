package xref

import (
	"testing"

	"github.com/coregx/pdfgraph/internal/raw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassical(t *testing.T) {
	input := "xref\n" +
		"0 3\n" +
		"0000000000 65535 f \n" +
		"0000000015 00000 n \n" +
		"0000000074 00000 n \n" +
		"trailer\n" +
		"<< /Size 3 /Root 1 0 R >>"

	c := raw.NewCursor([]byte(input))
	table, err := ParseClassical(c)
	require.NoError(t, err)

	assert.Equal(t, Entry{Kind: Free, Offset: 0, Generation: 65535}, table.Entries[0])
	assert.Equal(t, Entry{Kind: Plain, Offset: 15, Generation: 0}, table.Entries[1])
	assert.Equal(t, Entry{Kind: Plain, Offset: 74, Generation: 0}, table.Entries[2])
	require.NotNil(t, table.Trailer)
	assert.Equal(t, 3, table.Trailer.Size)
	assert.Equal(t, raw.Reference{Num: 1, Gen: 0}, table.Trailer.Root)
}

func TestMergeOlderDoesNotOverwriteNewer(t *testing.T) {
	newer := NewTable()
	newer.Entries[1] = Entry{Kind: Plain, Offset: 200}

	older := NewTable()
	older.Entries[1] = Entry{Kind: Plain, Offset: 100}
	older.Entries[2] = Entry{Kind: Plain, Offset: 300}

	newer.MergeOlder(older)

	assert.Equal(t, int64(200), newer.Entries[1].Offset, "newer entry must win")
	assert.Equal(t, int64(300), newer.Entries[2].Offset, "entry only in older must be added")
}

func TestLocateStartXRef(t *testing.T) {
	input := "%PDF-1.7\n...garbage...\nstartxref\n1234\n%%EOF"
	offset, err := LocateStartXRef([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, int64(1234), offset)
}

func TestDecodeEntriesTreatsUnknownTypeAsFree(t *testing.T) {
	dict := raw.NewDictionary()
	w := raw.Array{raw.Integer(1), raw.Integer(2), raw.Integer(1)}
	dict.Set("W", &w)

	// Entry type 3 is unrecognized; must be treated as free per spec.
	data := []byte{3, 0, 0, 0}
	table, err := decodeEntries(dict, data, 1)
	require.NoError(t, err)
	assert.Equal(t, Free, table.Entries[0].Kind)
}
