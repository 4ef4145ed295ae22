package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/pdfgraph/internal/raw"
	"github.com/coregx/pdfgraph/internal/xref"
)

type widgetInfo struct {
	Label string `pdf:"Label"`
}

type widget struct {
	Name   string        `pdf:"Name"`
	Count  int           `pdf:"Count,default=0"`
	Info   widgetInfo    `pdf:"Info"`
	Parent raw.Reference `pdf:"Parent,ref"`
}

func TestBuildResolvesIndirectFields(t *testing.T) {
	var buf []byte

	infoDict := "<< /Label (inner) >>"
	offInfo := writeIndirectObject(&buf, 2, 0, infoDict)
	offWidget := writeIndirectObject(&buf, 1, 0, "<< /Name /Gadget /Info 2 0 R /Parent 3 0 R >>")

	table := xref.NewTable()
	table.Entries[1] = xref.Entry{Kind: xref.Plain, Offset: offWidget}
	table.Entries[2] = xref.Entry{Kind: xref.Plain, Offset: offInfo}
	b := New(buf, table)

	w, err := Build[widget](b, raw.Reference{Num: 1, Gen: 0})
	require.NoError(t, err)
	assert.Equal(t, "Gadget", w.Name)
	assert.Equal(t, 0, w.Count)
	assert.Equal(t, "inner", w.Info.Label)
	assert.Equal(t, raw.Reference{Num: 3, Gen: 0}, w.Parent)
}

func TestBuildMissingRequiredFieldFails(t *testing.T) {
	var buf []byte
	off := writeIndirectObject(&buf, 1, 0, "<< /Info << /Label (x) >> >>")
	table := xref.NewTable()
	table.Entries[1] = xref.Entry{Kind: xref.Plain, Offset: off}
	b := New(buf, table)

	_, err := Build[widget](b, raw.Reference{Num: 1, Gen: 0})
	require.Error(t, err)
}
