package xref

import "github.com/coregx/pdfgraph/internal/raw"

// Trailer is the PDF file trailer: the dictionary (classical `trailer`
// keyword form, or the xref stream's own dictionary in PDF 1.5+) that
// names the document's Root catalog and Info dictionary.
//
// Grounded in the earlier reader's XRefTable.Trailer field (internal/parser/
// xref.go, removed), materialized here via raw.FromRawDict instead of
// left as a bare *Dictionary, since every other structured type in this
// system goes through the same derivation.
type Trailer struct {
	Size int            `pdf:"Size"`
	Root raw.Reference  `pdf:"Root"`
	Info *raw.Reference `pdf:"Info,optional"`
	ID   *raw.Array     `pdf:"ID,optional"`
	Prev int            `pdf:"Prev,default=0"`
	XRefStm int         `pdf:"XRefStm,default=0"`
}

// BuildTrailer materializes a Trailer from a raw dictionary, as
// produced by either classical trailer parsing or an xref stream's own
// dictionary.
func BuildTrailer(dict *raw.Dictionary) (*Trailer, error) {
	var tr Trailer
	if err := raw.FromRawDict(dict, &tr); err != nil {
		return nil, err
	}
	return &tr, nil
}
