// Package pdfgraph parses a PDF file's object graph without rewriting
// or interpreting its visual appearance: cross-reference resolution,
// the page tree, content-stream operators and simple text-positioning,
// exposed as a small typed API over an immutable input buffer.
package pdfgraph

import (
	"github.com/pkg/errors"

	"github.com/coregx/pdfgraph/internal/builder"
	"github.com/coregx/pdfgraph/internal/raw"
	"github.com/coregx/pdfgraph/internal/xref"
	"github.com/coregx/pdfgraph/logging"
)

// Document is a parsed PDF file: a resolver over its byte buffer plus
// the root reference to its Catalog. Not safe for concurrent use (see
// internal/builder.Builder's own doc comment); callers that want
// concurrent page extraction should call Pages() once up front and fan
// out read-only over the result.
type Document struct {
	b    *builder.Builder
	root Reference[Catalog]
}

// ParseDocument locates the cross-reference chain, records the
// trailer's /Root catalog reference (resolved later, by Catalog), and
// returns a ready-to-use Document. buf is retained, not copied; callers must not mutate it
// while the Document is in use.
//
// Grounded in the earlier reader's Open/NewDocument entry point (document.go,
// removed), restated as a pure function over a byte slice rather than
// an *os.File, matching how this module resolves everything from an
// in-memory buffer instead of streaming from disk.
func ParseDocument(buf []byte, opts ...Option) (*Document, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	table, err := xref.Load(buf, cfg.maxXRefChainDepth)
	if err != nil {
		return nil, errors.Wrap(err, "pdfgraph: loading cross-reference table")
	}
	if table.Trailer == nil {
		return nil, errors.New("pdfgraph: no trailer found")
	}

	b := builder.New(buf, table)
	logging.Logger().Debug("document parsed", "root", table.Trailer.Root)

	return &Document{
		b:    b,
		root: referenceOf[Catalog](table.Trailer.Root),
	}, nil
}

// Build resolves ref and materializes it as a T, following
// internal/builder's generic Build protocol.
func Build[T any](d *Document, ref Reference[T]) (T, error) {
	return builder.Build[T](d.b, ref.raw())
}

// Catalog resolves and returns the document's root catalog.
func (d *Document) Catalog() (*Catalog, error) {
	return buildCatalog(d.b, d.root.raw())
}

// Info resolves the trailer's optional /Info dictionary, if present.
func (d *Document) Info() (*Info, error) {
	trailer := d.b.Table().Trailer
	if trailer == nil || trailer.Info == nil {
		return nil, nil
	}
	dict, err := d.b.ResolveDict(*trailer.Info)
	if err != nil {
		return nil, err
	}
	var info Info
	if err := raw.FromRawDict(dict, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Pages flattens the document's page tree into an ordered slice of
// Pages, per the DFS flattening algorithm.
func (d *Document) Pages() ([]*Page, error) {
	cat, err := d.Catalog()
	if err != nil {
		return nil, err
	}
	leaves, err := listPages(d.b, cat.Pages.raw())
	if err != nil {
		return nil, err
	}
	pages := make([]*Page, len(leaves))
	for i, leaf := range leaves {
		pages[i] = &Page{doc: d, leaf: leaf}
	}
	return pages, nil
}
