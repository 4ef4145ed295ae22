package pdfgraph

import (
	"github.com/pkg/errors"

	"github.com/coregx/pdfgraph/internal/builder"
	"github.com/coregx/pdfgraph/internal/raw"
)

// PageLayout is the document catalog's /PageLayout value (PDF 1.7
// §7.7.2, Table 25): the page layout a viewer should use when the
// document is first opened.
type PageLayout string

const (
	PageLayoutSinglePage     PageLayout = "SinglePage"
	PageLayoutOneColumn      PageLayout = "OneColumn"
	PageLayoutTwoColumnLeft  PageLayout = "TwoColumnLeft"
	PageLayoutTwoColumnRight PageLayout = "TwoColumnRight"
	PageLayoutTwoPageLeft    PageLayout = "TwoPageLeft"
	PageLayoutTwoPageRight   PageLayout = "TwoPageRight"
)

// PageMode is the document catalog's /PageMode value (PDF 1.7 §7.7.2,
// Table 26): how the document's outline/thumbnail/attachment panels
// should be displayed when it is first opened.
type PageMode string

const (
	PageModeUseNone        PageMode = "UseNone"
	PageModeUseOutlines    PageMode = "UseOutlines"
	PageModeUseThumbs      PageMode = "UseThumbs"
	PageModeFullScreen     PageMode = "FullScreen"
	PageModeUseOC          PageMode = "UseOC"
	PageModeUseAttachments PageMode = "UseAttachments"
)

// Catalog is the document's root object (PDF 1.7 §7.7.2), the entry
// point to the page tree.
//
// Grounded in the data model and the earlier reader's Document type
// (document.go, removed), which read the same /Pages/PageLayout/
// PageMode fields off the catalog dictionary by hand rather than via
// reflection.
type Catalog struct {
	Pages      Reference[pageNode]
	PageLayout PageLayout
	PageMode   PageMode
}

// buildCatalog materializes a Catalog from the trailer's /Root
// reference. Constructed by hand rather than through
// builder.BuildFromRawDict: the Pages field's type is Reference[pageNode],
// a generic defined in this package, which internal/builder's reflection
// logic (operating only on the bare raw.Reference type) has no way to
// recognize.
func buildCatalog(b *builder.Builder, ref raw.Reference) (*Catalog, error) {
	dict, err := b.ResolveDict(ref)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{
		PageLayout: PageLayoutSinglePage,
		PageMode:   PageModeUseNone,
	}

	pagesRef, ok := dict.Get("Pages").(raw.Reference)
	if !ok {
		return nil, errors.New("catalog: missing or non-indirect /Pages")
	}
	cat.Pages = referenceOf[pageNode](pagesRef)

	if v, ok := dict.Get("PageLayout").(raw.Name); ok {
		cat.PageLayout = PageLayout(v)
	}
	if v, ok := dict.Get("PageMode").(raw.Name); ok {
		cat.PageMode = PageMode(v)
	}

	return cat, nil
}
