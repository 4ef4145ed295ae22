package pdfgraph

import (
	"github.com/pkg/errors"

	"github.com/coregx/pdfgraph/internal/builder"
	"github.com/coregx/pdfgraph/internal/raw"
)

// maxPageTreeDepth bounds page-tree descent, guarding against a
// pathologically deep (or cyclic-but-not-yet-visited) /Kids chain.
const maxPageTreeDepth = 64

// InheritedPageProps holds the page-tree attributes that PDF 1.7
// §7.7.3.4 allows an intermediate node to declare once for all its
// descendants: a child that omits one inherits its nearest ancestor's
// value.
type InheritedPageProps struct {
	Resources *raw.Dictionary
	MediaBox  *Rectangle
	CropBox   *Rectangle
	Rotate    int
}

// mergeInherited layers child over parent: any field child leaves zero
// is filled from parent, per the "child wins where present, parent
// fills gaps" rule the design specifies for page-tree flattening.
func mergeInherited(parent, child InheritedPageProps) InheritedPageProps {
	out := child
	if out.Resources == nil {
		out.Resources = parent.Resources
	}
	if out.MediaBox == nil {
		out.MediaBox = parent.MediaBox
	}
	if out.CropBox == nil {
		out.CropBox = parent.CropBox
	}
	if out.Rotate == 0 {
		out.Rotate = parent.Rotate
	}
	return out
}

// pageNode is an intermediate page-tree node (/Type /Pages). Unexported:
// callers only ever see the flattened []*Page a Document produces.
type pageNode struct {
	Inherited InheritedPageProps
	Kids      []raw.Reference
}

// pageLeaf is a page-tree leaf (/Type /Page) with its inherited
// attributes already merged down from the root.
type pageLeaf struct {
	ref      raw.Reference
	props    InheritedPageProps
	contents []raw.Reference
}

func buildPageNode(b *builder.Builder, ref raw.Reference) (*pageNode, error) {
	dict, err := b.ResolveDict(ref)
	if err != nil {
		return nil, err
	}
	n := &pageNode{Inherited: extractInherited(b, dict)}

	kidsObj := dict.Get("Kids")
	if kidsObj == nil {
		return n, nil
	}
	resolved, err := b.Resolved(kidsObj)
	if err != nil {
		return nil, err
	}
	arr, ok := resolved.(*raw.Array)
	if !ok {
		return n, nil
	}
	for _, el := range *arr {
		if kidRef, ok := el.(raw.Reference); ok {
			n.Kids = append(n.Kids, kidRef)
		}
	}
	return n, nil
}

func extractInherited(b *builder.Builder, dict *raw.Dictionary) InheritedPageProps {
	var props InheritedPageProps

	if r := dict.Get("Resources"); r != nil {
		if resolved, err := b.Resolved(r); err == nil {
			if d, ok := resolved.(*raw.Dictionary); ok {
				props.Resources = d
			}
		}
	}
	if mb := dict.Get("MediaBox"); mb != nil {
		props.MediaBox, _ = rectangleFromArray(b, mb)
	}
	if cb := dict.Get("CropBox"); cb != nil {
		props.CropBox, _ = rectangleFromArray(b, cb)
	}
	if rot := dict.Get("Rotate"); rot != nil {
		if resolved, err := b.Resolved(rot); err == nil {
			if n, ok := resolved.(raw.Integer); ok {
				props.Rotate = int(n)
			}
		}
	}
	return props
}

func extractContentsRefs(b *builder.Builder, dict *raw.Dictionary) ([]raw.Reference, error) {
	c := dict.Get("Contents")
	if c == nil {
		return nil, nil
	}
	resolved, err := b.Resolved(c)
	if err != nil {
		return nil, err
	}
	switch v := resolved.(type) {
	case *raw.Stream:
		if ref, ok := c.(raw.Reference); ok {
			return []raw.Reference{ref}, nil
		}
		return nil, nil
	case *raw.Array:
		var refs []raw.Reference
		for _, el := range *v {
			if ref, ok := el.(raw.Reference); ok {
				refs = append(refs, ref)
			}
		}
		return refs, nil
	default:
		return nil, nil
	}
}

// listPages walks the page tree rooted at root, flattening it into an
// ordered slice of leaves with their attributes already merged down,
// per the DFS flattening algorithm.
func listPages(b *builder.Builder, root raw.Reference) ([]pageLeaf, error) {
	var leaves []pageLeaf
	visited := make(map[raw.Reference]bool)
	if err := listPagesRec(b, root, InheritedPageProps{}, visited, 0, &leaves); err != nil {
		return nil, err
	}
	return leaves, nil
}

func listPagesRec(b *builder.Builder, ref raw.Reference, inherited InheritedPageProps, visited map[raw.Reference]bool, depth int, out *[]pageLeaf) error {
	if depth > maxPageTreeDepth {
		return errors.Errorf("pdfgraph: page tree exceeds max depth %d at %s", maxPageTreeDepth, ref)
	}
	if visited[ref] {
		return errors.Errorf("pdfgraph: cyclic page tree at %s", ref)
	}
	visited[ref] = true

	dict, err := b.ResolveDict(ref)
	if err != nil {
		return err
	}

	nodeProps := mergeInherited(inherited, extractInherited(b, dict))

	typ, _ := dict.Get("Type").(raw.Name)
	kids := dict.Get("Kids")

	if typ == "Page" || (typ != "Pages" && kids == nil) {
		if nodeProps.MediaBox == nil {
			return errors.Errorf("pdfgraph: page %s has no MediaBox after inheritance", ref)
		}
		contents, err := extractContentsRefs(b, dict)
		if err != nil {
			return err
		}
		*out = append(*out, pageLeaf{ref: ref, props: nodeProps, contents: contents})
		return nil
	}

	node, err := buildPageNode(b, ref)
	if err != nil {
		return err
	}
	for _, kid := range node.Kids {
		if err := listPagesRec(b, kid, nodeProps, visited, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}
