// Package filter decodes PDF stream bodies according to their
// /Filter and /DecodeParms entries (PDF 1.7 §7.4).
//
// Grounded in the earlier reader's embedded flateDecoder (internal/parser/
// xref.go, removed during adaptation) and internal/extractor/
// text_extractor.go's decodeFlateDecode, both of which wrapped stdlib
// compress/zlib directly; generalized here into a filter-name dispatch
// table since the earlier implementation only ever called its decoder from two
// call sites and never named the general problem.
package filter

import (
	"fmt"

	"github.com/coregx/pdfgraph/internal/raw"
	"github.com/pkg/errors"
)

// Chain resolves a stream dictionary's /Filter (and matching
// /DecodeParms) into an ordered list of named filters to apply.
func Chain(dict *raw.Dictionary) ([]Spec, error) {
	filterObj := dict.Get("Filter")
	if filterObj == nil {
		return nil, nil
	}

	var names []raw.Name
	var parmsArr []raw.Object

	switch f := filterObj.(type) {
	case raw.Name:
		names = []raw.Name{f}
	case *raw.Array:
		for _, elem := range *f {
			n, ok := elem.(raw.Name)
			if !ok {
				return nil, errors.Errorf("filter: non-name entry %v in /Filter array", elem)
			}
			names = append(names, n)
		}
	default:
		return nil, errors.Errorf("filter: unsupported /Filter type %s", filterObj.Kind())
	}

	if parmsObj := dict.Get("DecodeParms"); parmsObj != nil {
		switch p := parmsObj.(type) {
		case *raw.Dictionary:
			parmsArr = []raw.Object{p}
		case *raw.Array:
			parmsArr = append(parmsArr, (*p)...)
		}
	}

	specs := make([]Spec, len(names))
	for i, name := range names {
		var parms *raw.Dictionary
		if i < len(parmsArr) {
			if d, ok := parmsArr[i].(*raw.Dictionary); ok {
				parms = d
			}
		}
		specs[i] = Spec{Name: name, Parms: parms}
	}
	return specs, nil
}

// Spec names one filter in a chain together with its decode parameters.
type Spec struct {
	Name  raw.Name
	Parms *raw.Dictionary
}

// Decode applies a stream's full filter chain in order, returning the
// fully decoded bytes.
func Decode(data []byte, specs []Spec) ([]byte, error) {
	out := data
	for _, spec := range specs {
		decoded, err := decodeOne(out, spec)
		if err != nil {
			return nil, errors.Wrapf(err, "filter %s", spec.Name)
		}
		out = decoded
	}
	return out, nil
}

func decodeOne(data []byte, spec Spec) ([]byte, error) {
	switch spec.Name {
	case "FlateDecode", "Fl":
		decoded, err := FlateDecode(data)
		if err != nil {
			return nil, err
		}
		return ApplyPredictor(decoded, spec.Parms)
	case "ASCIIHexDecode", "AHx", "ASCII85Decode", "A85", "LZWDecode", "LZW",
		"RunLengthDecode", "RL", "CCITTFaxDecode", "CCF", "JBIG2Decode",
		"DCTDecode", "DCT", "JPXDecode", "Crypt":
		return nil, NotImplemented(string(spec.Name))
	default:
		return nil, fmt.Errorf("filter: unknown filter %q", spec.Name)
	}
}
