package pdfgraph

import "github.com/coregx/pdfgraph/internal/raw"

// ReferenceID is a PDF indirect-object identifier: an object number and
// a generation number (PDF 1.7 §7.3.10).
type ReferenceID struct {
	Num int
	Gen int
}

func (id ReferenceID) raw() raw.Reference {
	return raw.Reference{Num: id.Num, Gen: id.Gen}
}

func fromRaw(r raw.Reference) ReferenceID {
	return ReferenceID{Num: r.Num, Gen: r.Gen}
}

// Reference is a phantom-typed indirect reference: it carries no
// resolved value, only the (num, gen) pair plus a compile-time marker
// of what Build is expected to produce when it is resolved.
//
// Grounded in the Reference<T> data shape; internal/builder's
// own BuildFromRawDict works over the untyped raw.Reference, since a
// package internal to this module cannot name the top-level package's
// own generic type, so the phantom typing lives here instead.
type Reference[T any] struct {
	ID ReferenceID
}

func (r Reference[T]) raw() raw.Reference {
	return r.ID.raw()
}

// referenceOf wraps a raw.Reference as a typed Reference[T], for
// internal constructors that read a field straight off a dictionary.
func referenceOf[T any](r raw.Reference) Reference[T] {
	return Reference[T]{ID: fromRaw(r)}
}
