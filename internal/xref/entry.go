// Package xref parses PDF cross-reference data: classical xref tables,
// PDF 1.5+ cross-reference streams, and the /Prev chain of incremental
// updates that links them together.
//
// Grounded in the earlier reader's internal/parser/xref.go (removed during
// adaptation but preserved here in spirit): the same entry-type
// vocabulary (free/in-use/compressed), the same /W + /Index binary
// field-width parsing for stream form, and the same newest-wins merge
// across /Prev. Restated over internal/raw's byte cursor instead of a
// token stream. All three cases share one Entry struct, discriminated
// by its Kind; the fields of the cases that don't apply stay zero.
package xref

// EntryKind discriminates the three cross-reference entry shapes
// defined by PDF 1.7 §7.5.8.2.
type EntryKind int

const (
	Free EntryKind = iota
	Plain
	Compressed
)

func (k EntryKind) String() string {
	switch k {
	case Free:
		return "free"
	case Plain:
		return "plain"
	case Compressed:
		return "compressed"
	default:
		return "unknown"
	}
}

// Entry is one object's location, as recorded by either xref form.
type Entry struct {
	Kind EntryKind

	// Plain entries: byte offset of the `N G obj` header and its
	// generation number.
	Offset     int64
	Generation int

	// Compressed entries (PDF 1.5+ object streams): the containing
	// stream's object number and this object's index within it.
	StreamObjNum int
	IndexInStream int
}

// Table is the consolidated mapping from object number to its most
// recent Entry, plus the trailer dictionary that named the document
// root.
type Table struct {
	Entries map[int]Entry
	Trailer *Trailer
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{Entries: make(map[int]Entry)}
}

// MergeOlder folds entries from an earlier (lower in the /Prev chain)
// table into t, without overwriting anything already present. PDF's
// incremental-update model means later xref sections take precedence;
// entries from earlier passes must never overwrite entries from later
// ones, per PDF 1.7 §7.5.6.
func (t *Table) MergeOlder(older *Table) {
	if older == nil {
		return
	}
	for num, entry := range older.Entries {
		if _, exists := t.Entries[num]; !exists {
			t.Entries[num] = entry
		}
	}
}
