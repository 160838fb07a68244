package transferlist

import (
	"iter"

	"github.com/tf-shared/transferlist/internal/arith"
)

// Next enumerates the transfer entry following last. Passing a nil last
// starts enumeration at the first entry. It returns false at the end of
// the list or if the list is corrupt at the point being walked.
func (t *TL) Next(last *Entry) (Entry, bool) {
	tlEv := uint64(t.Size())

	var va uint64
	if last != nil {
		sz, overflow := arith.AddOverflow(uint64(t.EntryHdrSize(*last)), uint64(t.DataSize(*last)))
		if overflow {
			return Entry{}, false
		}

		va, overflow = arith.AddWithRoundUpOverflow(uint64(last.Offset), sz, uint64(Granule))
		if overflow {
			return Entry{}, false
		}
	} else {
		va = uint64(t.HdrSize())
	}

	if va+EntryHeaderSize > tlEv || int(va+EntryHeaderSize) > len(t.buf) {
		return Entry{}, false
	}

	te := Entry{Offset: uint32(va)}
	hdrSize := t.EntryHdrSize(te)
	if uint64(hdrSize) < EntryHeaderSize {
		return Entry{}, false
	}

	sz, overflow := arith.AddOverflow(uint64(hdrSize), uint64(t.DataSize(te)))
	if overflow {
		return Entry{}, false
	}

	ev, overflow := arith.AddOverflow(va, sz)
	if overflow || ev > tlEv {
		return Entry{}, false
	}

	return te, true
}

// Prev enumerates the transfer entry preceding last. There is no stored
// back-link; it is recovered by walking forward from the start of the
// list with a one-entry trailing pointer. It returns false if last is the
// first entry, or is not reachable by a forward walk.
func (t *TL) Prev(last Entry) (Entry, bool) {
	if last.Offset == uint32(t.HdrSize()) {
		return Entry{}, false
	}

	var prev, te *Entry

	for {
		prev = te

		next, ok := t.Next(te)
		if ok {
			te = &next
		} else {
			te = nil
		}

		if te == nil || te.Offset == last.Offset {
			break
		}
	}

	if te == nil || prev == nil {
		return Entry{}, false
	}

	return *prev, true
}

// All returns an iterator over every entry in t, in forward order. It is
// a convenience wrapper around Next for range-over-func use:
//
//	for e := range tl.All() {
//		...
//	}
func (t *TL) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		e, ok := t.Next(nil)
		for ok {
			if !yield(e) {
				return
			}
			e, ok = t.Next(&e)
		}
	}
}
