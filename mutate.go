package transferlist

import "github.com/tf-shared/transferlist/internal/arith"

// Add appends a new transfer entry at the tail of t, copying up to
// dataSize bytes from data. data may be nil or shorter than dataSize; the
// rest of the data region is not written and keeps whatever bytes lay past
// the list's end (zero in a region prepared by Init). Compliant to §2.4.3
// of the Firmware Handoff specification (v0.9).
func (t *TL) Add(tag Tag, dataSize uint32, data []byte) (Entry, bool) {
	if uint32(tag)&^tagIDMask != 0 {
		return Entry{}, false
	}

	tlEv := uint64(t.Size())

	teOffset, overflow := arith.RoundUpOverflow(tlEv, uint64(Granule))
	if overflow {
		return Entry{}, false
	}

	sum, overflow := arith.AddOverflow(teOffset, uint64(EntryHeaderSize))
	if overflow {
		return Entry{}, false
	}
	sum, overflow = arith.AddOverflow(sum, uint64(dataSize))
	if overflow {
		return Entry{}, false
	}

	teEnd, overflow := arith.RoundUpOverflow(sum, uint64(Granule))
	if overflow {
		return Entry{}, false
	}

	if teEnd > uint64(t.MaxSize()) {
		return Entry{}, false
	}

	te := Entry{Offset: uint32(teOffset)}
	t.setEntryHeader(te, tag, EntryHeaderSize)
	t.setDataSizeField(te, dataSize)
	t.setSize(uint32(teEnd))

	if data != nil {
		entryData := t.EntryData(te)
		if entryData == nil {
			return Entry{}, false
		}
		copy(entryData, data)
	}

	t.UpdateChecksum()

	return te, true
}

// AddWithAlign appends a new transfer entry whose data is aligned to
// 1<<alignment, inserting an EMPTY padding entry first if the data of an
// entry added at the current tail would not land on that boundary.
// Compliant to §2.4.4 of the Firmware Handoff
// specification (v0.9).
func (t *TL) AddWithAlign(tag Tag, dataSize uint32, data []byte, alignment uint8) (Entry, bool) {
	tlEv := uint64(t.Size())
	ev := tlEv + uint64(EntryHeaderSize)
	boundary := uint64(1) << alignment

	if !arith.IsAligned(ev, boundary) {
		newTlEv := arith.AlignUp(ev, boundary) - uint64(EntryHeaderSize)
		dummyDataSz := newTlEv - tlEv - uint64(EntryHeaderSize)

		if _, ok := t.Add(TagEmpty, uint32(dummyDataSz), nil); !ok {
			return Entry{}, false
		}
	}

	te, ok := t.Add(tag, dataSize, data)
	if !ok {
		return Entry{}, false
	}

	if alignment > t.Alignment() {
		t.setAlignment(alignment)
		t.UpdateChecksum()
	}

	return te, true
}

// SetDataSize resizes te's data region in place, shrinking it, absorbing
// a following EMPTY entry, or sliding every subsequent entry to make room,
// and leaves a fresh EMPTY entry to cover any resulting gap. It reports
// false if the list has no room to grow te to newDataSize.
func (t *TL) SetDataSize(te Entry, newDataSize uint32) bool {
	tlOldEv := uint64(t.Size())

	sz, overflow := arith.AddOverflow(uint64(t.EntryHdrSize(te)), uint64(t.DataSize(te)))
	if overflow {
		return false
	}
	oldEv, overflow := arith.AddWithRoundUpOverflow(uint64(te.Offset), sz, uint64(Granule))
	if overflow {
		return false
	}

	sz, overflow = arith.AddOverflow(uint64(t.EntryHdrSize(te)), uint64(newDataSize))
	if overflow {
		return false
	}
	newEv, overflow := arith.AddWithRoundUpOverflow(uint64(te.Offset), sz, uint64(Granule))
	if overflow {
		return false
	}

	var gap uint64
	resolved := false

	if newEv > oldEv {
		if dummy, ok := t.Next(&te); ok && t.TagID(dummy) == TagEmpty {
			mergeEv := arith.AlignUp(oldEv+uint64(t.EntryHdrSize(dummy))+uint64(t.DataSize(dummy)), uint64(Granule))
			if mergeEv >= newEv {
				gap = mergeEv - newEv
				resolved = true
			} else {
				oldEv = mergeEv
			}
		}

		if !resolved {
			movDis := newEv - oldEv

			movDis, overflow = arith.RoundUpOverflow(movDis, uint64(1)<<t.Alignment())
			if overflow {
				return false
			}
			if uint64(t.Size())+movDis > uint64(t.MaxSize()) {
				return false
			}

			ruNewEv := oldEv + movDis
			copy(t.buf[ruNewEv:ruNewEv+(tlOldEv-oldEv)], t.buf[oldEv:tlOldEv])
			t.setSize(uint32(uint64(t.Size()) + movDis))
			gap = ruNewEv - newEv
		}
	} else {
		gap = oldEv - newEv
	}

	if gap >= uint64(EntryHeaderSize) {
		dummy := Entry{Offset: uint32(newEv)}
		t.setEntryHeader(dummy, TagEmpty, EntryHeaderSize)
		t.setDataSizeField(dummy, uint32(gap-uint64(EntryHeaderSize)))
	}

	t.setDataSizeField(te, newDataSize)
	t.UpdateChecksum()

	return true
}

// Remove marks te as EMPTY, coalescing it with an immediately adjacent
// EMPTY entry on either side.
func (t *TL) Remove(te Entry) bool {
	if uint64(te.Offset) > uint64(t.Size()) {
		return false
	}

	prev, havePrev := t.Prev(te)
	next, haveNext := t.Next(&te)

	if havePrev && t.TagID(prev) == TagEmpty {
		grown := t.DataSize(prev) + uint32(arith.AlignUp(uint64(t.EntryHdrSize(te))+uint64(t.DataSize(te)), uint64(Granule)))
		t.setDataSizeField(prev, grown)
		te = prev
	}

	if haveNext && t.TagID(next) == TagEmpty {
		grown := t.DataSize(te) + uint32(arith.AlignUp(uint64(t.EntryHdrSize(next))+uint64(t.DataSize(next)), uint64(Granule)))
		t.setDataSizeField(te, grown)
	}

	t.setTagID(te, TagEmpty)
	t.UpdateChecksum()

	return true
}
