// Package eventlog layers a TPM event log overlay on top of a transfer
// list's core entry operations: Extend grows (or creates) the event log
// entry and hands back room to append new records, Finish trims it to the
// log's actual final size.
package eventlog

import (
	"github.com/tf-shared/transferlist"
	"github.com/tf-shared/transferlist/internal/arith"
	"github.com/tf-shared/transferlist/logging"
)

// ReservedBytes is the number of leading bytes in the event log entry
// reserved ahead of the first record (e.g. for a TCG log header written
// separately by the caller).
const ReservedBytes = 4

// Cursor marks a position within the TPM event log entry, returned by
// Extend and consumed by Finish. It replaces the original library's raw
// pointer cursor with an entry handle plus a relative offset.
type Cursor struct {
	entry transferlist.Entry
	pos   uint32
}

// At returns a cursor marking n bytes consumed from the free region
// Extend returned, ready to pass to Finish once the caller knows how much
// it actually wrote.
func (c Cursor) At(n uint32) Cursor {
	return Cursor{entry: c.entry, pos: c.pos + n}
}

// Extend grows the event log entry to hold reqSize additional bytes,
// creating it on the first call, and returns the newly available region
// to write into along with a Cursor marking the start of that region.
func Extend(t *transferlist.TL, reqSize uint32) ([]byte, Cursor, bool) {
	if t == nil || reqSize == 0 {
		logging.Error("invalid arguments to event log extend")
		return nil, Cursor{}, false
	}

	existingOffset := uint32(ReservedBytes)
	existing, hasExisting := t.Find(transferlist.TagTPMEventLog)

	if hasExisting {
		existingOffset = t.DataSize(existing)

		newSize, overflow := arith.AddOverflow(uint64(reqSize), uint64(existingOffset))
		if !overflow && t.SetDataSize(existing, uint32(newSize)) {
			logging.Info("TPM event log entry resized",
				logging.Uint32("new_space", reqSize),
				logging.Uint32("offset", existingOffset))

			data := t.EntryData(existing)
			return data[existingOffset:], Cursor{entry: existing, pos: existingOffset}, true
		}
	}

	totalSize, overflow := arith.AddOverflow(uint64(reqSize), uint64(existingOffset))
	if overflow {
		logging.Error("event log size overflow")
		return nil, Cursor{}, false
	}

	newEntry, ok := t.Add(transferlist.TagTPMEventLog, uint32(totalSize), nil)
	if !ok {
		logging.Error("failed to add TPM event log entry to transfer list")
		return nil, Cursor{}, false
	}

	newData := t.EntryData(newEntry)

	if hasExisting {
		oldData := t.EntryData(existing)
		logging.Info("copying existing event log to new entry", logging.Uint32("bytes", existingOffset))
		copy(newData[:existingOffset], oldData[:existingOffset])
		t.Remove(existing)
	}

	return newData[existingOffset:], Cursor{entry: newEntry, pos: existingOffset}, true
}

// Finish trims the event log entry down to cursor's position, updates the
// list checksum, and returns the finalized log past ReservedBytes.
func Finish(t *transferlist.TL, cursor Cursor) ([]byte, bool) {
	entry, ok := t.Find(transferlist.TagTPMEventLog)
	if !ok || entry != cursor.entry {
		logging.Error("invalid cursor: no matching event log entry")
		return nil, false
	}

	if cursor.pos >= t.DataSize(entry) {
		logging.Error("invalid cursor: outside event log bounds")
		return nil, false
	}

	if !t.SetDataSize(entry, cursor.pos) {
		logging.Error("unable to resize event log entry")
		return nil, false
	}

	t.UpdateChecksum()

	logging.Info("TPM event log finalized", logging.Uint32("bytes", cursor.pos-ReservedBytes))

	data := t.EntryData(entry)
	return data[ReservedBytes:], true
}
