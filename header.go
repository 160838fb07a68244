package transferlist

import "encoding/binary"

// TL is a transfer list backed by a caller-owned memory region. The region
// is never copied implicitly; all mutating operations write through buf in
// place, mirroring the original C API's raw-pointer semantics while
// staying memory-safe.
type TL struct {
	buf []byte
}

// Entry identifies a transfer entry by its byte offset from the start of
// the owning TL's region. It carries no data of its own; every accessor
// takes the owning *TL as receiver, matching the format's requirement that
// entries only ever be interpreted relative to their list.
type Entry struct {
	Offset uint32
}

// Raw exposes the TL's backing region. Callers must not resize the
// returned slice; the TL's bookkeeping (Size, MaxSize) tracks the region's
// logical and physical extents independently of len(buf).
func (t *TL) Raw() []byte {
	return t.buf
}

func (t *TL) le32(off uint32) uint32 {
	return binary.LittleEndian.Uint32(t.buf[off : off+4])
}

func (t *TL) putLE32(off, v uint32) {
	binary.LittleEndian.PutUint32(t.buf[off:off+4], v)
}

// Header field accessors. Offsets follow the wire layout:
// signature(4) checksum(1) version(1) hdr_size(1) alignment(1) size(4)
// max_size(4) flags(4) reserved(4).

func (t *TL) Signature() uint32 { return t.le32(0) }
func (t *TL) Checksum() uint8   { return t.buf[4] }
func (t *TL) Version() uint8    { return t.buf[5] }
func (t *TL) HdrSize() uint8    { return t.buf[6] }
func (t *TL) Alignment() uint8  { return t.buf[7] }
func (t *TL) Size() uint32      { return t.le32(8) }
func (t *TL) MaxSize() uint32   { return t.le32(12) }
func (t *TL) Flags() uint32     { return t.le32(16) }

func (t *TL) setSignature(v uint32) { t.putLE32(0, v) }
func (t *TL) setChecksum(v uint8)   { t.buf[4] = v }
func (t *TL) setVersion(v uint8)    { t.buf[5] = v }
func (t *TL) setHdrSize(v uint8)    { t.buf[6] = v }
func (t *TL) setAlignment(v uint8)  { t.buf[7] = v }
func (t *TL) setSize(v uint32)      { t.putLE32(8, v) }
func (t *TL) setMaxSize(v uint32)   { t.putLE32(12, v) }
func (t *TL) setFlags(v uint32)     { t.putLE32(16, v) }

// HasChecksum reports whether the TL's checksum flag is set.
func (t *TL) HasChecksum() bool {
	return t.Flags()&FlagHasChecksum != 0
}

// Entry field accessors. The leading word packs a 24-bit tag_id with the
// entry's own 8-bit hdr_size; data_size follows as a plain uint32.

// TagID returns the tag carried by e.
func (t *TL) TagID(e Entry) Tag {
	return Tag(t.le32(e.Offset) & tagIDMask)
}

// EntryHdrSize returns the size in bytes of e's own header (always
// EntryHeaderSize for entries this package writes, but read back from the
// wire for entries it only walks).
func (t *TL) EntryHdrSize(e Entry) uint8 {
	return uint8(t.le32(e.Offset) >> 24)
}

// DataSize returns the size in bytes of e's data region.
func (t *TL) DataSize(e Entry) uint32 {
	return t.le32(e.Offset + 4)
}

func (t *TL) setEntryHeader(e Entry, tag Tag, hdrSize uint8) {
	word := (uint32(hdrSize) << 24) | (uint32(tag) & tagIDMask)
	t.putLE32(e.Offset, word)
}

func (t *TL) setTagID(e Entry, tag Tag) {
	t.setEntryHeader(e, tag, t.EntryHdrSize(e))
}

func (t *TL) setDataSizeField(e Entry, size uint32) {
	t.putLE32(e.Offset+4, size)
}

// EntryData returns the slice of t's region holding e's data payload. It
// returns nil if e does not carry a valid header size.
func (t *TL) EntryData(e Entry) []byte {
	hdrSize := t.EntryHdrSize(e)
	if hdrSize == 0 {
		return nil
	}

	start := e.Offset + uint32(hdrSize)
	end := start + t.DataSize(e)
	if int(end) > len(t.buf) {
		return nil
	}

	return t.buf[start:end]
}
