package transferlist

import (
	"unsafe"

	"github.com/tf-shared/transferlist/internal/arith"
)

// Wrap attaches TL bookkeeping to an existing region without validating or
// modifying its contents. Callers should follow it with CheckHeader before
// trusting the result, or use Ensure to do both.
func Wrap(region []byte) *TL {
	return &TL{buf: region}
}

// Init sets up an empty transfer list filling the whole of region. It
// zeroes the region and writes a fresh header. Compliant to §2.4.5 of the
// Firmware Handoff specification (v0.9).
func Init(region []byte) (*TL, bool) {
	maxSize := uint32(len(region))
	if maxSize == 0 || maxSize < HeaderSize {
		return nil, false
	}

	align := uint64(1) << InitMaxAlign
	addr := uintptr(unsafe.Pointer(&region[0]))
	if !arith.IsAligned(uint64(addr), align) || !arith.IsAligned(uint64(maxSize), align) {
		return nil, false
	}

	clear(region)

	t := &TL{buf: region}
	t.setSignature(Signature)
	t.setVersion(Version)
	t.setHdrSize(HeaderSize)
	t.setAlignment(InitMaxAlign)
	t.setSize(HeaderSize)
	t.setMaxSize(maxSize)
	t.setFlags(FlagHasChecksum)
	t.UpdateChecksum()

	return t, true
}

// CheckHeader validates the signature, size, header size and checksum of
// t, reporting which operations the caller may perform. Compliant to
// §2.4.1 of the Firmware Handoff specification (v0.9).
func CheckHeader(t *TL) CheckResult {
	if t == nil || len(t.buf) < HeaderSize {
		return CheckNone
	}

	if t.Signature() != Signature {
		return CheckNone
	}

	if t.MaxSize() == 0 {
		return CheckNone
	}

	if t.Size() > t.MaxSize() {
		return CheckNone
	}

	if t.HdrSize() != HeaderSize {
		return CheckNone
	}

	if !t.VerifyChecksum() {
		return CheckNone
	}

	switch {
	case t.Version() == 0:
		return CheckNone
	case t.Version() == Version:
		return CheckAll
	case t.Version() > Version:
		return CheckReadOnly
	default:
		return CheckCustom
	}
}

// Ensure returns a TL over region, initializing it only if it does not
// already hold a fully valid transfer list.
func Ensure(region []byte) (*TL, bool) {
	if CheckHeader(Wrap(region)) == CheckAll {
		return Wrap(region), true
	}

	return Init(region)
}

// Relocate moves t's contents into newRegion, preserving t's byte offset
// modulo its required alignment, and returns a TL over the new location.
// Compliant to §2.4.6 of the Firmware Handoff specification (v0.9).
func Relocate(t *TL, newRegion []byte) (*TL, bool) {
	if t == nil || len(newRegion) == 0 {
		return nil, false
	}

	align := uint64(1) << t.Alignment()
	alignMask := align - 1

	oldAddr := uint64(uintptr(unsafe.Pointer(&t.buf[0])))
	newBase := uint64(uintptr(unsafe.Pointer(&newRegion[0])))

	alignOff := oldAddr & alignMask
	newAddr := (newBase &^ alignMask) + alignOff
	if newAddr < newBase {
		newAddr += align
	}

	consumed := newAddr - newBase
	if consumed > uint64(len(newRegion)) {
		return nil, false
	}

	newMaxSize := uint64(len(newRegion)) - consumed
	if uint64(t.Size()) > newMaxSize {
		return nil, false
	}

	dst := newRegion[consumed:]
	copy(dst, t.buf[:t.Size()])

	newTL := &TL{buf: dst}
	newTL.setMaxSize(uint32(newMaxSize))
	newTL.UpdateChecksum()

	return newTL, true
}
