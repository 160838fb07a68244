// Package dump prints the contents of a transfer list for debugging, the
// way the original library's transfer_list_dump/transfer_entry_dump pair
// does to stdout.
package dump

import (
	"fmt"
	"io"
	"unsafe"

	"github.com/tf-shared/transferlist"
)

// Dump writes a human-readable report of t's header and every entry to w.
// When verbose is true, each entry's data payload is hex-dumped too.
func Dump(w io.Writer, t *transferlist.TL, verbose bool) {
	if t == nil {
		return
	}

	fmt.Fprintln(w, "Dump transfer list:")
	fmt.Fprintf(w, "signature  0x%x\n", t.Signature())
	fmt.Fprintf(w, "checksum   0x%x\n", t.Checksum())
	fmt.Fprintf(w, "version    0x%x\n", t.Version())
	fmt.Fprintf(w, "hdr_size   0x%x\n", t.HdrSize())
	fmt.Fprintf(w, "alignment  0x%x\n", t.Alignment())
	fmt.Fprintf(w, "size       0x%x\n", t.Size())
	fmt.Fprintf(w, "max_size   0x%x\n", t.MaxSize())
	fmt.Fprintf(w, "flags      0x%x\n", t.Flags())

	i := 0
	for e := range t.All() {
		fmt.Fprintf(w, "Entry %d:\n", i)
		DumpEntry(w, t, e, verbose)
		i++
	}
}

// DumpEntry writes a human-readable report of a single entry to w. When
// verbose is true it also hex-dumps the entry's data payload.
func DumpEntry(w io.Writer, t *transferlist.TL, e transferlist.Entry, verbose bool) {
	fmt.Fprintf(w, "tag_id     0x%x\n", t.TagID(e))
	fmt.Fprintf(w, "hdr_size   0x%x\n", t.EntryHdrSize(e))
	fmt.Fprintf(w, "data_size  0x%x\n", t.DataSize(e))
	dataOff := e.Offset + uint32(t.EntryHdrSize(e))
	dataAddr := uintptr(unsafe.Pointer(unsafe.SliceData(t.Raw()))) + uintptr(dataOff)
	fmt.Fprintf(w, "data_addr  0x%x\n", dataAddr)

	if verbose {
		fmt.Fprintf(w, "data       % x\n", t.EntryData(e))
	}
}
