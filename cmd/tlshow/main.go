// Command tlshow builds a transfer list in an anonymous, page-backed
// memory mapping — standing in for the reserved physical memory region a
// boot stage would otherwise hand off — populates it with an FDT
// placeholder entry and a TPM event log, and dumps the result.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/tf-shared/transferlist"
	"github.com/tf-shared/transferlist/dump"
	"github.com/tf-shared/transferlist/eventlog"
)

func main() {
	size := flag.Int("size", 4096, "size in bytes of the backing region")
	verbose := flag.Bool("verbose", false, "hex-dump each entry's data payload")
	flag.Parse()

	if err := run(*size, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "tlshow:", err)
		os.Exit(1)
	}
}

func run(size int, verbose bool) error {
	region, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return fmt.Errorf("mmap region: %w", err)
	}
	defer unix.Munmap(region)

	tl, ok := transferlist.Init(region)
	if !ok {
		return fmt.Errorf("init transfer list in %d-byte region", size)
	}

	if _, ok := tl.Add(transferlist.TagFDT, 4, []byte{0xde, 0xad, 0xbe, 0xef}); !ok {
		return fmt.Errorf("add FDT entry")
	}

	free, cursor, ok := eventlog.Extend(tl, 64)
	if !ok {
		return fmt.Errorf("extend event log")
	}
	n := copy(free, []byte("boot event log placeholder"))

	if _, ok := eventlog.Finish(tl, cursor.At(uint32(n))); !ok {
		return fmt.Errorf("finish event log")
	}

	dump.Dump(os.Stdout, tl, verbose)

	return nil
}
