//go:build linux

package uart

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// WindowSize is the span of the register block mapped by OpenDevMem.
const WindowSize = 0x100

// DevMem reaches the registers of a UART at a physical address from Linux
// user space by mapping /dev/mem.
type DevMem struct {
	mem []byte
	off uint32
}

// OpenDevMem maps the register window at physical address base through the
// memory device at path (normally /dev/mem).
func OpenDevMem(path string, base uintptr) (*DevMem, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// The mapping outlives the descriptor.
	defer f.Close()

	pageSize := uintptr(os.Getpagesize())
	page := base &^ (pageSize - 1)
	off := base - page
	length := (off + WindowSize + pageSize - 1) &^ (pageSize - 1)

	mem, err := unix.Mmap(int(f.Fd()), int64(page), int(length),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s @0x%x: %w", path, page, err)
	}
	return &DevMem{mem: mem, off: uint32(off)}, nil
}

//go:noinline
func (d *DevMem) Read8(off uint32) uint8 {
	return d.mem[d.off+off]
}

//go:noinline
func (d *DevMem) Write8(off uint32, v uint8) {
	d.mem[d.off+off] = v
}

// Close unmaps the register window.
func (d *DevMem) Close() error {
	if d.mem == nil {
		return nil
	}
	err := unix.Munmap(d.mem)
	d.mem = nil
	return err
}
