package sim

import "fmt"

// RAM is a byte-addressed memory window starting at Base.
type RAM struct {
	Base uint64
	mem  []byte
}

func NewRAM(base, size uint64) *RAM {
	return &RAM{Base: base, mem: make([]byte, size)}
}

func (r *RAM) Size() uint64 { return uint64(len(r.mem)) }

// Contains reports whether all n bytes starting at addr are inside r.
func (r *RAM) Contains(addr, n uint64) bool {
	return addr >= r.Base && addr-r.Base+n <= r.Size()
}

func (r *RAM) Read8(addr uint64) (uint8, bool) {
	if !r.Contains(addr, 1) {
		return 0, false
	}
	return r.mem[addr-r.Base], true
}

func (r *RAM) Write8(addr uint64, v uint8) bool {
	if !r.Contains(addr, 1) {
		return false
	}
	r.mem[addr-r.Base] = v
	return true
}

// WriteBytes copies b into memory at addr.
func (r *RAM) WriteBytes(addr uint64, b []byte) error {
	if !r.Contains(addr, uint64(len(b))) {
		return fmt.Errorf("write %d bytes @0x%x: outside [0x%x, 0x%x)", len(b), addr, r.Base, r.Base+r.Size())
	}
	copy(r.mem[addr-r.Base:], b)
	return nil
}
