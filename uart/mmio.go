package uart

import "unsafe"

// MMIO accesses registers through memory-mapped I/O at Base. Only
// meaningful when running on the target with the UART mapped at Base.
type MMIO struct {
	Base uintptr
}

// Read8 loads one register byte. Not inlined so every call is a real load.
//
//go:noinline
func (m MMIO) Read8(off uint32) uint8 {
	return *(*uint8)(unsafe.Pointer(m.Base + uintptr(off)))
}

// Write8 stores one register byte.
//
//go:noinline
func (m MMIO) Write8(off uint32, v uint8) {
	*(*uint8)(unsafe.Pointer(m.Base + uintptr(off))) = v
}
