package sim

import "encoding/binary"

// Physical address map of the SoC model.
//
//	UART:       0x1000_0000 .. +0xFF   byte registers at 4-byte stride
//	DCO:        0x2000_0000 .. +0xFFF  clock generator selects
//	Scratch:    0x3000_0000 .. +0xFFF
//	DRAM:       0xA000_0000 .. +1 MiB
//	DRAM ctrl:  0xE000_0000 .. +0xFF   timing registers
const (
	UARTBase = 0x10000000
	UARTSize = 0x100

	DCOBase = 0x20000000
	DCOSize = 0x1000

	ScratchBase = 0x30000000
	ScratchSize = 0x1000

	DRAMBase = 0xa0000000
	DRAMSize = 1 << 20

	DRAMCtrlBase = 0xe0000000
	DRAMCtrlSize = 0x100
)

type Bus struct {
	uart *UART
	rams []*RAM
}

func NewBus(uart *UART, rams ...*RAM) *Bus {
	return &Bus{uart: uart, rams: rams}
}

// NewSoC builds the full address map around u.
func NewSoC(u *UART) *Bus {
	return NewBus(u,
		NewRAM(DCOBase, DCOSize),
		NewRAM(ScratchBase, ScratchSize),
		NewRAM(DRAMBase, DRAMSize),
		NewRAM(DRAMCtrlBase, DRAMCtrlSize),
	)
}

func (b *Bus) UART() *UART { return b.uart }

func inUART(addr uint64) bool {
	return addr >= UARTBase && addr < UARTBase+UARTSize
}

func (b *Bus) ram(addr, n uint64) *RAM {
	for _, r := range b.rams {
		if r.Contains(addr, n) {
			return r
		}
	}
	return nil
}

func (b *Bus) Read8(addr uint64) (uint8, bool) {
	if inUART(addr) {
		return b.uart.Read8(uint32(addr - UARTBase)), true
	}
	r := b.ram(addr, 1)
	if r == nil {
		return 0, false
	}
	return r.Read8(addr)
}

func (b *Bus) Write8(addr uint64, v uint8) bool {
	if inUART(addr) {
		b.uart.Write8(uint32(addr-UARTBase), v)
		return true
	}
	r := b.ram(addr, 1)
	if r == nil {
		return false
	}
	return r.Write8(addr, v)
}

// Read32 and Write32 on a UART register touch only that byte register;
// the upper bytes read as zero and are dropped on write.
func (b *Bus) Read32(addr uint64) (uint32, bool) {
	if inUART(addr) {
		v, ok := b.Read8(addr)
		return uint32(v), ok
	}
	var buf [4]byte
	if !b.read(addr, buf[:]) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(buf[:]), true
}

func (b *Bus) Write32(addr uint64, v uint32) bool {
	if inUART(addr) {
		return b.Write8(addr, uint8(v))
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return b.write(addr, buf[:])
}

func (b *Bus) Read64(addr uint64) (uint64, bool) {
	var buf [8]byte
	if inUART(addr) || !b.read(addr, buf[:]) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(buf[:]), true
}

func (b *Bus) Write64(addr uint64, v uint64) bool {
	if inUART(addr) {
		return false
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return b.write(addr, buf[:])
}

func (b *Bus) read(addr uint64, buf []byte) bool {
	for i := range buf {
		v, ok := b.Read8(addr + uint64(i))
		if !ok {
			return false
		}
		buf[i] = v
	}
	return true
}

func (b *Bus) write(addr uint64, buf []byte) bool {
	for i, v := range buf {
		if !b.Write8(addr+uint64(i), v) {
			return false
		}
	}
	return true
}

// UARTRegisters exposes the UART window as a register capability whose
// accesses go through the bus.
func (b *Bus) UARTRegisters() *Window {
	return &Window{bus: b, base: UARTBase}
}

// Window is a byte register block at a fixed bus address.
type Window struct {
	bus  *Bus
	base uint64
}

func (w *Window) Read8(off uint32) uint8 {
	v, _ := w.bus.Read8(w.base + uint64(off))
	return v
}

func (w *Window) Write8(off uint32, v uint8) {
	w.bus.Write8(w.base+uint64(off), v)
}
