package sim

import (
	"io"
	"log"
	"sync"

	"uartdiag/uart"
)

// FIFO depths. Without FCR bit 0 the receiver holds a single byte.
const (
	rxFIFODepth = 16
	txSpace     = 64
)

// UART models the register file of a 16550-compatible port as the driver
// sees it. Received bytes are pushed in with Inject; transmitted bytes go
// to the sink, or are kept for Drain when there is none. With MCR loopback
// set, transmitted bytes come straight back into the receiver.
//
// Offsets 6 and 7 report free transmit space so burst-FIFO probes work
// against the model too.
type UART struct {
	mu sync.Mutex

	ier, fcr, lcr, mcr, scr uint8
	dll, dlm                uint8
	overrun                 bool

	// In peek mode each received byte is shown at RBR for two reads and
	// popped by the second.
	peek   bool
	peeked bool

	rx       []byte
	tx       []byte
	sink     io.Writer
	overruns int
	sinkErrs int

	// Trace, when set, logs every register access.
	Trace *log.Logger
}

func NewUART() *UART { return &UART{} }

var regNames = map[uint32][2]string{
	uart.RegRBR: {"RBR", "THR"},
	uart.RegIER: {"IER", "IER"},
	uart.RegIIR: {"IIR", "FCR"},
	uart.RegLCR: {"LCR", "LCR"},
	uart.RegMCR: {"MCR", "MCR"},
	uart.RegLSR: {"LSR", "LSR"},
	uart.RegMSR: {"MSR", "MSR"},
	uart.RegSCR: {"SCR", "SCR"},
}

func (u *UART) trace(write bool, off uint32, v uint8) {
	if u.Trace == nil {
		return
	}
	dir, idx := "r", 0
	if write {
		dir, idx = "w", 1
	}
	name := "?"
	if n, ok := regNames[off]; ok {
		name = n[idx]
	}
	if u.dlab() && (off == uart.RegDLL || off == uart.RegDLM) {
		name = "DLL"
		if off == uart.RegDLM {
			name = "DLM"
		}
	}
	u.Trace.Printf("uart %s %s(+0x%02x)=0x%02x", dir, name, off, v)
}

func (u *UART) dlab() bool { return u.lcr&uart.LCRDLAB != 0 }

func (u *UART) rxDepth() int {
	if u.fcr&uart.FCREnable != 0 {
		return rxFIFODepth
	}
	return 1
}

func (u *UART) lsr() uint8 {
	v := uint8(uart.LSRTHRE | uart.LSRTEMT)
	if len(u.rx) > 0 {
		v |= uart.LSRDataReady
	}
	if u.overrun {
		v |= uart.LSROverrun
	}
	return v
}

// Read8 implements uart.Registers.
func (u *UART) Read8(off uint32) uint8 {
	u.mu.Lock()
	defer u.mu.Unlock()

	var v uint8
	switch off {
	case uart.RegRBR:
		if u.dlab() {
			v = u.dll
		} else if len(u.rx) > 0 {
			v = u.rx[0]
			if !u.peek || u.peeked {
				u.rx = u.rx[1:]
			}
			u.peeked = u.peek && !u.peeked
		}
	case uart.RegIER:
		if u.dlab() {
			v = u.dlm
		} else {
			v = u.ier
		}
	case uart.RegIIR:
		v = 0x01 // no interrupt pending
		if u.fcr&uart.FCREnable != 0 {
			v |= 0xC0
		}
	case uart.RegLCR:
		v = u.lcr
	case uart.RegMCR:
		v = u.mcr
	case uart.RegLSR:
		v = u.lsr()
		u.overrun = false
	case uart.RegMSR:
		v = 0xB0 // CTS, DSR, DCD
	case uart.RegSCR:
		v = u.scr
	case uart.RegTxSpaceLo:
		v = uint8(txSpace)
	case uart.RegTxSpaceHi:
		v = uint8(txSpace >> 8)
	}
	u.trace(false, off, v)
	return v
}

// Write8 implements uart.Registers.
func (u *UART) Write8(off uint32, v uint8) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.trace(true, off, v)
	switch off {
	case uart.RegTHR:
		if u.dlab() {
			u.dll = v
			return
		}
		u.transmit(v)
	case uart.RegIER:
		if u.dlab() {
			u.dlm = v
			return
		}
		u.ier = v & 0x0F
	case uart.RegFCR:
		if v&uart.FCRClearRx != 0 {
			u.rx = u.rx[:0]
			u.peeked = false
		}
		if v&uart.FCRClearTx != 0 && u.sink == nil {
			u.tx = u.tx[:0]
		}
		u.fcr = v &^ (uart.FCRClearRx | uart.FCRClearTx)
	case uart.RegLCR:
		u.lcr = v
	case uart.RegMCR:
		u.mcr = v
	case uart.RegSCR:
		u.scr = v
	}
}

func (u *UART) transmit(v uint8) {
	if u.mcr&uart.MCRLoopback != 0 {
		u.receive([]byte{v})
		return
	}
	if u.sink != nil {
		if _, err := u.sink.Write([]byte{v}); err != nil {
			u.sinkErrs++
		}
		return
	}
	u.tx = append(u.tx, v)
}

// receive queues bytes up to the FIFO depth and returns how many fit.
// Without autoflow the rest are lost and flagged as an overrun.
func (u *UART) receive(b []byte) int {
	room := u.rxDepth() - len(u.rx)
	if room < 0 {
		room = 0
	}
	n := min(room, len(b))
	u.rx = append(u.rx, b[:n]...)
	if n == len(b) || u.mcr&uart.MCRAutoflow != 0 {
		return n
	}
	u.overrun = true
	u.overruns += len(b) - n
	return len(b)
}

// Inject delivers bytes to the receiver and returns how many were taken.
// With autoflow enabled a full FIFO refuses further bytes, which the
// caller should offer again later; otherwise they are dropped as overruns
// and counted as taken.
func (u *UART) Inject(b ...byte) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.receive(b)
}

// SetSink sends every further transmitted byte to w, starting with any
// still held for Drain. A nil w goes back to buffering for Drain.
func (u *UART) SetSink(w io.Writer) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.sink = w
	if w == nil || len(u.tx) == 0 {
		return
	}
	if _, err := w.Write(u.tx); err != nil {
		u.sinkErrs++
	}
	u.tx = nil
}

// SetPeekRBR models a receiver whose holding register keeps showing the
// oldest byte until it has been read twice, as burst-FIFO parts that are
// probed by reading RBR need. Platforms that test for data by reading the
// holding register lose every other byte without it.
func (u *UART) SetPeekRBR(on bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.peek = on
	u.peeked = false
}

// Drain returns and clears the bytes transmitted since the last call.
func (u *UART) Drain() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := u.tx
	u.tx = nil
	return out
}

// Divisor returns the baud divisor latched in DLM:DLL.
func (u *UART) Divisor() uint16 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return uint16(u.dlm)<<8 | uint16(u.dll)
}

// Overruns counts received bytes lost to a full FIFO.
func (u *UART) Overruns() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.overruns
}

// Pending is the number of received bytes not yet read.
func (u *UART) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.rx)
}

// Snapshot returns the control registers without the side effects of
// reading them through Read8.
func (u *UART) Snapshot() (ier, fcr, lcr, mcr uint8) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.ier, u.fcr, u.lcr, u.mcr
}
