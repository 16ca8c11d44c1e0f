// Package uart is a polling driver for a 16550-style serial port together
// with the text formatting and parsing used by the diagnostics: hex,
// decimal and binary renderers, fixed-width hex input, line readers and a
// small printf.
//
// Everything is single threaded. SendChar and the blocking readers spin
// until the hardware condition they wait for appears; only
// ReadLineBounded gives up, after a number of empty polls.
package uart

import (
	"errors"
	"fmt"
)

// UART is a handle on one serial port's register block.
type UART struct {
	regs  Registers
	plat  Platform
	yield func()
}

type Option func(*UART)

// WithPlatform selects the readiness probes. The default is Standard,
// which also fills in a probe p leaves nil.
func WithPlatform(p Platform) Option {
	return func(u *UART) {
		if p.TX == nil {
			p.TX = Standard.TX
		}
		if p.RX == nil {
			p.RX = Standard.RX
		}
		u.plat = p
	}
}

// WithYield installs a hook called on every poll iteration that found the
// link not ready. Hosts with a scheduler use it to give up the CPU.
func WithYield(f func()) Option {
	return func(u *UART) { u.yield = f }
}

func New(regs Registers, opts ...Option) *UART {
	u := &UART{regs: regs, plat: Standard}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Registers returns the register capability the UART was built on.
func (u *UART) Registers() Registers { return u.regs }

// Platform returns the active platform variant.
func (u *UART) Platform() Platform { return u.plat }

var ErrZeroBaud = errors.New("uart: baud rate must be non-zero")

// Divisor is the baud divisor for a 16x oversampling clock.
func Divisor(freq, baud uint32) uint32 {
	return freq / (baud << 4)
}

// Init programs the divisor for baud from the input clock freq and sets
// 8-N-1 framing, FIFOs enabled with a 14-byte threshold and autoflow.
func (u *UART) Init(freq, baud uint32) error {
	if baud == 0 {
		return ErrZeroBaud
	}
	div := Divisor(freq, baud)
	if div > 0xFFFF {
		return fmt.Errorf("uart: divisor %d for %d Hz / %d baud does not fit 16 bits", div, freq, baud)
	}

	u.regs.Write8(RegIER, 0x00)
	u.regs.Write8(RegLCR, LCRDLAB)
	u.regs.Write8(RegDLL, uint8(div))
	u.regs.Write8(RegDLM, uint8(div>>8))
	u.regs.Write8(RegLCR, LCR8N1)
	u.regs.Write8(RegFCR, FCRTrig14|FCRClearTx|FCRClearRx|FCREnable)
	u.regs.Write8(RegMCR, MCRAutoflow)
	return nil
}

func (u *UART) TransmitReady() bool { return u.plat.TX.Ready(u.regs) }
func (u *UART) ReceiveReady() bool  { return u.plat.RX.Ready(u.regs) }

func (u *UART) idle() {
	if u.yield != nil {
		u.yield()
	}
}

// SendChar waits for the transmitter and writes c. It blocks for as long
// as the hardware reports busy.
func (u *UART) SendChar(c byte) {
	for !u.TransmitReady() {
		u.idle()
	}
	u.regs.Write8(RegTHR, c)
}

// PollChar returns the next received byte, or false straight away when
// nothing is waiting.
func (u *UART) PollChar() (byte, bool) {
	if !u.ReceiveReady() {
		return 0, false
	}
	return u.regs.Read8(RegRBR), true
}

// WaitChar blocks until a byte arrives.
func (u *UART) WaitChar() byte {
	for {
		if c, ok := u.PollChar(); ok {
			return c
		}
		u.idle()
	}
}

// Print sends every byte of s.
func (u *UART) Print(s string) {
	for i := 0; i < len(s); i++ {
		u.SendChar(s[i])
	}
}

func (u *UART) send(b []byte) {
	for _, c := range b {
		u.SendChar(c)
	}
}

// Write implements io.Writer. It always sends all of p.
func (u *UART) Write(p []byte) (int, error) {
	u.send(p)
	return len(p), nil
}
