package uart

// Register offsets from the UART base. The divisor latch bytes share
// addresses with RBR/THR and IER and are selected by LCR bit 7.
const (
	RegRBR = 0x00 // receive buffer (read)
	RegTHR = 0x00 // transmit holding (write)
	RegDLL = 0x00 // divisor low byte (DLAB=1)
	RegIER = 0x04
	RegDLM = 0x04 // divisor high byte (DLAB=1)
	RegIIR = 0x08 // interrupt ident (read)
	RegFCR = 0x08 // FIFO control (write)
	RegLCR = 0x0C
	RegMCR = 0x10
	RegLSR = 0x14
	RegMSR = 0x18
	RegSCR = 0x1C

	// Burst-capable transmit FIFOs report free space as a
	// 16-bit count in the two bytes after the holding register.
	RegTxSpaceLo = 0x06
	RegTxSpaceHi = 0x07
)

// Line control bits.
const (
	LCRDLAB = 0x80
	LCR8N1  = 0x03
)

// Line status bits.
const (
	LSRDataReady = 0x01
	LSROverrun   = 0x02
	LSRTHRE      = 0x20
	LSRTEMT      = 0x40
)

// FIFO control bits.
const (
	FCREnable  = 0x01
	FCRClearRx = 0x02
	FCRClearTx = 0x04
	FCRTrig14  = 0xC0
)

// Modem control bits.
const (
	MCRLoopback = 0x10
	MCRAutoflow = 0x20
)

// Registers is the capability through which the driver reaches the
// hardware. Offsets are relative to the UART base. Accesses cannot fail.
type Registers interface {
	Read8(off uint32) uint8
	Write8(off uint32, v uint8)
}
