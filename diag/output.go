package diag

import "uartdiag/uart"

// ScratchAddr is the scratch RAM the memory/UART test writes to.
const ScratchAddr = 0x30000000

var testStrings = []string{
	"Hello World from CVA6!\n",
	"UART Test String 1\n",
	"UART Test String 2\n",
	"Special chars: !@#$%^&*()\n",
	"Numbers: 0123456789\n",
	"End of test\n",
}

var (
	testInts  = []uint32{0x12345678, 0xABCDEF00, 0xDEADBEEF, 0x00000001, 0xFFFFFFFF}
	testAddrs = []uint64{0x80000000, 0x10000000, 0xa0000000, 0x1234567890abcdef, 0xfedcba0987654321}
	testBytes = []uint8{0x00, 0xFF, 0xAA, 0x55, 0x12, 0x34, 0x56, 0x78}
)

// Output exercises every renderer: strings, 32- and 64-bit values in hex,
// decimal and binary, bytes, a memory round trip, and a burst of letters.
// Only the memory round trip can fail.
func Output(u *uart.UART, mem Memory) Report {
	rep := Report{Name: "uart output"}
	banner(u, "UART Function Test Suite")

	u.Print("=== String Test ===\n")
	for _, s := range testStrings {
		u.Print(s)
	}

	u.Print("=== Print 32-Bit Data Test ===\n")
	for i, v := range testInts {
		u.Print("Int ")
		digit(u, i)
		u.Print("\n  Hex: 0x")
		u.PrintHex32(v)
		u.Print("\n  Dec: ")
		u.PrintDec32(v)
		u.Print("\n  Bin: ")
		u.PrintBin32(v)
		u.Print("\n\n")
	}

	u.Print("=== Print 64-Bit Data Test ===\n")
	for i, v := range testAddrs {
		u.Print("Addr ")
		digit(u, i)
		u.Print("\n  Hex: 0x")
		u.PrintHex64(v)
		u.Print("\n  Dec: ")
		u.PrintDec64(v)
		u.Print("\n  Bin: ")
		u.PrintBin64(v)
		u.Print("\n\n")
	}

	u.Print("=== Byte Test ===\nBytes: ")
	for _, b := range testBytes {
		u.Print("0x")
		u.PrintByte(b)
		u.Print(" ")
	}
	u.Print("\n")

	rep.Errors += memoryRoundTrip(u, mem)

	u.Print("=== Stress Test ===\n")
	for i := 0; i < 10; i++ {
		u.Print("Stress test iteration ")
		digit(u, i/10)
		digit(u, i%10)
		u.Print(": ")
		for c := byte('A'); c <= 'Z'; c++ {
			u.SendChar(c)
		}
		u.Print("\n")
	}
	return rep
}

func memoryRoundTrip(u *uart.UART, mem Memory) int {
	u.Print("=== Memory & UART Test ===\n")
	u.Print("Writing test pattern to memory at 0x")
	u.PrintHex64(ScratchAddr)
	u.Print("\n")

	errs := 0
	for i := 0; i < 4; i++ {
		addr := uint64(ScratchAddr + 8*i)
		want := uint64(0x1122334455667788 + i)
		mem.Write64(addr, want)
		got, _ := mem.Read64(addr)
		u.Print("Wrote to offset ")
		digit(u, i)
		u.Print(": 0x")
		u.PrintHex64(got)
		u.Print("\n")
	}

	u.Print("Reading back from memory:\n")
	for i := 0; i < 4; i++ {
		addr := uint64(ScratchAddr + 8*i)
		got, ok := mem.Read64(addr)
		u.Print("Read from offset ")
		digit(u, i)
		u.Print(": 0x")
		u.PrintHex64(got)
		ok = ok && got == uint64(0x1122334455667788+i)
		mark(u, ok)
		if !ok {
			errs++
		}
	}
	return errs
}
