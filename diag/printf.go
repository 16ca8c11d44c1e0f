package diag

import (
	"math"

	"uartdiag/uart"
)

type printfCase struct {
	format string
	args   []uart.Arg
}

func line(format string, args ...uart.Arg) printfCase {
	return printfCase{format: format, args: args}
}

func printfCases() []printfCase {
	str1, str2 := "Test String 1", "Test String 2"
	cases := []printfCase{
		line("=== printf Function Test ===\n"),
		line("Basic string test: %s\n", uart.Str("Hello from printf!")),

		line("=== Integer Tests ===\n"),
		line("Positive integer: %d\n", uart.Int(42)),
		line("Negative integer: %d\n", uart.Int(-123)),
		line("Unsigned integer: %u\n", uart.Uint(0x12345678)),
		line("Hex: %x\n", uart.Uint(0x12345678)),

		line("=== Character Tests ===\n"),
		line("Single character: %c\n", uart.Char('A')),
		line("Multiple chars: %c%c%c\n", uart.Char('X'), uart.Char('Y'), uart.Char('Z')),

		line("=== String Tests ===\n"),
		line("String 1: %s\n", uart.StrPtr(&str1)),
		line("String 2: %s\n", uart.StrPtr(&str2)),
		line("Null string: %s\n", uart.StrPtr(nil)),
		line("Combined: %s and %s\n", uart.StrPtr(&str1), uart.StrPtr(&str2)),

		line("=== Pointer Tests ===\n"),
		line("Pointer 1: %p\n", uart.Ptr(0x80000000)),
		line("Pointer 2: %p\n", uart.Ptr(0x1234567890ABCDEF)),
		line("Void pointer: %p\n", uart.Ptr(0x10000000)),

		line("=== Byte Tests ===\n"),
		line("Byte 0: %b\n", uart.Byte(0x00)),
		line("Byte 1: %b\n", uart.Byte(0xFF)),
		line("Multiple bytes: %b %b %b %b %b %b\n",
			uart.Byte(0x00), uart.Byte(0xFF), uart.Byte(0xAA),
			uart.Byte(0x55), uart.Byte(0x12), uart.Byte(0x34)),

		line("=== Special Character Tests ===\n"),
		line("Percent literal: 100%% complete\n"),
		line("Unknown format: %z (should show as %%z)\n"),

		line("=== Mixed Format Tests ===\n"),
		line("Mixed 1: Int=%d, Str=%s, Char=%c\n", uart.Int(42), uart.Str("Hello"), uart.Char('X')),
		line("Mixed 2: Addr=%p, Byte=%b, Hex=%x\n", uart.Ptr(0x12345678), uart.Byte(0xAB), uart.Uint(0xDEADBEEF)),
		line("Mixed 3: %s: %d items at %p (status: %c)\n",
			uart.Str("Result"), uart.Int(5), uart.Ptr(0x80000000), uart.Char('O')),

		line("=== Boundary Tests ===\n"),
		line("Max uint32: %u\n", uart.Uint(math.MaxUint32)),
		line("Min int32: %d\n", uart.Int(math.MinInt32)),
		line("Zero values: %d %u %x %b\n", uart.Int(0), uart.Uint(0), uart.Uint(0), uart.Byte(0)),

		line("=== Array Output Tests ===\n"),
		line("Int array: "),
	}
	for _, v := range []uint32{0x11111111, 0x22222222, 0x33333333} {
		cases = append(cases, line("%x ", uart.Uint(v)))
	}
	cases = append(cases, line("\n"), line("Addr array: "))
	for _, v := range []uint64{0x8000000000000000, 0x4000000000000000, 0x2000000000000000} {
		cases = append(cases, line("%p ", uart.Ptr(v)))
	}
	cases = append(cases, line("\n"))
	return cases
}

// Printf runs every verb of the UART printf through its normal and edge
// cases, then prints the same record both by hand and through Printf so
// the two can be compared by eye. Each Printf error counts as a failure.
func Printf(u *uart.UART) Report {
	rep := Report{Name: "printf"}
	banner(u, "In-House Printf Function Tests")

	run := func(c printfCase) { printf(&rep, u, c.format, c.args...) }
	for _, c := range printfCases() {
		run(c)
	}

	run(line("=== Comparison Test ===\n"))
	run(line("Traditional way:\n"))
	u.Print("Value: 0d")
	u.PrintDec32(0x12345678)
	u.Print(", Addr: 0x")
	u.PrintHex64(0x1234567890ABCDEF)
	u.Print(", Byte: 0x")
	u.PrintByte(0xAB)
	u.Print("\n")
	run(line("printf way:\n"))
	run(line("Value: 0d%u, Addr: 0x%p, Byte: 0x%b\n",
		uart.Uint(0x12345678), uart.Ptr(0x1234567890ABCDEF), uart.Byte(0xAB)))

	run(line("=== Performance Test ===\n"))
	run(line("Sending 16 formatted lines...\n"))
	for i := 0; i < 16; i++ {
		run(line("Line %d: Count=%d, Hex=%x, Status=%c\n",
			uart.Int(int32(i)), uart.Int(int32(i*10)), uart.Uint(uint32(i*0x1111)), uart.Char(byte('A'+i%26))))
	}
	run(line("printf test completed!\n"))
	return rep
}
