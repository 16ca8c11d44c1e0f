package diag

import "uartdiag/uart"

// InputConfig controls the interactive suite.
type InputConfig struct {
	// EchoCount is how many single characters are echoed back.
	EchoCount int
	// Timeout is the idle-poll limit of the bounded line read.
	Timeout uint32
	// MaxLen caps the bounded line read.
	MaxLen int
}

// DefaultInput matches the firmware: five echoed characters and a 100
// character read that gives up after 30 s of polling at 50 MHz.
var DefaultInput = InputConfig{
	EchoCount: 5,
	Timeout:   50000000 * 30,
	MaxLen:    100,
}

const (
	loopbackInt  uint32 = 0x12345678
	loopbackAddr uint64 = 0x1234567890ABCDEF
	loopbackByte uint8  = 0xAB
)

// Input asks the operator to type characters, hex values and strings and
// echoes what it parsed. The loopback step at the end compares typed-back
// values with what was printed; each mismatch is an error.
func Input(u *uart.UART, cfg InputConfig) Report {
	rep := Report{Name: "uart input"}
	banner(u, "UART Load Function Tests")

	echo(&rep, u, cfg.EchoCount)
	loadBytes(u)
	loadStrings(u)
	load32(u)
	load64(u)
	loadBounded(u, cfg)
	rep.Errors += loopback(u)
	return rep
}

func echo(rep *Report, u *uart.UART, n int) {
	u.Print("=== Read Test ===\n")
	printf(rep, u, "Type %d characters (will echo back):\n", uart.Int(int32(n)))
	for i := 0; i < n; i++ {
		c := u.WaitChar()
		u.Print("Received: ")
		u.PrintByte(c)
		u.Print(" ('")
		u.SendChar(c)
		u.Print("')\n")
	}
}

func loadBytes(u *uart.UART) {
	u.Print("=== Load Byte Test ===\n")
	u.Print("Please input 3 bytes in hex format (e.g., FF A0 12):\n")
	var got [3]uint8
	for i := range got {
		u.Print("Enter byte ")
		digit(u, i)
		u.Print(" (2 hex digits): ")
		got[i] = u.LoadByte()
		u.Print("Loaded: 0x")
		u.PrintByte(got[i])
		u.Print("\n")
	}
	u.Print("Summary - Loaded bytes: ")
	for _, b := range got {
		u.Print("0x")
		u.PrintByte(b)
		u.Print(" ")
	}
	u.Print("\n")
}

func loadStrings(u *uart.UART) {
	u.Print("=== Load String Test ===\n")
	u.Print("Please type strings (end with '#'):\n")
	var got [3]string
	for i := range got {
		u.Print("Enter string ")
		digit(u, i)
		u.Print(" (end with '#'): ")
		got[i] = u.ReadLine('#')
		u.Print("Loaded: \"" + got[i] + "\"\n")
	}
	u.Print("Summary - Loaded strings:\n")
	for i, s := range got {
		u.Print("String ")
		digit(u, i)
		u.Print(": \"" + s + "\"\n")
	}
}

func load32(u *uart.UART) {
	u.Print("=== Load 32-Bit Data Test ===\n")
	u.Print("Please input 2 integers in hex format (8 digits each):\n")
	var got [2]uint32
	for i := range got {
		u.Print("Enter 32-bit integer ")
		digit(u, i)
		u.Print(" (8 hex digits): ")
		got[i] = u.Load32()
		u.Print("Loaded: 0x")
		u.PrintHex32(got[i])
		u.Print("\n")
	}
	u.Print("Summary - Loaded integers:\n")
	for i, v := range got {
		u.Print("Int ")
		digit(u, i)
		u.Print(": 0x")
		u.PrintHex32(v)
		u.Print("\n")
	}
}

func load64(u *uart.UART) {
	u.Print("=== Load 64-Bit Test ===\n")
	u.Print("Please input 2 addresses in hex format (16 digits each):\n")
	var got [2]uint64
	for i := range got {
		u.Print("Enter 64-bit address ")
		digit(u, i)
		u.Print(" (16 hex digits): ")
		got[i] = u.Load64()
		u.Print("Loaded: 0x")
		u.PrintHex64(got[i])
		u.Print("\n")
	}
	u.Print("Summary - Loaded addresses:\n")
	for i, v := range got {
		u.Print("Addr ")
		digit(u, i)
		u.Print(": 0x")
		u.PrintHex64(v)
		u.Print("\n")
	}
}

func loadBounded(u *uart.UART, cfg InputConfig) {
	u.Print("=== Load Timeout Test ===\n")
	u.Print("Type something before the timeout (end with '*'):\n")
	s, st := u.ReadLineBounded('*', cfg.MaxLen, cfg.Timeout)
	u.Print("Result: \"" + s + "\"\n")
	switch {
	case st == uart.LineTimedOut && s == "":
		u.Print("Timeout occurred - no input received\n")
	case st == uart.LineTimedOut:
		u.Print("Timeout occurred - partial input kept\n")
	default:
		u.Print("Input received successfully\n")
	}
}

func loopback(u *uart.UART) int {
	u.Print("=== Loopback Test ===\n")
	u.Print("This test will print data and ask you to type it back\n")
	u.Print("Please type back the following data:\n")
	u.Print("1. Integer (8 hex digits): ")
	u.PrintHex32(loopbackInt)
	u.Print("\n2. Address (16 hex digits): ")
	u.PrintHex64(loopbackAddr)
	u.Print("\n3. Byte (2 hex digits): ")
	u.PrintByte(loopbackByte)
	u.Print("\n")

	u.Print("\nNow type them back:\n")
	u.Print("Enter integer:\n")
	gotInt := u.Load32()
	u.Print("Enter address:\n")
	gotAddr := u.Load64()
	u.Print("Enter byte:\n")
	gotByte := u.LoadByte()

	errs := 0
	u.Print("\n=== Verification ===\n")
	u.Print("Integer - Expected: 0x")
	u.PrintHex32(loopbackInt)
	u.Print(", Got: 0x")
	u.PrintHex32(gotInt)
	mark(u, gotInt == loopbackInt)
	if gotInt != loopbackInt {
		errs++
	}

	u.Print("Address - Expected: 0x")
	u.PrintHex64(loopbackAddr)
	u.Print(", Got: 0x")
	u.PrintHex64(gotAddr)
	mark(u, gotAddr == loopbackAddr)
	if gotAddr != loopbackAddr {
		errs++
	}

	u.Print("Byte - Expected: 0x")
	u.PrintByte(loopbackByte)
	u.Print(", Got: 0x")
	u.PrintByte(gotByte)
	mark(u, gotByte == loopbackByte)
	if gotByte != loopbackByte {
		errs++
	}
	return errs
}
