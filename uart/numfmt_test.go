package uart_test

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"uartdiag/uart"
)

func TestHexRoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		hi, lo := uart.ByteToHex(uint8(b))
		got := uart.HexToNibble(hi)<<4 | uart.HexToNibble(lo)
		if got != uint8(b) {
			t.Fatalf("byte 0x%02x: %c%c decodes to 0x%02x", b, hi, lo, got)
		}
	}
}

func TestHexToNibble(t *testing.T) {
	cases := map[byte]uint8{
		'0': 0, '9': 9, 'A': 10, 'F': 15, 'a': 10, 'f': 15,
		'g': 0, 'G': 0, '\n': 0, ' ': 0, '/': 0, ':': 0,
	}
	for c, want := range cases {
		if got := uart.HexToNibble(c); got != want {
			t.Errorf("HexToNibble(%q) = %d, want %d", c, got, want)
		}
	}
}

func TestAppendHex(t *testing.T) {
	if got := string(uart.AppendHex32(nil, 0xDEADBEEF)); got != "DEADBEEF" {
		t.Fatalf("AppendHex32 = %q", got)
	}
	if got := string(uart.AppendHex32(nil, 1)); got != "00000001" {
		t.Fatalf("AppendHex32(1) = %q", got)
	}
	if got := string(uart.AppendHex64([]byte("0x"), 0x1234567890abcdef)); got != "0x1234567890ABCDEF" {
		t.Fatalf("AppendHex64 = %q", got)
	}
	if got := string(uart.AppendHex8(nil, 0x0a)); got != "0A" {
		t.Fatalf("AppendHex8 = %q", got)
	}
}

func TestAppendDec(t *testing.T) {
	if got := string(uart.AppendDec32(nil, 0)); got != "0" {
		t.Fatalf("AppendDec32(0) = %q, want \"0\"", got)
	}
	if got := string(uart.AppendDec64(nil, 0)); got != "0" {
		t.Fatalf("AppendDec64(0) = %q, want \"0\"", got)
	}

	vals32 := []uint32{1, 9, 10, 99, 100, 305419896, 0xDEADBEEF, math.MaxUint32}
	for _, v := range vals32 {
		s := string(uart.AppendDec32(nil, v))
		got, err := strconv.ParseUint(s, 10, 32)
		if err != nil || uint32(got) != v {
			t.Errorf("AppendDec32(%d) = %q", v, s)
		}
	}
	vals64 := []uint64{1, 0x80000000, 0x1234567890abcdef, 0xfedcba0987654321, math.MaxUint64}
	for _, v := range vals64 {
		s := string(uart.AppendDec64(nil, v))
		got, err := strconv.ParseUint(s, 10, 64)
		if err != nil || got != v {
			t.Errorf("AppendDec64(%d) = %q", v, s)
		}
	}
}

func TestAppendBin(t *testing.T) {
	got := string(uart.AppendBin32(nil, 0x12345678))
	want := "0001_0010_0011_0100_0101_0110_0111_1000"
	if got != want {
		t.Fatalf("AppendBin32 = %q, want %q", got, want)
	}

	b64 := string(uart.AppendBin64(nil, math.MaxUint64))
	if len(b64) != 79 {
		t.Fatalf("64-bit rendering is %d characters, want 79", len(b64))
	}
	if strings.Count(b64, "_") != 15 || strings.HasPrefix(b64, "_") || strings.HasSuffix(b64, "_") {
		t.Fatalf("bad separators in %q", b64)
	}
	if len(uart.AppendBin32(nil, 0)) != 39 {
		t.Fatalf("32-bit rendering length = %d, want 39", len(uart.AppendBin32(nil, 0)))
	}
}

func TestPrintWrappers(t *testing.T) {
	u, dev, _ := newMachine(t, "")
	u.PrintHex32(0xCAFEF00D)
	u.PrintByte(0x7f)
	u.PrintDec64(18446744073709551615)
	u.PrintBin32(0xF)
	got := string(dev.Drain())
	want := "CAFEF00D7F18446744073709551615" + "0000_0000_0000_0000_0000_0000_0000_1111"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseFixedHex(t *testing.T) {
	u, _, _ := newMachine(t, "DEADBEEF")
	if got := u.ParseFixedHex(4); got != 0xDEADBEEF {
		t.Fatalf("ParseFixedHex(4) = %#x, want 0xDEADBEEF", got)
	}
}

func TestLoadWidths(t *testing.T) {
	u, _, _ := newMachine(t, "ff"+"0000002a"+"1234567890abcdef")
	if got := u.LoadByte(); got != 0xFF {
		t.Fatalf("LoadByte = %#x", got)
	}
	if got := u.Load32(); got != 42 {
		t.Fatalf("Load32 = %#x", got)
	}
	if got := u.Load64(); got != 0x1234567890ABCDEF {
		t.Fatalf("Load64 = %#x", got)
	}
}

func TestParseFixedHexNewlineZeroFills(t *testing.T) {
	// Pairs: "12", "\n3", "AB", "CD".
	u, _, _ := newMachine(t, "12\n3ABCD")
	if got := u.Load32(); got != 0x1200ABCD {
		t.Fatalf("Load32 = %#x, want 0x1200ABCD", got)
	}

	// A lone newline still consumes a full pair.
	u, _, f := newMachine(t, "AB\n\n\n\n\n\n")
	if got := u.Load32(); got != 0xAB000000 {
		t.Fatalf("Load32 = %#x, want 0xAB000000", got)
	}
	if len(f.script) != 0 {
		t.Fatalf("%d bytes left unread", len(f.script))
	}
}

func TestParseFixedHexInvalidDigits(t *testing.T) {
	u, _, _ := newMachine(t, "zz1g")
	if got := u.ParseFixedHex(2); got != 0x0010 {
		t.Fatalf("ParseFixedHex = %#x, want 0x10", got)
	}
}
