package uart

// AppendHex8 appends the two hex digits of v.
func AppendHex8(dst []byte, v uint8) []byte {
	hi, lo := ByteToHex(v)
	return append(dst, hi, lo)
}

// AppendHex32 appends v as exactly 8 hex digits.
func AppendHex32(dst []byte, v uint32) []byte {
	return appendHex(dst, uint64(v), 4)
}

// AppendHex64 appends v as exactly 16 hex digits.
func AppendHex64(dst []byte, v uint64) []byte {
	return appendHex(dst, v, 8)
}

func appendHex(dst []byte, v uint64, nbytes int) []byte {
	for i := nbytes - 1; i >= 0; i-- {
		dst = AppendHex8(dst, uint8(v>>(8*i)))
	}
	return dst
}

func AppendDec32(dst []byte, v uint32) []byte {
	return AppendDec64(dst, uint64(v))
}

// AppendDec64 appends v in decimal with no leading zeros; 0 is "0".
func AppendDec64(dst []byte, v uint64) []byte {
	if v == 0 {
		return append(dst, '0')
	}
	n := 0
	for t := v; t > 0; t /= 10 {
		n++
	}
	start := len(dst)
	for i := 0; i < n; i++ {
		dst = append(dst, 0)
	}
	for i := start + n - 1; i >= start; i-- {
		dst[i] = '0' + byte(v%10)
		v /= 10
	}
	return dst
}

// AppendBin32 appends all 32 bits of v, most significant first, with an
// underscore between nibbles.
func AppendBin32(dst []byte, v uint32) []byte {
	return appendBin(dst, uint64(v), 32)
}

func AppendBin64(dst []byte, v uint64) []byte {
	return appendBin(dst, v, 64)
}

func appendBin(dst []byte, v uint64, bits int) []byte {
	for i := bits - 1; i >= 0; i-- {
		dst = append(dst, '0'+byte(v>>i&1))
		if i != 0 && i%4 == 0 {
			dst = append(dst, '_')
		}
	}
	return dst
}

// The scratch arrays below are sized for the widest rendering of each
// kind: 16 hex digits, 20 decimal digits, 64 bits plus 15 separators.

func (u *UART) PrintByte(v uint8) {
	var buf [2]byte
	u.send(AppendHex8(buf[:0], v))
}

func (u *UART) PrintHex32(v uint32) {
	var buf [8]byte
	u.send(AppendHex32(buf[:0], v))
}

func (u *UART) PrintHex64(v uint64) {
	var buf [16]byte
	u.send(AppendHex64(buf[:0], v))
}

func (u *UART) PrintDec32(v uint32) {
	var buf [20]byte
	u.send(AppendDec32(buf[:0], v))
}

func (u *UART) PrintDec64(v uint64) {
	var buf [20]byte
	u.send(AppendDec64(buf[:0], v))
}

func (u *UART) PrintBin32(v uint32) {
	var buf [79]byte
	u.send(AppendBin32(buf[:0], v))
}

func (u *UART) PrintBin64(v uint64) {
	var buf [79]byte
	u.send(AppendBin64(buf[:0], v))
}

// ParseFixedHex reads exactly 2*width characters and assembles them into
// an integer, most significant byte first. A pair containing '\n' counts
// as a zero byte, so a short entry still completes the read with the
// remaining bytes zero. It blocks until every character has arrived.
// Widths above 8 consume their characters but only the low 8 bytes are
// kept.
func (u *UART) ParseFixedHex(width int) uint64 {
	var v uint64
	for i := width - 1; i >= 0; i-- {
		hi := u.WaitChar()
		lo := u.WaitChar()
		if hi == '\n' || lo == '\n' {
			continue
		}
		b := HexToNibble(hi)<<4 | HexToNibble(lo)
		if i < 8 {
			v |= uint64(b) << (8 * i)
		}
	}
	return v
}

// LoadByte reads two hex digits.
func (u *UART) LoadByte() uint8 { return uint8(u.ParseFixedHex(1)) }

// Load32 reads eight hex digits.
func (u *UART) Load32() uint32 { return uint32(u.ParseFixedHex(4)) }

// Load64 reads sixteen hex digits.
func (u *UART) Load64() uint64 { return u.ParseFixedHex(8) }
