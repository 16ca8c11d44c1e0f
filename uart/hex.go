package uart

const hexDigits = "0123456789ABCDEF"

// ByteToHex returns the two hex digits of b, high nibble first.
func ByteToHex(b uint8) (hi, lo byte) {
	return hexDigits[b>>4], hexDigits[b&0xF]
}

// HexToNibble decodes one hex digit of either case. Anything else is 0.
func HexToNibble(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	}
	return 0
}
