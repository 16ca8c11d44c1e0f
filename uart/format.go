package uart

import (
	"errors"
	"fmt"
)

// ArgKind tags the value carried by an Arg.
type ArgKind uint8

const (
	KindInt  ArgKind = iota + 1 // %d %i
	KindUint                    // %u %x
	KindPtr                     // %p
	KindChar                    // %c
	KindStr                     // %s
	KindByte                    // %b
)

var kindNames = [...]string{
	KindInt:  "int",
	KindUint: "uint",
	KindPtr:  "pointer",
	KindChar: "char",
	KindStr:  "string",
	KindByte: "byte",
}

func (k ArgKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("ArgKind(%d)", k)
}

// Arg is one Printf argument. Build it with Int, Uint, Ptr, Char, Str,
// StrPtr or Byte.
type Arg struct {
	kind ArgKind
	n    uint64
	s    *string
}

func Int(v int32) Arg   { return Arg{kind: KindInt, n: uint64(uint32(v))} }
func Uint(v uint32) Arg { return Arg{kind: KindUint, n: uint64(v)} }
func Ptr(v uint64) Arg  { return Arg{kind: KindPtr, n: v} }
func Char(c byte) Arg   { return Arg{kind: KindChar, n: uint64(c)} }
func Byte(v uint8) Arg  { return Arg{kind: KindByte, n: uint64(v)} }
func Str(s string) Arg  { return Arg{kind: KindStr, s: &s} }

// StrPtr passes a string that may be absent; a nil p prints as "(null)".
func StrPtr(p *string) Arg { return Arg{kind: KindStr, s: p} }

func (a Arg) Kind() ArgKind { return a.kind }

var (
	ErrArgType    = errors.New("uart: argument type mismatch")
	ErrMissingArg = errors.New("uart: missing argument")
	ErrExtraArgs  = errors.New("uart: extra arguments")
)

type byteSink interface {
	SendChar(c byte)
}

// cursor walks the argument list left to right, one argument per verb.
type cursor struct {
	args []Arg
	next int
}

func (c *cursor) take(pos int, verb byte, want ArgKind) (Arg, error) {
	if c.next >= len(c.args) {
		return Arg{}, fmt.Errorf("%w for %%%c at offset %d", ErrMissingArg, verb, pos)
	}
	a := c.args[c.next]
	if a.kind != want {
		return Arg{}, fmt.Errorf("%w: %%%c at offset %d wants %v, argument %d is %v",
			ErrArgType, verb, pos, want, c.next, a.kind)
	}
	c.next++
	return a, nil
}

var verbKinds = map[byte]ArgKind{
	'd': KindInt,
	'i': KindInt,
	'u': KindUint,
	'x': KindUint,
	'p': KindPtr,
	'c': KindChar,
	's': KindStr,
	'b': KindByte,
}

// Printf sends format with each verb replaced by the next argument:
//
//	%d %i  signed decimal           Int
//	%u     unsigned decimal         Uint
//	%x     8 hex digits             Uint
//	%p     0x and 16 hex digits     Ptr
//	%c     one character            Char
//	%s     string, nil is (null)    Str, StrPtr
//	%b     2 hex digits             Byte
//	%%     a literal %
//
// Any other character after % is sent as is, together with the %, and
// takes no argument; so does a % that ends the format. There are no
// width or precision modifiers.
//
// An argument of the wrong kind, or a missing one, stops output at that
// verb and returns an error. Arguments left over at the end are reported
// with ErrExtraArgs after all output has been sent.
func (u *UART) Printf(format string, args ...Arg) error {
	return interpret(u, format, args)
}

// Sprintf is Printf into a string.
func Sprintf(format string, args ...Arg) (string, error) {
	var b sliceSink
	err := interpret(&b, format, args)
	return string(b), err
}

type sliceSink []byte

func (s *sliceSink) SendChar(c byte) { *s = append(*s, c) }

func interpret(out byteSink, format string, args []Arg) error {
	cur := cursor{args: args}
	var buf [20]byte
	emit := func(b []byte) {
		for _, c := range b {
			out.SendChar(c)
		}
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 == len(format) {
			out.SendChar(c)
			continue
		}
		pos := i
		i++
		verb := format[i]
		if verb == '%' {
			out.SendChar('%')
			continue
		}
		want, ok := verbKinds[verb]
		if !ok {
			out.SendChar('%')
			out.SendChar(verb)
			continue
		}
		a, err := cur.take(pos, verb, want)
		if err != nil {
			return err
		}

		switch verb {
		case 'd', 'i':
			v := int32(uint32(a.n))
			mag := uint32(v)
			if v < 0 {
				out.SendChar('-')
				mag = -mag
			}
			emit(AppendDec32(buf[:0], mag))
		case 'u':
			emit(AppendDec32(buf[:0], uint32(a.n)))
		case 'x':
			emit(AppendHex32(buf[:0], uint32(a.n)))
		case 'p':
			out.SendChar('0')
			out.SendChar('x')
			emit(AppendHex64(buf[:0], a.n))
		case 'c':
			out.SendChar(byte(a.n))
		case 's':
			if a.s == nil {
				emit([]byte("(null)"))
				break
			}
			for j := 0; j < len(*a.s); j++ {
				out.SendChar((*a.s)[j])
			}
		case 'b':
			emit(AppendHex8(buf[:0], uint8(a.n)))
		}
	}

	if n := len(args) - cur.next; n > 0 {
		return fmt.Errorf("%w: %d unused", ErrExtraArgs, n)
	}
	return nil
}
