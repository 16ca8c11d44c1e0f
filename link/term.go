package link

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal returns the process's stdin/stdout as a link. When stdin is a
// terminal it is switched to raw mode so every key reaches the UART as it
// is typed; restore puts the terminal back.
func Terminal() (rw io.ReadWriter, restore func() error, err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return stdio{r: os.Stdin, w: os.Stdout}, func() error { return nil }, nil
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, err
	}
	rw = stdio{r: crToLF{os.Stdin}, w: lfToCRLF{os.Stdout}}
	return rw, func() error { return term.Restore(fd, old) }, nil
}

type stdio struct {
	r io.Reader
	w io.Writer
}

func (s stdio) Read(p []byte) (int, error)  { return s.r.Read(p) }
func (s stdio) Write(p []byte) (int, error) { return s.w.Write(p) }

// In raw mode Enter sends '\r'; the hex readers expect '\n'.
type crToLF struct{ r io.Reader }

func (c crToLF) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	for i := range p[:n] {
		if p[i] == '\r' {
			p[i] = '\n'
		}
	}
	return n, err
}

// Raw mode also turns off output post-processing.
type lfToCRLF struct{ w io.Writer }

func (l lfToCRLF) Write(p []byte) (int, error) {
	if bytes.IndexByte(p, '\n') < 0 {
		return l.w.Write(p)
	}
	out := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	if _, err := l.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
