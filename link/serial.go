// Package link connects the simulated UART to the outside world: a serial
// port on the host, or the terminal the program runs in.
package link

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	jserial "github.com/jacobsa/go-serial/serial"
	tserial "github.com/tarm/serial"
)

// Serial drivers understood by Open.
const (
	DriverJacobsa = "jacobsa"
	DriverTarm    = "tarm"
)

var ErrUnknownDriver = errors.New("link: unknown serial driver")

// Config describes a host serial port. The line is always 8-N-1 to match
// what the driver programs into the UART.
type Config struct {
	PortName    string
	BaudRate    uint
	Driver      string
	ReadTimeout time.Duration
}

// Open opens the port described by cfg. An empty Driver means jacobsa.
// With a ReadTimeout an idle interval reads as (0, nil) rather than EOF,
// so readers such as Pump keep waiting for the next byte.
func Open(cfg Config) (io.ReadWriteCloser, error) {
	p, err := open(cfg)
	if err != nil || cfg.ReadTimeout <= 0 {
		return p, err
	}
	return idleTimeout{p}, nil
}

func open(cfg Config) (io.ReadWriteCloser, error) {
	switch cfg.Driver {
	case "", DriverJacobsa:
		oo := jserial.OpenOptions{
			PortName:              cfg.PortName,
			BaudRate:              cfg.BaudRate,
			DataBits:              8,
			StopBits:              1,
			ParityMode:            jserial.PARITY_NONE,
			RTSCTSFlowControl:     false,
			MinimumReadSize:       1,
			InterCharacterTimeout: uint(cfg.ReadTimeout / time.Millisecond),
		}
		log.Printf("Opening serial port with options %+v", oo)
		p, err := jserial.Open(oo)
		if err != nil {
			return nil, fmt.Errorf("link: open %s: %w", cfg.PortName, err)
		}
		return p, nil

	case DriverTarm:
		c := &tserial.Config{
			Name:        cfg.PortName,
			Baud:        int(cfg.BaudRate),
			ReadTimeout: cfg.ReadTimeout,
			Size:        8,
			Parity:      tserial.ParityNone,
			StopBits:    tserial.Stop1,
		}
		log.Printf("Opening serial port with options %+v", *c)
		p, err := tserial.OpenPort(c)
		if err != nil {
			return nil, fmt.Errorf("link: open %s: %w", cfg.PortName, err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownDriver, cfg.Driver)
}

// idleTimeout hides the EOF a port in timed read mode reports when
// nothing arrived within the timeout.
type idleTimeout struct {
	io.ReadWriteCloser
}

func (p idleTimeout) Read(b []byte) (int, error) {
	n, err := p.ReadWriteCloser.Read(b)
	if n == 0 && errors.Is(err, io.EOF) {
		return 0, nil
	}
	return n, err
}
