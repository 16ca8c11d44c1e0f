package link_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"uartdiag/link"
	"uartdiag/sim"
	"uartdiag/uart"
)

type pipe struct {
	io.Reader
	io.Writer
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestPumpDeliversBothWays(t *testing.T) {
	dev := sim.NewUART()
	dev.Write8(uart.RegFCR, uart.FCREnable)

	var out bytes.Buffer
	if err := link.Pump(context.Background(), pipe{strings.NewReader("abc"), &out}, dev); err != nil {
		t.Fatalf("Pump: %v", err)
	}
	if dev.Pending() != 3 {
		t.Fatalf("%d bytes received, want 3", dev.Pending())
	}

	// Output keeps flowing after the input side hits EOF.
	dev.Write8(uart.RegTHR, 'z')
	if out.String() != "z" {
		t.Fatalf("link got %q, want \"z\"", out.String())
	}
}

func TestPumpRetriesUnderAutoflow(t *testing.T) {
	dev := sim.NewUART()
	dev.Write8(uart.RegFCR, uart.FCREnable)
	dev.Write8(uart.RegMCR, uart.MCRAutoflow)

	want := strings.Repeat("0123456789", 4)
	done := make(chan error, 1)
	go func() {
		done <- link.Pump(context.Background(), pipe{strings.NewReader(want), io.Discard}, dev)
	}()

	var got []byte
	deadline := time.Now().Add(5 * time.Second)
	for len(got) < len(want) {
		if time.Now().After(deadline) {
			t.Fatalf("timed out with %q", got)
		}
		if dev.Read8(uart.RegLSR)&uart.LSRDataReady == 0 {
			time.Sleep(100 * time.Microsecond)
			continue
		}
		got = append(got, dev.Read8(uart.RegRBR))
	}
	if string(got) != want {
		t.Fatalf("received %q, want %q", got, want)
	}
	if err := <-done; err != nil {
		t.Fatalf("Pump: %v", err)
	}
	if dev.Overruns() != 0 {
		t.Fatalf("%d overruns", dev.Overruns())
	}
}

func TestPumpStopsOnCancel(t *testing.T) {
	dev := sim.NewUART()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := link.Pump(ctx, pipe{strings.NewReader("x"), io.Discard}, dev)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if dev.Pending() != 0 {
		t.Fatal("read after cancellation")
	}
}

func TestPumpGivesUpOnFullReceiver(t *testing.T) {
	dev := sim.NewUART()
	dev.Write8(uart.RegFCR, uart.FCREnable)
	dev.Write8(uart.RegMCR, uart.MCRAutoflow)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := link.Pump(ctx, pipe{strings.NewReader(strings.Repeat("x", 20)), io.Discard}, dev)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want DeadlineExceeded", err)
	}
	if dev.Pending() != 16 {
		t.Fatalf("%d bytes pending, want a full FIFO", dev.Pending())
	}
}

func TestPumpReadError(t *testing.T) {
	boom := errors.New("boom")
	err := link.Pump(context.Background(), pipe{failingReader{boom}, io.Discard}, sim.NewUART())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := link.Open(link.Config{PortName: "/dev/null", BaudRate: 115200, Driver: "usb"})
	if !errors.Is(err, link.ErrUnknownDriver) {
		t.Fatalf("err = %v, want ErrUnknownDriver", err)
	}
}
