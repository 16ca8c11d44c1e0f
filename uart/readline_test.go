package uart_test

import (
	"testing"

	"uartdiag/sim"
	"uartdiag/uart"
)

const (
	maxLengthMsg = "ERROR! Maximum length reached, terminating input.\n"
	timedOutMsg  = "ERROR! Input timed out, terminating input.\n"
)

func TestReadLine(t *testing.T) {
	u, _, f := newMachine(t, "hello world#rest")
	if got := u.ReadLine('#'); got != "hello world" {
		t.Fatalf("ReadLine = %q, want %q", got, "hello world")
	}
	if got := u.ReadLine('t'); got != "res" {
		t.Fatalf("second ReadLine = %q, want %q", got, "res")
	}
	if len(f.script) != 0 {
		t.Fatalf("script not consumed: %q", f.script)
	}
}

func TestReadLineLongerThanFIFO(t *testing.T) {
	long := "0123456789abcdefghijklmnopqrstuvwxyz0123456789"
	u, dev, _ := newMachine(t, long+"\n")
	if got := u.ReadLine('\n'); got != long {
		t.Fatalf("ReadLine = %q, want %q", got, long)
	}
	if dev.Overruns() != 0 {
		t.Fatalf("%d overruns with autoflow enabled", dev.Overruns())
	}
}

func TestReadLineBoundedLengthCap(t *testing.T) {
	u, dev, _ := newMachine(t, "abcdef")
	got, st := u.ReadLineBounded('#', 3, 1000)
	if got != "abc" || st != uart.LineTruncated {
		t.Fatalf("ReadLineBounded = %q, %v; want \"abc\", truncated", got, st)
	}
	if out := string(dev.Drain()); out != maxLengthMsg {
		t.Fatalf("emitted %q, want %q", out, maxLengthMsg)
	}
}

func TestReadLineBoundedTimeout(t *testing.T) {
	u, dev, f := newMachine(t, "")
	got, st := u.ReadLineBounded('#', 10, 50)
	if got != "" || st != uart.LineTimedOut {
		t.Fatalf("ReadLineBounded = %q, %v; want \"\", timed out", got, st)
	}
	if out := string(dev.Drain()); out != timedOutMsg {
		t.Fatalf("emitted %q, want %q", out, timedOutMsg)
	}
	// 50 empty polls; the last one ends the read without yielding.
	if f.yields != 49 {
		t.Fatalf("yielded %d times, want 49", f.yields)
	}
}

func TestReadLineBoundedTerminator(t *testing.T) {
	u, dev, _ := newMachine(t, "ab*cd")
	got, st := u.ReadLineBounded('*', 10, 1000)
	if got != "ab" || st != uart.LineComplete {
		t.Fatalf("ReadLineBounded = %q, %v; want \"ab\", complete", got, st)
	}
	if out := dev.Drain(); len(out) != 0 {
		t.Fatalf("unexpected output %q", out)
	}
}

// slowFeeder delivers one byte every few empty polls.
type slowFeeder struct {
	dev    *sim.UART
	script []byte
	every  int
	n      int
}

func (s *slowFeeder) yield() {
	s.n++
	if s.n%s.every != 0 || len(s.script) == 0 {
		return
	}
	s.script = s.script[s.dev.Inject(s.script[0]):]
}

func TestReadLineBoundedIdleResets(t *testing.T) {
	dev := sim.NewUART()
	s := &slowFeeder{dev: dev, script: []byte("slow*"), every: 4}
	u := uart.New(dev, uart.WithYield(s.yield))
	if err := u.Init(115000000, 115200); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// Each gap is 4 empty polls, under the limit of 5, but the total idle
	// time across the line is far above it.
	got, st := u.ReadLineBounded('*', 10, 5)
	if got != "slow" || st != uart.LineComplete {
		t.Fatalf("ReadLineBounded = %q, %v; want \"slow\", complete", got, st)
	}
}

func TestReadLineBoundedDegenerateLimits(t *testing.T) {
	u, dev, f := newMachine(t, "abc#")
	if got, st := u.ReadLineBounded('#', 0, 100); got != "" || st != uart.LineComplete {
		t.Fatalf("maxLen 0: %q, %v", got, st)
	}
	if got, st := u.ReadLineBounded('#', 10, 0); got != "" || st != uart.LineComplete {
		t.Fatalf("timeout 0: %q, %v", got, st)
	}
	if f.yields != 0 || len(dev.Drain()) != 0 {
		t.Fatal("degenerate limits should neither poll nor print")
	}
}

func TestLineStatusString(t *testing.T) {
	if uart.LineTimedOut.String() != "timed out" || uart.LineStatus(9).String() != "unknown" {
		t.Fatal("unexpected LineStatus names")
	}
}
