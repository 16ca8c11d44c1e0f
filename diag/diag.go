// Package diag holds the bring-up diagnostics that run over the UART:
// output formatting, interactive input, printf, and DRAM pattern tests.
// Each suite narrates on the link and returns a Report.
package diag

import (
	"fmt"

	"uartdiag/uart"
)

// Memory is the physical address space the memory tests poke at. The
// boolean results are false for addresses nothing answers at.
type Memory interface {
	Read64(addr uint64) (uint64, bool)
	Write64(addr uint64, v uint64) bool
	Write32(addr uint64, v uint32) bool
}

type Report struct {
	Name   string
	Errors int
}

func (r Report) Passed() bool { return r.Errors == 0 }

func (r Report) String() string {
	if r.Passed() {
		return fmt.Sprintf("%s: PASS", r.Name)
	}
	return fmt.Sprintf("%s: FAIL (%d errors)", r.Name, r.Errors)
}

const rule = "========================================\n"

func banner(u *uart.UART, title string) {
	u.Print("\n")
	u.Print(rule)
	u.Print("      " + title + "\n")
	u.Print(rule)
}

func mark(u *uart.UART, ok bool) {
	if ok {
		u.Print(" ✓\n")
	} else {
		u.Print(" ✗\n")
	}
}

// printf is u.Printf for the suites: a format error is reported on the
// link and counted against rep.
func printf(rep *Report, u *uart.UART, format string, args ...uart.Arg) {
	if err := u.Printf(format, args...); err != nil {
		rep.Errors++
		u.Print("\nprintf error: " + err.Error() + "\n")
	}
}

// digit prints a small index as a single character, like the firmware.
func digit(u *uart.UART, i int) {
	u.SendChar(byte('0' + i))
}
