package main

import (
	"errors"
	"testing"

	"uartdiag/link"
	"uartdiag/uart"
)

func validOptions() options {
	return options{
		backend:  "sim",
		link:     link.Config{BaudRate: 115200},
		freq:     115000000,
		platform: "standard",
		timeout:  1000,
	}
}

func TestCheckOptions(t *testing.T) {
	plat, err := checkOptions(validOptions())
	if err != nil || plat.Name != uart.Standard.Name {
		t.Fatalf("checkOptions = %v, %v", plat.Name, err)
	}

	o := validOptions()
	o.platform = "pl011"
	if _, err := checkOptions(o); !errors.Is(err, uart.ErrUnknownPlatform) {
		t.Fatalf("err = %v, want ErrUnknownPlatform", err)
	}

	o = validOptions()
	o.link.BaudRate = 0
	if _, err := checkOptions(o); !errors.Is(err, uart.ErrZeroBaud) {
		t.Fatalf("err = %v, want ErrZeroBaud", err)
	}
}

func TestCheckOptionsRejectsWideValues(t *testing.T) {
	if ^uint(0) == uint(^uint32(0)) {
		t.Skip("uint is 32 bits wide")
	}
	shift := 32
	wide := uint(1)<<shift | 115200

	o := validOptions()
	o.link.BaudRate = wide
	if _, err := checkOptions(o); err == nil {
		t.Fatal("baud rate above 32 bits accepted")
	}

	o = validOptions()
	o.freq = wide
	if _, err := checkOptions(o); err == nil {
		t.Fatal("clock above 32 bits accepted")
	}

	o = validOptions()
	o.timeout = wide
	if _, err := checkOptions(o); err == nil {
		t.Fatal("timeout above 32 bits accepted")
	}
}

func TestRunRefusesBadFlags(t *testing.T) {
	o := validOptions()
	o.link.BaudRate = 0
	if code := run(o); code != 2 {
		t.Fatalf("run = %d, want 2", code)
	}
}
