package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"runtime"
	"strings"

	"uartdiag/diag"
	"uartdiag/link"
	"uartdiag/sim"
	"uartdiag/uart"
)

type options struct {
	backend  string
	link     link.Config
	freq     uint
	platform string
	devmem   string
	base     uint64
	suites   string
	timeout  uint
	trace    bool
}

func main() {
	var o options
	flag.StringVar(&o.backend, "backend", "sim", "Register backend: sim, term, serial or devmem")
	flag.StringVar(&o.link.PortName, "tty", "/dev/ttyUSB0", "Serial device for -backend serial")
	flag.StringVar(&o.link.Driver, "serial-driver", link.DriverJacobsa, "Serial library: jacobsa or tarm")
	flag.UintVar(&o.link.BaudRate, "baud", 115200, "Baud rate")
	flag.DurationVar(&o.link.ReadTimeout, "read-timeout", 0, "Host serial read timeout (0 blocks)")
	flag.UintVar(&o.freq, "freq", 115000000, "UART input clock in Hz")
	flag.StringVar(&o.platform, "platform", uart.Standard.Name, "Ready probes: "+strings.Join(uart.PlatformNames(), ", "))
	flag.StringVar(&o.devmem, "devmem", "/dev/mem", "Memory device for -backend devmem")
	flag.Uint64Var(&o.base, "base", sim.UARTBase, "Physical UART base for -backend devmem")
	flag.StringVar(&o.suites, "suite", "uart,printf,dram", "Comma-separated suites: uart, input, printf, dram, dco")
	flag.UintVar(&o.timeout, "timeout", uint(diag.DefaultInput.Timeout), "Idle polls before the bounded line read gives up")
	flag.BoolVar(&o.trace, "trace", false, "Log every UART register access (simulated backends)")

	flag.Parse()
	log.SetFlags(0)

	os.Exit(run(o))
}

// checkOptions rejects flag values before anything is opened.
func checkOptions(o options) (uart.Platform, error) {
	plat, err := uart.PlatformByName(o.platform)
	if err != nil {
		return uart.Platform{}, err
	}
	if o.link.BaudRate == 0 {
		return uart.Platform{}, uart.ErrZeroBaud
	}
	if uint64(o.link.BaudRate) > math.MaxUint32 {
		return uart.Platform{}, fmt.Errorf("baud rate %d does not fit 32 bits", o.link.BaudRate)
	}
	if uint64(o.freq) > math.MaxUint32 {
		return uart.Platform{}, fmt.Errorf("clock %d Hz does not fit 32 bits", o.freq)
	}
	if uint64(o.timeout) > math.MaxUint32 {
		return uart.Platform{}, fmt.Errorf("timeout %d does not fit 32 bits", o.timeout)
	}
	return plat, nil
}

func run(o options) int {
	plat, err := checkOptions(o)
	if err != nil {
		log.Print(err)
		return 2
	}

	// Build the machine
	var (
		regs uart.Registers
		mem  diag.Memory
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch o.backend {
	case "sim", "term", "serial":
		dev := sim.NewUART()
		if o.trace {
			dev.Trace = log.New(os.Stderr, "", log.Lmicroseconds)
		}
		// The agilex receive probe reads RBR itself.
		dev.SetPeekRBR(plat.Name == uart.Agilex.Name)
		bus := sim.NewSoC(dev)
		regs, mem = bus.UARTRegisters(), bus

		rw, closeLink, err := openLink(o.backend, o.link)
		if err != nil {
			log.Print(err)
			return 1
		}
		defer closeLink()
		go func() {
			if err := link.Pump(ctx, rw, dev); err != nil && ctx.Err() == nil {
				log.Printf("link: %v", err)
			}
		}()

	case "devmem":
		dm, err := uart.OpenDevMem(o.devmem, uintptr(o.base))
		if err != nil {
			log.Print(err)
			return 1
		}
		defer dm.Close()
		regs = dm

	default:
		fmt.Fprintln(os.Stderr, "Unknown backend. Use -backend sim, term, serial or devmem.")
		return 2
	}

	u := uart.New(regs, uart.WithPlatform(plat), uart.WithYield(runtime.Gosched))
	u.Print("Initializing UART...\n")
	if err := u.Init(uint32(o.freq), uint32(o.link.BaudRate)); err != nil {
		log.Print(err)
		return 1
	}

	// Run
	failed := false
	for _, name := range strings.Split(o.suites, ",") {
		rep, err := runSuite(strings.TrimSpace(name), u, mem, uint32(o.timeout))
		if err != nil {
			log.Print(err)
			failed = true
			continue
		}
		log.Print(rep)
		failed = failed || !rep.Passed()
	}

	rule := "========================================\n"
	u.Print("\n" + rule + "      All UART Tests Completed!\n" + rule + "\n\n")
	if failed {
		return 1
	}
	return 0
}

func openLink(backend string, cfg link.Config) (io.ReadWriter, func() error, error) {
	switch backend {
	case "term":
		return link.Terminal()
	case "serial":
		p, err := link.Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	}
	return stdio{}, func() error { return nil }, nil
}

type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func runSuite(name string, u *uart.UART, mem diag.Memory, timeout uint32) (diag.Report, error) {
	switch name {
	case "input":
		cfg := diag.DefaultInput
		cfg.Timeout = timeout
		return diag.Input(u, cfg), nil
	case "printf":
		return diag.Printf(u), nil
	case "uart", "dram", "dco":
		if mem == nil {
			return diag.Report{}, fmt.Errorf("suite %s needs the simulated memory map", name)
		}
	default:
		return diag.Report{}, fmt.Errorf("unknown suite %q", name)
	}

	switch name {
	case "uart":
		return diag.Output(u, mem), nil
	case "dram":
		return diag.DRAM(u, mem, diag.DefaultDRAM), nil
	}
	rep := diag.Report{Name: "dco"}
	if err := diag.WriteDCO(mem, diag.DCOBase, diag.DefaultDCO); err != nil {
		log.Print(err)
		rep.Errors++
	}
	return rep, nil
}
