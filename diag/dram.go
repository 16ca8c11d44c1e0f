package diag

import "uartdiag/uart"

// DRAMTiming is written to the memory controller before any test.
type DRAMTiming struct {
	LatencyAccess     uint64
	ReadWriteRecovery uint64
	RxClkDelay        uint64
	AddressMaskMSB    uint64
}

// Controller register offsets from DRAMConfig.CtrlBase.
const (
	ctrlLatencyAccess     = 0x00
	ctrlReadWriteRecovery = 0x18
	ctrlRxClkDelay        = 0x20
	ctrlAddressMaskMSB    = 0x30
)

type DRAMConfig struct {
	Base     uint64
	Words    int
	CtrlBase uint64
	Timing   DRAMTiming
}

var DefaultDRAM = DRAMConfig{
	Base:     0xa0000000,
	Words:    32,
	CtrlBase: 0xe0000000,
	Timing: DRAMTiming{
		LatencyAccess:     7,
		ReadWriteRecovery: 7,
		RxClkDelay:        3,
		AddressMaskMSB:    22,
	},
}

var dramPatterns = []uint64{
	0xb6acad2abb260109,
	0x11752c63ab69c863,
	0x1234567890abcdef,
	0xfedcba0987654321,
	0x1122334455667788,
	0x99aabbccddeeff00,
	0x0011223344556677,
	0x8899aabbccddeeff,
	0xdeadbeefdeadbeef,
	0xfeedfacefeedface,
	0xaaaaaaaaaaaaaaaa,
	0x5555555555555555,
	0x0000000000000000,
	0xffffffffffffffff,
	0x0123456789abcdef,
	0xfedcba9876543210,
}

var walkingPatterns = []uint64{
	0x0000000000000001, 0x0000000000000002, 0x0000000000000004, 0x0000000000000008,
	0x0000000000000010, 0x0000000000000020, 0x0000000000000040, 0x0000000000000080,
	0xfffffffffffffffe, 0xfffffffffffffffd, 0xfffffffffffffffb, 0xfffffffffffffff7,
	0xffffffffffffffef, 0xffffffffffffffdf, 0xffffffffffffffbf, 0xffffffffffffff7f,
}

const stressIterations = 5

type dramTest struct {
	u   *uart.UART
	mem Memory
	cfg DRAMConfig
}

func (t *dramTest) addr(i int) uint64 { return t.cfg.Base + uint64(i)*8 }

func (t *dramTest) load(i int) uint64 {
	v, _ := t.mem.Read64(t.addr(i))
	return v
}

func (t *dramTest) store(i int, v uint64) { t.mem.Write64(t.addr(i), v) }

func pattern(i int) uint64 { return dramPatterns[i%len(dramPatterns)] }

// DRAM programs the controller timing, then runs write/read, address
// line, data line, stress and clear passes over cfg.Words 64-bit words.
// Every mismatching word in any pass is one error.
func DRAM(u *uart.UART, mem Memory, cfg DRAMConfig) Report {
	t := &dramTest{u: u, mem: mem, cfg: cfg}
	rep := Report{Name: "dram"}

	t.initController(&rep)
	banner(u, "DRAM Function Test Suite")
	u.Print("Base Address: 0x")
	u.PrintHex64(cfg.Base)
	u.Print("\nTest Size: ")
	u.PrintDec32(uint32(cfg.Words))
	u.Print(" x 64-bit words\nTotal Memory: 0x")
	u.PrintHex64(uint64(cfg.Words) * 8)
	u.Print(" bytes\n\n")

	t.write()
	rep.Errors += t.read()
	rep.Errors += t.addressLines()
	rep.Errors += t.dataLines()
	rep.Errors += t.stress()
	rep.Errors += t.clear()

	u.Print(rule)
	u.Print("            Test Summary\n")
	u.Print(rule)
	if rep.Passed() {
		u.Print("✓ All DRAM tests PASSED!\n")
	} else {
		errs := rep.Errors
		printf(&rep, u, "✗ DRAM tests FAILED with %u errors\n", uart.Uint(uint32(errs)))
	}
	u.Print("DRAM testing completed.\n")
	u.Print(rule + "\n")
	return rep
}

func (t *dramTest) initController(rep *Report) {
	t.u.Print("DRAM initializing ...\n")
	regs := []struct {
		name string
		off  uint64
		v    uint64
	}{
		{"t_latency_access", ctrlLatencyAccess, t.cfg.Timing.LatencyAccess},
		{"t_read_write_recovery", ctrlReadWriteRecovery, t.cfg.Timing.ReadWriteRecovery},
		{"t_rx_clk_delay", ctrlRxClkDelay, t.cfg.Timing.RxClkDelay},
		{"address_mask_msb", ctrlAddressMaskMSB, t.cfg.Timing.AddressMaskMSB},
	}
	for _, r := range regs {
		t.mem.Write64(t.cfg.CtrlBase+r.off, r.v)
	}
	for _, r := range regs {
		v, _ := t.mem.Read64(t.cfg.CtrlBase + r.off)
		printf(rep, t.u, "%s: %u\n", uart.Str(r.name), uart.Uint(uint32(v)))
	}
	t.u.Print("\n")
}

func (t *dramTest) write() {
	u := t.u
	u.Print("=== DRAM Write Test ===\n")
	u.Print("Writing test patterns to DRAM at base address: 0x")
	u.PrintHex64(t.cfg.Base)
	u.Print("\n")
	for i := 0; i < t.cfg.Words; i++ {
		t.store(i, pattern(i))
		u.Print("Write[")
		u.PrintByte(uint8(i))
		u.Print("]: 0x")
		u.PrintHex64(pattern(i))
		u.Print(" -> 0x")
		u.PrintHex64(t.addr(i))
		u.Print("\n")
		if (i+1)%8 == 0 {
			u.Print("---\n")
		}
	}
	u.Print("Write test completed!\n\n")
}

func (t *dramTest) read() int {
	u := t.u
	u.Print("=== DRAM Read Test ===\n")
	u.Print("Reading back data from DRAM...\n")
	errs := 0
	for i := 0; i < t.cfg.Words; i++ {
		want, got := pattern(i), t.load(i)
		u.Print("Read[")
		u.PrintByte(uint8(i))
		u.Print("]: 0x")
		u.PrintHex64(got)
		if got == want {
			u.Print(" ✓\n")
		} else {
			u.Print(" ✗ (Expected: 0x")
			u.PrintHex64(want)
			u.Print(")\n")
			errs++
		}
		if (i+1)%8 == 0 {
			u.Print("---\n")
		}
	}
	u.Print("Read test completed. Errors: ")
	u.PrintDec32(uint32(errs))
	u.Print("\n\n")
	return errs
}

// addressLines stores each power-of-two word offset's own address there,
// so a stuck or shorted address line shows up as an aliased word.
func (t *dramTest) addressLines() int {
	u := t.u
	u.Print("=== DRAM Address Lines Test ===\n")
	u.Print("Testing address lines by writing address values...\n")
	for i := 0; i < 16; i++ {
		off := 1 << i
		if off >= t.cfg.Words {
			break
		}
		v := t.addr(off)
		t.store(off, v)
		u.Print("Addr test offset ")
		u.PrintByte(uint8(i))
		u.Print(": 0x")
		u.PrintHex64(v)
		u.Print(" -> offset 0x")
		u.PrintHex64(uint64(off))
		u.Print("\n")
	}

	u.Print("Verifying address lines...\n")
	errs := 0
	for i := 0; i < 16; i++ {
		off := 1 << i
		if off >= t.cfg.Words {
			break
		}
		got := t.load(off)
		u.Print("Verify offset ")
		u.PrintByte(uint8(i))
		u.Print(": 0x")
		u.PrintHex64(got)
		mark(u, got == t.addr(off))
		if got != t.addr(off) {
			errs++
		}
	}
	u.Print("Address lines test completed. Errors: ")
	u.PrintDec32(uint32(errs))
	u.Print("\n\n")
	return errs
}

func (t *dramTest) dataLines() int {
	u := t.u
	u.Print("=== DRAM Data Lines Test ===\n")
	u.Print("Testing data lines with walking patterns...\n")
	errs := 0
	for i, p := range walkingPatterns {
		if i >= t.cfg.Words {
			break
		}
		t.store(i, p)
		got := t.load(i)
		u.Print("Data[")
		u.PrintByte(uint8(i))
		u.Print("]: 0x")
		u.PrintHex64(got)
		if got == p {
			u.Print(" ✓\n")
		} else {
			u.Print(" ✗ (Expected: 0x")
			u.PrintHex64(p)
			u.Print(")\n")
			errs++
		}
	}
	u.Print("Data lines test completed. Errors: ")
	u.PrintDec32(uint32(errs))
	u.Print("\n\n")
	return errs
}

func (t *dramTest) stress() int {
	u := t.u
	u.Print("=== DRAM Stress Test ===\n")
	u.Print("Performing stress test with multiple iterations...\n")
	errs := 0
	for it := 0; it < stressIterations; it++ {
		u.Print("Stress iteration ")
		u.PrintByte(uint8(it))
		u.Print(":\n")
		salt := uint64(it) << 8
		for i := 0; i < t.cfg.Words; i++ {
			t.store(i, pattern(i)^salt)
		}
		for i := 0; i < t.cfg.Words; i++ {
			want, got := pattern(i)^salt, t.load(i)
			if got == want {
				continue
			}
			u.Print("  Error at position ")
			u.PrintByte(uint8(i))
			u.Print(": got 0x")
			u.PrintHex64(got)
			u.Print(", expected 0x")
			u.PrintHex64(want)
			u.Print("\n")
			errs++
		}
		u.Print("  Iteration ")
		u.PrintByte(uint8(it))
		u.Print(" completed\n")
	}
	u.Print("Stress test completed. Total errors: ")
	u.PrintDec32(uint32(errs))
	u.Print("\n\n")
	return errs
}

func (t *dramTest) clear() int {
	u := t.u
	u.Print("=== DRAM Clear Test ===\n")
	u.Print("Clearing DRAM region...\n")
	for i := 0; i < t.cfg.Words; i++ {
		t.store(i, 0)
	}
	errs := 0
	for i := 0; i < t.cfg.Words; i++ {
		got := t.load(i)
		if got == 0 {
			continue
		}
		u.Print("Clear error at position ")
		u.PrintByte(uint8(i))
		u.Print(": 0x")
		u.PrintHex64(got)
		u.Print("\n")
		errs++
	}
	if errs == 0 {
		u.Print("DRAM cleared successfully!\n")
	} else {
		u.Print("Clear test failed with ")
		u.PrintDec32(uint32(errs))
		u.Print(" errors\n")
	}
	u.Print("\n")
	return errs
}
