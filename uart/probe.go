package uart

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Probe answers a single readiness question about the link by reading
// status registers. It is re-evaluated on every poll and never cached.
type Probe interface {
	Ready(r Registers) bool
}

// ProbeFunc adapts a plain function to Probe.
type ProbeFunc func(r Registers) bool

func (f ProbeFunc) Ready(r Registers) bool { return f(r) }

// Platform selects how transmit and receive readiness are detected.
type Platform struct {
	Name string
	TX   Probe
	RX   Probe
}

// agilexTxBurst is the free transmit space required before sending.
const agilexTxBurst = 8

var (
	// Standard is a 16550-compatible line status register.
	Standard = Platform{
		Name: "standard",
		TX:   ProbeFunc(transmitHoldingEmpty),
		RX:   ProbeFunc(dataReady),
	}

	// Agilex has a burst transmit FIFO that reports its free space and
	// no usable data-ready bit. Its receive probe treats a non-zero
	// holding register as "data available". That is a heuristic: a NUL
	// byte is never seen, and on hardware where reading RBR pops the FIFO
	// the probe itself consumes the byte.
	Agilex = Platform{
		Name: "agilex",
		TX:   ProbeFunc(transmitSpaceAvailable),
		RX:   ProbeFunc(holdingNonZero),
	}
)

var platforms = map[string]Platform{
	Standard.Name: Standard,
	Agilex.Name:   Agilex,
}

var ErrUnknownPlatform = errors.New("uart: unknown platform")

// PlatformByName returns the named platform variant.
func PlatformByName(name string) (Platform, error) {
	p, ok := platforms[strings.ToLower(name)]
	if !ok {
		return Platform{}, fmt.Errorf("%w %q (have %s)", ErrUnknownPlatform, name, strings.Join(PlatformNames(), ", "))
	}
	return p, nil
}

// PlatformNames lists the known variants in sorted order.
func PlatformNames() []string {
	names := make([]string, 0, len(platforms))
	for n := range platforms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func transmitHoldingEmpty(r Registers) bool {
	return r.Read8(RegLSR)&LSRTHRE != 0
}

func dataReady(r Registers) bool {
	return r.Read8(RegLSR)&LSRDataReady != 0
}

func transmitSpaceAvailable(r Registers) bool {
	n := uint16(r.Read8(RegTxSpaceHi)) << 8
	n += uint16(r.Read8(RegTxSpaceLo))
	return n >= agilexTxBurst
}

func holdingNonZero(r Registers) bool {
	return r.Read8(RegRBR) != 0
}
