package diag

import "fmt"

// DCOBase is where the digitally controlled oscillator's select
// registers live, one 32-bit word each.
const DCOBase = 0x20000000

// DCOSettings are the oscillator selects: coarse and fine code,
// output divider and frequency band.
type DCOSettings struct {
	CoarseCode uint32 // CC_SEL[5:0]
	FineCode   uint32 // FC_SEL[5:0]
	Divider    uint32 // DIV_SEL[2:0]
	FreqBand   uint32 // FREQ_SEL[1:0]
}

var DefaultDCO = DCOSettings{
	CoarseCode: 0b1010,
	FineCode:   0b1111,
	Divider:    0b101,
	FreqBand:   0b10,
}

// WriteDCO stores s into the oscillator registers at base, masking each
// field to its width.
func WriteDCO(mem Memory, base uint64, s DCOSettings) error {
	regs := []uint32{
		s.CoarseCode & 0x3F,
		s.FineCode & 0x3F,
		s.Divider & 0x7,
		s.FreqBand & 0x3,
	}
	for i, v := range regs {
		addr := base + uint64(4*i)
		if !mem.Write32(addr, v) {
			return fmt.Errorf("diag: DCO register @0x%x not mapped", addr)
		}
	}
	return nil
}
