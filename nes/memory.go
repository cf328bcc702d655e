package nes

// Memory is the 64 KiB CPU-visible address space. The bus decides which
// ranges are backed by this array: work RAM at the bottom (mirrored every
// 2 KiB), PRG-RAM at $6000-$7FFF, and the program ROM image at $8000-$FFFF.
type Memory struct {
	data [0x10000]byte
}

// NewMemory creates the CPU memory.
func NewMemory() *Memory {
	return &Memory{}
}

// read reads data.
func (m *Memory) read(address uint16) byte {
	return m.data[address]
}

// write writes data.
func (m *Memory) write(address uint16, x byte) {
	m.data[address] = x
}

// loadPRG copies the program image into $8000-$FFFF. A cartridge with a
// single 16 KiB page is mirrored into both halves so the interrupt vectors
// at $FFFA-$FFFF resolve.
func (m *Memory) loadPRG(prg []byte) {
	copy(m.data[0x8000:0xC000], prg[:0x4000])
	if len(prg) >= 0x8000 {
		copy(m.data[0xC000:], prg[0x4000:0x8000])
	} else {
		copy(m.data[0xC000:], prg[:0x4000])
	}
}
