package nes

import (
	"bytes"
	"testing"
)

func TestNewCartridgeRejectsBadImages(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short file", []byte{'N', 'E', 'S'}},
		{"bad magic", append([]byte{'N', 'E', 'Z', msdosEOF}, make([]byte, 12+prgPageSize)...)},
		{"zero PRG pages", func() []byte {
			d := make([]byte, inesHeaderSize)
			copy(d, []byte{'N', 'E', 'S', msdosEOF})
			return d
		}()},
		{"truncated PRG", func() []byte {
			d := make([]byte, inesHeaderSize+100)
			copy(d, []byte{'N', 'E', 'S', msdosEOF})
			d[4] = 1
			return d
		}()},
		{"truncated trainer", func() []byte {
			d := make([]byte, inesHeaderSize+100)
			copy(d, []byte{'N', 'E', 'S', msdosEOF})
			d[4] = 1
			d[6] = 0x04
			return d
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCartridge(tt.data); err == nil {
				t.Error("want an error, got nil")
			}
		})
	}
}

func TestNewCartridgeParsesFields(t *testing.T) {
	chr := make([]byte, 16)
	chr[0] = 0x11
	cartridge, err := NewCartridge(testROM(nil, chr, 0x01))
	if err != nil {
		t.Fatalf("NewCartridge failed: %v", err)
	}
	if cartridge.Mirror() != MirrorVertical {
		t.Errorf("mirror: got=%d, want vertical", cartridge.Mirror())
	}
	if cartridge.Mapper() != 0 {
		t.Errorf("mapper: got=%d, want=0", cartridge.Mapper())
	}
	if cartridge.chrRAM {
		t.Error("a cartridge with CHR pages should not report CHR-RAM")
	}
	if cartridge.chrROM[0] != 0x11 {
		t.Errorf("chr[0]: got=0x%02x, want=0x11", cartridge.chrROM[0])
	}
}

func TestNewCartridgeCHRRAM(t *testing.T) {
	cartridge, err := NewCartridge(testROM(nil, nil, 0))
	if err != nil {
		t.Fatalf("NewCartridge failed: %v", err)
	}
	if !cartridge.chrRAM {
		t.Error("zero CHR pages should yield CHR-RAM")
	}
	if len(cartridge.chrROM) != chrPageSize {
		t.Errorf("chr size: got=%d, want=%d", len(cartridge.chrROM), chrPageSize)
	}
	if !bytes.Equal(cartridge.chrROM, make([]byte, chrPageSize)) {
		t.Error("CHR-RAM should start zeroed")
	}
}

func TestNewCartridgeTrainerOffsetsPRG(t *testing.T) {
	prg := make([]byte, prgPageSize)
	prg[0] = 0xAA
	data := make([]byte, inesHeaderSize)
	copy(data, []byte{'N', 'E', 'S', msdosEOF})
	data[4] = 1
	data[6] = 0x04
	data = append(data, make([]byte, trainerSize)...)
	data = append(data, prg...)
	cartridge, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("NewCartridge failed: %v", err)
	}
	if cartridge.prgROM[0] != 0xAA {
		t.Errorf("prg[0]: got=0x%02x, want=0xAA", cartridge.prgROM[0])
	}
	if len(cartridge.trainer) != trainerSize {
		t.Errorf("trainer: got=%d bytes, want=%d", len(cartridge.trainer), trainerSize)
	}
}

func TestNewCartridgeNonZeroMapperLoads(t *testing.T) {
	data := testROM(nil, nil, 0x40) // mapper low nibble 4
	cartridge, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("a non-zero mapper should load with a warning, got: %v", err)
	}
	if cartridge.Mapper() != 4 {
		t.Errorf("mapper: got=%d, want=4", cartridge.Mapper())
	}
}

func TestNewCartridgeTwoPRGPages(t *testing.T) {
	data := make([]byte, inesHeaderSize)
	copy(data, []byte{'N', 'E', 'S', msdosEOF})
	data[4] = 2
	prg := make([]byte, 2*prgPageSize)
	prg[0] = 0x01
	prg[prgPageSize] = 0x02
	data = append(data, prg...)
	cartridge, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("NewCartridge failed: %v", err)
	}
	mem := NewMemory()
	mem.loadPRG(cartridge.prgROM)
	if got := mem.read(0x8000); got != 0x01 {
		t.Errorf("mem[0x8000]: got=0x%02x, want=0x01", got)
	}
	if got := mem.read(0xC000); got != 0x02 {
		t.Errorf("mem[0xC000]: got=0x%02x, want=0x02", got)
	}
}
