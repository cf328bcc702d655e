package nes

import "github.com/golang/glog"

// CPUBus routes every CPU load and store to the component owning the
// address.
//
// CPU memory map
// 0x0000 - 0x07FF	WRAM
// 0x0800 - 0x1FFF	WRAM Mirror
// 0x2000 - 0x2007	PPU Registers
// 0x2008 - 0x3FFF	PPU Registers Mirror
// 0x4000 - 0x401F	APU and I/O Ports
// 0x4020 - 0x5FFF	Expansion area (unmapped here)
// 0x6000 - 0x7FFF	PRG-RAM
// 0x8000 - 0xFFFF	Program ROM
type CPUBus struct {
	mem         *Memory
	ppu         *PPU
	apu         *APU
	controllers [2]*Controller
}

// NewCPUBus creates a bus for the CPU.
func NewCPUBus(mem *Memory, ppu *PPU, apu *APU, controllers [2]*Controller) *CPUBus {
	return &CPUBus{mem: mem, ppu: ppu, apu: apu, controllers: controllers}
}

// readPPURegister dispatches a read of $2000-$3FFF by the register index in
// the low three bits. Write-only registers read back as open bus zero.
func (b *CPUBus) readPPURegister(address uint16) byte {
	switch address & 7 {
	case 2:
		return b.ppu.readPPUSTATUS()
	case 4:
		return b.ppu.readOAMDATA()
	case 7:
		return b.ppu.readPPUDATA()
	default:
		return 0
	}
}

// writePPURegister dispatches a write of $2000-$3FFF.
func (b *CPUBus) writePPURegister(address uint16, data byte) {
	switch address & 7 {
	case 0:
		b.ppu.writePPUCTRL(data)
	case 1:
		b.ppu.writePPUMASK(data)
	case 2:
		// PPUSTATUS is read-only.
	case 3:
		b.ppu.writeOAMADDR(data)
	case 4:
		b.ppu.writeOAMDATA(data)
	case 5:
		b.ppu.writePPUSCROLL(data)
	case 6:
		b.ppu.writePPUADDR(data)
	case 7:
		b.ppu.writePPUDATA(data)
	}
}

// transferOAM performs the $4014 DMA: 256 bus reads starting at page<<8,
// copied into the PPU OAM in one shot.
func (b *CPUBus) transferOAM(page byte) {
	var data [256]byte
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		data[i] = b.read(base + uint16(i))
	}
	b.ppu.writeOAMDMA(data)
}

// read reads a byte.
func (b *CPUBus) read(address uint16) byte {
	switch {
	case address < 0x2000:
		return b.mem.read(address & 0x07FF)
	case address < 0x4000:
		return b.readPPURegister(address)
	case address == 0x4015:
		return b.apu.readStatus()
	case address == 0x4016:
		return b.controllers[0].read()
	case address == 0x4017:
		return b.controllers[1].read()
	case address < 0x4020:
		// $4014 and the APU channel registers are write-only.
		return 0
	case address < 0x6000:
		glog.V(1).Infof("Unmapped CPU bus read: address=0x%04x", address)
		return 0
	default:
		return b.mem.read(address)
	}
}

// read16 reads 2 bytes.
func (b *CPUBus) read16(address uint16) uint16 {
	l := uint16(b.read(address))
	h := uint16(b.read(address+1)) << 8
	return h | l
}

// write writes a byte. Stores into $8000-$FFFF land on ROM and have no
// effect.
func (b *CPUBus) write(address uint16, data byte) {
	switch {
	case address < 0x2000:
		b.mem.write(address&0x07FF, data)
	case address < 0x4000:
		b.writePPURegister(address, data)
	case address == 0x4014:
		b.transferOAM(data)
	case address == 0x4016:
		// One strobe write latches both ports.
		b.controllers[0].write(data)
		b.controllers[1].write(data)
	case address < 0x4018:
		b.apu.writeRegister(address, data)
	case address < 0x4020:
		// $4018-$401F is normally disabled APU test space.
	case address < 0x6000:
		glog.V(1).Infof("Unmapped CPU bus write: address=0x%04x, data=0x%02x", address, data)
	case address < 0x8000:
		b.mem.write(address, data)
	default:
		glog.V(1).Infof("PRG ROM write ignored: address=0x%04x, data=0x%02x", address, data)
	}
}
