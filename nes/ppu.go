package nes

import (
	"image"
	"image/color"
)

// NES PPU generates 256x240 pixels.
const (
	width  = 256
	height = 240
)

// paletteRAM is the PPU-internal 32 byte palette memory. Entries $10, $14,
// $18 and $1C are mirrors of $00, $04, $08 and $0C on both read and write.
type paletteRAM struct {
	ram [32]byte
}

func (r *paletteRAM) index(address uint16) uint16 {
	i := address & 0x1F
	if i&0x13 == 0x10 {
		i &^= 0x10
	}
	return i
}

func (r *paletteRAM) read(address uint16) byte {
	return r.ram[r.index(address)]
}

func (r *paletteRAM) write(address uint16, data byte) {
	r.ram[r.index(address)] = data
}

// PPU stands for Picture Processing Unit, renders a 256px x 240px image.
// The PPU clock is 3x the CPU clock. step counts dots 0..341 on each of the
// 262 scanlines, so one frame here spans 342x262=89604 dots.
// Register state is mutated by the CPU through the bus; the renderer
// composes a whole frame from the final register state once per host frame,
// so mid-frame scroll or palette updates are not reproduced.
//
// References:
//   https://www.nesdev.org/wiki/PPU
//   https://www.nesdev.org/wiki/PPU_registers
type PPU struct {
	// Pattern tables. Writable through PPUDATA only on CHR-RAM cartridges.
	chr         [0x2000]byte
	chrWritable bool

	// Nametables and attribute tables, folded by the cartridge mirroring.
	vram   [0x1000]byte
	mirror MirrorMode

	paletteRAM paletteRAM

	// Object Attribute Memory, 64 sprites x 4 bytes (Y, tile, attribute, X).
	oam     [256]byte
	oamAddr byte

	// $2000 PPUCTRL
	nameTableFlag byte // 0 = $2000; 1 = $2400; 2 = $2800; 3 = $2C00
	vramInc32     bool // false: add 1, going across; true: add 32, going down
	spriteTable   bool // false: $0000; true: $1000; the renderer uses it for all sprites
	bgTable       bool // false: $0000; true: $1000
	sprite8x16    bool // stored only; sprites always render as 8x8
	nmiEnable     bool

	// $2001 PPUMASK
	showLeftBackground bool
	showLeftSprite     bool
	showBackground     bool
	showSprite         bool

	// Scroll and address latches, shared between PPUSCROLL and PPUADDR
	// through the write toggle.
	scrollX      byte
	scrollY      byte
	fineX        byte
	vramAddr     uint16
	tempVRAMAddr uint16
	readBuffer   byte
	writeLatch   bool

	// Timing
	dot      int
	scanline int
	vblank   bool

	// PPUSTATUS bit 6 is approximated as "scanline < 240" instead of a true
	// sprite-0 hit test. The switch exists so the approximation can be
	// turned off for hosts that prefer an always-clear bit.
	fakeSpriteZeroHit bool

	picture *image.RGBA
	colors  [64]color.RGBA
}

// NewPPU creates a PPU and copies the cartridge CHR data into the pattern
// tables.
func NewPPU(cartridge *Cartridge) *PPU {
	p := &PPU{
		mirror:            cartridge.Mirror(),
		chrWritable:       cartridge.chrRAM,
		fakeSpriteZeroHit: true,
		picture:           image.NewRGBA(image.Rect(0, 0, width, height)),
		colors:            masterPalette(PaletteNTSC),
	}
	p.loadCHR(cartridge.chrROM)
	return p
}

// loadCHR copies up to 8 KiB of pattern data.
func (p *PPU) loadCHR(data []byte) {
	if len(data) > len(p.chr) {
		data = data[:len(p.chr)]
	}
	copy(p.chr[:], data)
}

// Reset clears the timing counters and CPU-visible latches.
func (p *PPU) Reset() {
	p.dot = 0
	p.scanline = 0
	p.vblank = false
	p.writeLatch = false
	p.readBuffer = 0
	p.vramAddr = 0
	p.tempVRAMAddr = 0
	p.oamAddr = 0
}

// SetPaletteMode switches the master palette table. The scaled PAL table is
// precomputed, so this is a plain copy.
func (p *PPU) SetPaletteMode(mode PaletteMode) {
	p.colors = masterPalette(mode)
}

// step advances the PPU by one dot. Vblank starts when the scanline counter
// enters 241 and ends entering the pre-render line 261.
func (p *PPU) step() {
	p.dot++
	if p.dot > 341 {
		p.dot = 0
		p.scanline++
		if p.scanline == 241 {
			p.vblank = true
		}
		if p.scanline == 261 {
			p.vblank = false
		}
		if p.scanline > 261 {
			p.scanline = 0
		}
	}
}

// writePPUCTRL writes PPUCTRL ($2000). The nametable select bits also land
// in the temporary VRAM address.
func (p *PPU) writePPUCTRL(data byte) {
	p.nameTableFlag = data & 3
	p.vramInc32 = data&0x04 != 0
	p.spriteTable = data&0x08 != 0
	p.bgTable = data&0x10 != 0
	p.sprite8x16 = data&0x20 != 0
	p.nmiEnable = data&0x80 != 0
	p.tempVRAMAddr = (p.tempVRAMAddr & 0x73FF) | (uint16(data&0x03) << 10)
}

// writePPUMASK writes PPUMASK ($2001).
func (p *PPU) writePPUMASK(data byte) {
	p.showLeftBackground = data&0x02 != 0
	p.showLeftSprite = data&0x04 != 0
	p.showBackground = data&0x08 != 0
	p.showSprite = data&0x10 != 0
}

// readPPUSTATUS reads PPUSTATUS ($2002). Reading clears vblank and the
// shared write toggle.
func (p *PPU) readPPUSTATUS() byte {
	var res byte
	if p.vblank {
		res |= 0x80
	}
	if p.fakeSpriteZeroHit && p.scanline < 240 {
		res |= 0x40
	}
	p.vblank = false
	p.writeLatch = false
	return res
}

// writeOAMADDR writes OAMADDR ($2003).
func (p *PPU) writeOAMADDR(data byte) {
	p.oamAddr = data
}

// readOAMDATA reads OAMDATA ($2004). Reads do not advance the address.
func (p *PPU) readOAMDATA() byte {
	return p.oam[p.oamAddr]
}

// writeOAMDATA writes OAMDATA ($2004) and post-increments the address.
func (p *PPU) writeOAMDATA(data byte) {
	p.oam[p.oamAddr] = data
	p.oamAddr++
}

// writePPUSCROLL writes PPUSCROLL ($2005). The first store sets the X
// scroll and fine X, the second the Y scroll.
func (p *PPU) writePPUSCROLL(data byte) {
	if !p.writeLatch {
		p.scrollX = data
		p.fineX = data & 7
	} else {
		p.scrollY = data
	}
	p.writeLatch = !p.writeLatch
}

// writePPUADDR writes PPUADDR ($2006). The first store sets the high six
// bits of the temporary address, the second the low byte, which is then
// copied into the live VRAM address.
func (p *PPU) writePPUADDR(data byte) {
	if !p.writeLatch {
		p.tempVRAMAddr = (p.tempVRAMAddr & 0x00FF) | (uint16(data&0x3F) << 8)
	} else {
		p.tempVRAMAddr = (p.tempVRAMAddr & 0x7F00) | uint16(data)
		p.vramAddr = p.tempVRAMAddr
	}
	p.writeLatch = !p.writeLatch
}

// nametableIndex folds a $2000-$2FFF address into the 4 KiB VRAM array per
// the cartridge mirroring: vertical masks to the low 2 KiB pair, horizontal
// folds the upper pair down by $400.
func (p *PPU) nametableIndex(address uint16) uint16 {
	nt := address & 0x0FFF
	if p.mirror == MirrorVertical {
		return nt & 0x07FF
	}
	if nt&0x0800 != 0 {
		return nt - 0x0400
	}
	return nt
}

// incrementVRAMAddr applies the PPUDATA post-increment, masked to 14 bits.
func (p *PPU) incrementVRAMAddr() {
	if p.vramInc32 {
		p.vramAddr += 32
	} else {
		p.vramAddr++
	}
	p.vramAddr &= 0x3FFF
}

// writePPUDATA writes PPUDATA ($2007). Pattern table writes only land on
// CHR-RAM cartridges.
func (p *PPU) writePPUDATA(data byte) {
	vaddr := p.vramAddr & 0x3FFF
	switch {
	case vaddr < 0x2000:
		if p.chrWritable {
			p.chr[vaddr] = data
		}
	case vaddr < 0x3F00:
		p.vram[p.nametableIndex(vaddr)] = data
	default:
		p.paletteRAM.write(vaddr, data)
	}
	p.incrementVRAMAddr()
}

// readPPUDATA reads PPUDATA ($2007). Pattern table and nametable reads go
// through the one byte read buffer; palette reads bypass it.
func (p *PPU) readPPUDATA() byte {
	vaddr := p.vramAddr & 0x3FFF
	var ret byte
	if vaddr < 0x3F00 {
		ret = p.readBuffer
		if vaddr < 0x2000 {
			p.readBuffer = p.chr[vaddr]
		} else {
			p.readBuffer = p.vram[p.nametableIndex(vaddr)]
		}
	} else {
		ret = p.paletteRAM.read(vaddr)
	}
	p.incrementVRAMAddr()
	return ret
}

// writeOAMDMA copies a DMA page collected by the bus into OAM, starting at
// the current OAM address and wrapping around.
func (p *PPU) writeOAMDMA(data [256]byte) {
	for _, x := range data {
		p.oam[p.oamAddr] = x
		p.oamAddr++
	}
}

// Render composes the current frame from the final register state:
// background first, then all 64 sprites from the back of OAM forward so
// low-index sprites win overlaps.
func (p *PPU) Render() *image.RGBA {
	backdrop := p.colors[p.paletteRAM.read(0x3F00)&0x3F]
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p.picture.SetRGBA(x, y, p.backgroundPixel(x, y, backdrop))
		}
	}
	if p.showSprite {
		p.renderSprites()
	}
	return p.picture
}

// backgroundPixel resolves one screen pixel against the scrolled nametable.
func (p *PPU) backgroundPixel(x, y int, backdrop color.RGBA) color.RGBA {
	if !p.showBackground || (x < 8 && !p.showLeftBackground) {
		return backdrop
	}
	sx := (x + int(p.scrollX)) % 256
	sy := (y + int(p.scrollY)) % 240
	tx, ty := sx/8, sy/8
	fx, fy := sx%8, sy%8

	tile := uint16(p.vram[ty*32+tx])
	base := tile*16 + uint16(fy)
	if p.bgTable {
		base += 0x1000
	}
	lo := p.chr[base]
	hi := p.chr[base+8]
	bit := uint(7 - fx)
	value := ((hi>>bit)&1)<<1 | (lo>>bit)&1
	if value == 0 {
		return backdrop
	}

	attr := p.vram[0x3C0+(tx/4)+(ty/4)*8]
	quadrant := uint((tx/2)&1 | ((ty/2)&1)<<1)
	pair := (attr >> (quadrant * 2)) & 3
	idx := p.paletteRAM.read(0x3F00 + uint16(value) + uint16(pair)*4)
	return p.colors[idx&0x3F]
}

// renderSprites draws the 8x8 sprites in back-to-front OAM order. Color 0
// is transparent and pixels are clipped to the frame.
func (p *PPU) renderSprites() {
	for i := 63; i >= 0; i-- {
		spriteY := int(p.oam[i*4]) + 1
		tile := uint16(p.oam[i*4+1])
		attr := p.oam[i*4+2]
		spriteX := int(p.oam[i*4+3])

		flipH := attr&0x40 != 0
		flipV := attr&0x80 != 0
		pair := uint16(attr & 3)
		base := tile * 16
		if p.spriteTable {
			base += 0x1000
		}

		for row := 0; row < 8; row++ {
			tileRow := row
			if flipV {
				tileRow = 7 - row
			}
			lo := p.chr[base+uint16(tileRow)]
			hi := p.chr[base+uint16(tileRow)+8]
			for col := 0; col < 8; col++ {
				tileCol := col
				if flipH {
					tileCol = 7 - col
				}
				bit := uint(7 - tileCol)
				value := ((hi>>bit)&1)<<1 | (lo>>bit)&1
				if value == 0 {
					continue
				}
				px := spriteX + col
				py := spriteY + row
				if px < 0 || px >= width || py < 0 || py >= height {
					continue
				}
				if px < 8 && !p.showLeftSprite {
					continue
				}
				idx := p.paletteRAM.read(0x3F10 + pair*4 + uint16(value))
				p.picture.SetRGBA(px, py, p.colors[idx&0x3F])
			}
		}
	}
}
