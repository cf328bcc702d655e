package nes

import (
	"fmt"

	"github.com/golang/glog"
)

const (
	inesHeaderSize = 16     // The valid INES header has 16 bytes
	trainerSize    = 512    // Optional trainer blob between header and PRG
	prgPageSize    = 0x4000 // 16 KiB per PRG page
	chrPageSize    = 0x2000 // 8 KiB per CHR page
	msdosEOF       = 0x1A
)

// MirrorMode selects how the two logical nametables map onto VRAM.
type MirrorMode int

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
)

// Cartridge holds a parsed iNES image.
// https://www.nesdev.org/wiki/INES
type Cartridge struct {
	prgROM   []byte
	chrROM   []byte
	trainer  []byte
	prgPages int
	chrPages int
	mapper   byte
	mirror   MirrorMode
	chrRAM   bool // zero CHR pages means the cartridge carries writable CHR-RAM
	flags6   byte // https://www.nesdev.org/wiki/INES#Flags_6
	flags7   byte // https://www.nesdev.org/wiki/INES#Flags_7
}

// isValid checks whether the buffer starts with a valid INES magic.
func isValid(data []byte) bool {
	return len(data) >= inesHeaderSize &&
		data[0] == byte('N') &&
		data[1] == byte('E') &&
		data[2] == byte('S') &&
		data[3] == msdosEOF
}

// NewCartridge parses an iNES image. Only mapper 0 (NROM) is fully
// supported; other mappers load with a warning and will likely misbehave.
func NewCartridge(data []byte) (*Cartridge, error) {
	if len(data) < inesHeaderSize {
		return nil, fmt.Errorf("The ROM is too small: %d bytes", len(data))
	}
	if !isValid(data) {
		return nil, fmt.Errorf("The buffer is not a valid NES format.")
	}
	c := &Cartridge{
		prgPages: int(data[4]),
		chrPages: int(data[5]),
		flags6:   data[6],
		flags7:   data[7],
	}
	if c.prgPages == 0 {
		return nil, fmt.Errorf("The ROM has zero PRG pages.")
	}
	c.mapper = (c.flags7 & 0xF0) | (c.flags6 >> 4)
	if c.mapper != 0 {
		glog.Warningf("Mapper %d detected, only mapper 0 (NROM) is supported.", c.mapper)
	}
	if c.flags6&1 == 1 {
		c.mirror = MirrorVertical
	} else {
		c.mirror = MirrorHorizontal
	}
	offset := inesHeaderSize
	if c.flags6&0x04 != 0 {
		if len(data) < offset+trainerSize {
			return nil, fmt.Errorf("The ROM is truncated inside the trainer.")
		}
		c.trainer = data[offset : offset+trainerSize]
		offset += trainerSize
	}
	prgSize := c.prgPages * prgPageSize
	if len(data) < offset+prgSize {
		return nil, fmt.Errorf("The ROM is truncated inside PRG data: want %d bytes", prgSize)
	}
	c.prgROM = data[offset : offset+prgSize]
	offset += prgSize
	if c.chrPages == 0 {
		// CHR-RAM cartridge, the PPU gets 8 KiB of writable zeros.
		c.chrRAM = true
		c.chrROM = make([]byte, chrPageSize)
	} else {
		chrSize := c.chrPages * chrPageSize
		if len(data) < offset+chrSize {
			return nil, fmt.Errorf("The ROM is truncated inside CHR data: want %d bytes", chrSize)
		}
		c.chrROM = data[offset : offset+chrSize]
	}
	glog.Infof("Loaded ROM: PRG pages=%d, CHR pages=%d, mapper=%d, mirror=%d",
		c.prgPages, c.chrPages, c.mapper, c.mirror)
	return c, nil
}

// Mirror returns the nametable mirroring declared by the header.
func (c *Cartridge) Mirror() MirrorMode {
	return c.mirror
}

// Mapper returns the iNES mapper number.
func (c *Cartridge) Mapper() byte {
	return c.mapper
}
