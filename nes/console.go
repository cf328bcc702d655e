package nes

import (
	"fmt"
	"image"

	"github.com/golang/glog"
)

// CyclesPerFrame is the CPU budget for one NTSC frame: one frame spans
// 89342 master cycles and the PPU runs three dots per CPU cycle.
const CyclesPerFrame = 89342 / 3

// Console is the host-facing surface of the emulator. One call to Run
// executes atomically with respect to Render and the input poll; nothing
// here is safe for concurrent use.
type Console interface {
	Reset() error
	Run(budget int) error
	Render() *image.RGBA
	SetButtons(port int, state byte)
	SetPaletteMode(mode PaletteMode)
	SetPaused(paused bool)
}

// NesConsole owns every subsystem: CPU, PPU, memory, APU stub, the two
// controller ports and the cartridge. Subsystems never hold pointers back
// into each other beyond the bus wiring done here.
type NesConsole struct {
	cpu         *CPU
	ppu         *PPU
	apu         *APU
	bus         *CPUBus
	cartridge   *Cartridge
	controllers [2]*Controller

	// nmiLine is the edge detector over vblank && nmiEnable.
	nmiLine bool

	// halted latches after a fatal opcode; Run becomes a no-op until Reset.
	halted bool
	paused bool
}

// NewConsole builds a console around a parsed cartridge. If debug is true
// the returned console steps interactively through stdin.
func NewConsole(cartridge *Cartridge, debug bool) (Console, error) {
	if cartridge == nil {
		return nil, fmt.Errorf("No cartridge inserted.")
	}
	controllers := [2]*Controller{NewController(), NewController()}
	ppu := NewPPU(cartridge)
	apu := NewAPU()
	mem := NewMemory()
	mem.loadPRG(cartridge.prgROM)
	bus := NewCPUBus(mem, ppu, apu, controllers)
	cpu := NewCPU(bus)
	console := &NesConsole{
		cpu:         cpu,
		ppu:         ppu,
		apu:         apu,
		bus:         bus,
		cartridge:   cartridge,
		controllers: controllers,
	}
	if debug {
		return &DebugConsole{NesConsole: console}, nil
	}
	return console, nil
}

// Reset restores the power-on state and clears a halt.
func (c *NesConsole) Reset() error {
	c.cpu.Reset()
	c.ppu.Reset()
	c.nmiLine = false
	c.halted = false
	return nil
}

// step runs one instruction and drives the PPU three dots per consumed CPU
// cycle, with NMI edge detection at the instruction boundary.
func (c *NesConsole) step() (int, error) {
	prev := c.nmiLine
	c.nmiLine = c.ppu.vblank && c.ppu.nmiEnable
	if c.nmiLine && !prev {
		c.cpu.nmiTriggered = true
	}
	cycles, err := c.cpu.Step()
	for i := 0; i < cycles*3; i++ {
		c.ppu.step()
	}
	return cycles, err
}

// Run executes instructions until the cycle budget is spent. A fatal
// opcode halts the console and surfaces as the returned error; further
// calls do nothing until Reset.
func (c *NesConsole) Run(budget int) error {
	if c.halted || c.paused {
		return nil
	}
	executed := 0
	for executed < budget {
		cycles, err := c.step()
		if err != nil {
			c.halted = true
			glog.Errorf("Halting the console: %v", err)
			return fmt.Errorf("Fatal execution: %w", err)
		}
		executed += cycles
	}
	return nil
}

// Render composes the current frame from the PPU state.
func (c *NesConsole) Render() *image.RGBA {
	return c.ppu.Render()
}

// SetButtons updates the live button state of one controller port.
func (c *NesConsole) SetButtons(port int, state byte) {
	c.controllers[port&1].Set(state)
}

// SetPaletteMode switches between the NTSC and PAL-like master palettes.
func (c *NesConsole) SetPaletteMode(mode PaletteMode) {
	c.ppu.SetPaletteMode(mode)
}

// SetPaused suspends Run without touching any state.
func (c *NesConsole) SetPaused(paused bool) {
	c.paused = paused
}
