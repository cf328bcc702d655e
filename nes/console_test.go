package nes

import (
	"bytes"
	"testing"
)

func TestRunSpendsBudgetOnNOPs(t *testing.T) {
	// A wall of NOPs: 100 cycles buys exactly 50 two-cycle instructions.
	c := newTestConsole(t, bytes.Repeat([]byte{0xEA}, 0x100))
	if err := c.Run(100); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if c.cpu.PC != 0x8032 {
		t.Errorf("PC: got=0x%04x, want=0x8032", c.cpu.PC)
	}
	// The PPU moves three dots per CPU cycle.
	if c.ppu.dot != 300 || c.ppu.scanline != 0 {
		t.Errorf("PPU: dot=%d scanline=%d, want dot=300 scanline=0", c.ppu.dot, c.ppu.scanline)
	}
}

func TestRunHaltsOnUnknownOpcode(t *testing.T) {
	c := newTestConsole(t, []byte{0x02})
	if err := c.Run(10); err == nil {
		t.Fatal("a jam opcode should surface as an error")
	}
	if !c.halted {
		t.Fatal("the console should latch the halt")
	}
	pc := c.cpu.PC
	if err := c.Run(10); err != nil {
		t.Fatalf("a halted Run should be a no-op, got: %v", err)
	}
	if c.cpu.PC != pc {
		t.Error("a halted Run should not advance the CPU")
	}
	if err := c.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if c.halted {
		t.Error("Reset should clear the halt")
	}
}

func TestRunWhilePaused(t *testing.T) {
	c := newTestConsole(t, bytes.Repeat([]byte{0xEA}, 16))
	c.SetPaused(true)
	if err := c.Run(100); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if c.cpu.PC != 0x8000 {
		t.Errorf("PC moved while paused: got=0x%04x", c.cpu.PC)
	}
	c.SetPaused(false)
	if err := c.Run(2); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if c.cpu.PC == 0x8000 {
		t.Error("PC should move after unpausing")
	}
}

func TestNMIEdgeDetection(t *testing.T) {
	c := newTestConsole(t, bytes.Repeat([]byte{0xEA}, 0x100))
	c.bus.mem.write(0xFFFA, 0x00)
	c.bus.mem.write(0xFFFB, 0x90)
	c.bus.mem.write(0x9000, 0xEA)
	c.bus.mem.write(0x9001, 0xEA)
	c.ppu.nmiEnable = true
	c.ppu.vblank = true

	// Rising edge: the next instruction services the NMI.
	if _, err := c.step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if c.cpu.PC != 0x9001 {
		t.Fatalf("PC after NMI: got=0x%04x, want=0x9001", c.cpu.PC)
	}
	// The line stays high, no second interrupt fires.
	if _, err := c.step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if c.cpu.nmiTriggered {
		t.Fatal("a level should not retrigger the NMI")
	}
	// Dropping and raising the line again produces a new edge.
	c.ppu.vblank = false
	if _, err := c.step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	c.ppu.vblank = true
	if _, err := c.step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if c.cpu.PC != 0x9001 {
		t.Fatalf("a fresh rising edge should service the NMI again, PC=0x%04x", c.cpu.PC)
	}
}

func TestOAMDMAThenRender(t *testing.T) {
	c := newTestConsole(t, []byte{0xEA})
	p := c.ppu
	p.chr[2*16] = 0x80
	// Stage a sprite descriptor in RAM page 7 and DMA it across.
	c.bus.write(0x0700, 15) // Y
	c.bus.write(0x0701, 2)  // tile
	c.bus.write(0x0702, 0)  // attributes
	c.bus.write(0x0703, 32) // X
	c.bus.write(0x4014, 0x07)
	p.paletteRAM.write(0x3F11, 0x27)
	c.bus.write(0x2001, 0x14)

	if got := c.Render().RGBAAt(32, 16); got != paletteNTSC[0x27] {
		t.Errorf("sprite pixel after DMA: got=%v, want=%v", got, paletteNTSC[0x27])
	}
}

func TestConsoleStrobeSequenceThroughCPU(t *testing.T) {
	// A program that performs the canonical pad read: strobe on, strobe
	// off, then eight LDA $4016 in a row, storing bit 0 each time.
	program := []byte{
		0xA9, 0x01, // LDA #$01
		0x8D, 0x16, 0x40, // STA $4016
		0xA9, 0x00, // LDA #$00
		0x8D, 0x16, 0x40, // STA $4016
	}
	for i := 0; i < 8; i++ {
		program = append(program,
			0xAD, 0x16, 0x40, // LDA $4016
			0x29, 0x01, // AND #$01
			0x85, byte(0x10+i), // STA $10+i
		)
	}
	c := newTestConsole(t, program)
	c.SetButtons(0, ButtonA|ButtonSelect|ButtonDown)
	for i := 0; i < 4+8*3; i++ {
		if _, err := c.cpu.Step(); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}
	want := []byte{1, 0, 1, 0, 0, 1, 0, 0} // A, B, Select, Start, Up, Down, Left, Right
	for i, w := range want {
		if got := c.bus.read(uint16(0x10 + i)); got != w {
			t.Errorf("button %d: got=%d, want=%d", i, got, w)
		}
	}
}
