package nes

import "testing"

func TestRAMMirror(t *testing.T) {
	c := newTestConsole(t, []byte{0xEA})
	c.bus.write(0x0000, 0xAB)
	for _, address := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got := c.bus.read(address); got != 0xAB {
			t.Errorf("read(0x%04x): got=0x%02x, want=0xAB", address, got)
		}
	}
	c.bus.write(0x1FFF, 0xCD)
	if got := c.bus.read(0x07FF); got != 0xCD {
		t.Errorf("read(0x07FF): got=0x%02x, want=0xCD", got)
	}
}

func TestPRGRAM(t *testing.T) {
	c := newTestConsole(t, []byte{0xEA})
	c.bus.write(0x6000, 0x5A)
	c.bus.write(0x7FFF, 0xA5)
	if got := c.bus.read(0x6000); got != 0x5A {
		t.Errorf("read(0x6000): got=0x%02x, want=0x5A", got)
	}
	if got := c.bus.read(0x7FFF); got != 0xA5 {
		t.Errorf("read(0x7FFF): got=0x%02x, want=0xA5", got)
	}
}

func TestROMWriteIgnored(t *testing.T) {
	c := newTestConsole(t, []byte{0xEA})
	before := c.bus.read(0x8000)
	c.bus.write(0x8000, ^before)
	if got := c.bus.read(0x8000); got != before {
		t.Errorf("ROM write landed: got=0x%02x, want=0x%02x", got, before)
	}
}

func TestPRGMirroringSinglePage(t *testing.T) {
	c := newTestConsole(t, []byte{0xA9, 0x42})
	if lo, hi := c.bus.read(0x8000), c.bus.read(0xC000); lo != hi {
		t.Errorf("one-page PRG should mirror: 0x8000=0x%02x, 0xC000=0x%02x", lo, hi)
	}
}

func TestOAMDMA(t *testing.T) {
	c := newTestConsole(t, []byte{0xEA})
	for i := 0; i < 256; i++ {
		c.bus.write(uint16(0x0200+i), byte(i))
	}
	c.bus.write(0x4014, 0x02)
	for i := 0; i < 256; i++ {
		if c.ppu.oam[i] != byte(i) {
			t.Fatalf("oam[%d]: got=0x%02x, want=0x%02x", i, c.ppu.oam[i], byte(i))
		}
	}
}

func TestControllerSerialRead(t *testing.T) {
	c := newTestConsole(t, []byte{0xEA})
	c.SetButtons(0, ButtonA|ButtonStart|ButtonRight)
	c.bus.write(0x4016, 1)
	c.bus.write(0x4016, 0)
	want := []byte{1, 0, 0, 1, 0, 0, 0, 1} // A, B, Select, Start, Up, Down, Left, Right
	for i, bit := range want {
		if got := c.bus.read(0x4016); got != bit|0x40 {
			t.Errorf("read %d: got=0x%02x, want=0x%02x", i, got, bit|0x40)
		}
	}
}

func TestSecondControllerPort(t *testing.T) {
	c := newTestConsole(t, []byte{0xEA})
	c.SetButtons(1, ButtonB)
	c.bus.write(0x4016, 1)
	c.bus.write(0x4016, 0)
	if got := c.bus.read(0x4017); got != 0x40 {
		t.Errorf("first read: got=0x%02x, want=0x40", got)
	}
	if got := c.bus.read(0x4017); got != 0x41 {
		t.Errorf("second read: got=0x%02x, want=0x41", got)
	}
}

func TestAPUAndOpenBusReads(t *testing.T) {
	c := newTestConsole(t, []byte{0xEA})
	c.bus.write(0x4000, 0x3F)
	for _, address := range []uint16{0x4000, 0x4014, 0x4015, 0x4018, 0x401F} {
		if got := c.bus.read(address); got != 0 {
			t.Errorf("read(0x%04x): got=0x%02x, want=0", address, got)
		}
	}
}
