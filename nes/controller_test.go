package nes

import "testing"

func TestStrobeSnapshotsOnRisingEdge(t *testing.T) {
	c := NewController()
	c.Set(ButtonA)
	c.write(1)
	// A state change while the strobe stays high is not picked up until the
	// next rising edge.
	c.Set(ButtonB)
	c.write(1)
	c.write(0)
	if got := c.read(); got != 0x41 {
		t.Errorf("bit 0: got=0x%02x, want=0x41", got)
	}
	if got := c.read(); got != 0x40 {
		t.Errorf("bit 1: got=0x%02x, want=0x40", got)
	}
}

func TestReadWhileStrobing(t *testing.T) {
	c := NewController()
	c.Set(ButtonA)
	c.write(1)
	// With the strobe held the shift register does not advance.
	for i := 0; i < 3; i++ {
		if got := c.read(); got != 0x41 {
			t.Errorf("read %d: got=0x%02x, want=0x41", i, got)
		}
	}
}

func TestReadsPastEightBits(t *testing.T) {
	c := NewController()
	c.Set(0xFF)
	c.write(1)
	c.write(0)
	for i := 0; i < 8; i++ {
		if got := c.read(); got != 0x41 {
			t.Fatalf("read %d: got=0x%02x, want=0x41", i, got)
		}
	}
	// The register is exhausted, only the open bus bit remains.
	if got := c.read(); got != 0x40 {
		t.Errorf("ninth read: got=0x%02x, want=0x40", got)
	}
}
