package ui

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"

	"github.com/miyako/mnes/nes"
)

// getKeys reads the gamepad mapping: WASD for directions, J/H for A/B,
// G/F for Start/Select.
func getKeys(window *glfw.Window) byte {
	var state byte
	if window.GetKey(glfw.KeyD) == glfw.Press {
		state |= nes.ButtonRight
	}
	if window.GetKey(glfw.KeyA) == glfw.Press {
		state |= nes.ButtonLeft
	}
	if window.GetKey(glfw.KeyS) == glfw.Press {
		state |= nes.ButtonDown
	}
	if window.GetKey(glfw.KeyW) == glfw.Press {
		state |= nes.ButtonUp
	}
	if window.GetKey(glfw.KeyG) == glfw.Press {
		state |= nes.ButtonStart
	}
	if window.GetKey(glfw.KeyF) == glfw.Press {
		state |= nes.ButtonSelect
	}
	if window.GetKey(glfw.KeyH) == glfw.Press {
		state |= nes.ButtonB
	}
	if window.GetKey(glfw.KeyJ) == glfw.Press {
		state |= nes.ButtonA
	}
	return state
}

// hotkeys tracks edge transitions for the emulator controls: P pauses,
// R resets, 1/2 switch the palette mode.
type hotkeys struct {
	paused   bool
	prevP    bool
	prevR    bool
}

func newHotkeys() *hotkeys {
	return &hotkeys{}
}

func (h *hotkeys) apply(window *glfw.Window, console nes.Console) {
	p := window.GetKey(glfw.KeyP) == glfw.Press
	if p && !h.prevP {
		h.paused = !h.paused
		console.SetPaused(h.paused)
		glog.Infof("Paused: %t", h.paused)
	}
	h.prevP = p

	r := window.GetKey(glfw.KeyR) == glfw.Press
	if r && !h.prevR {
		if err := console.Reset(); err != nil {
			glog.Errorf("Reset failed: %v", err)
		}
	}
	h.prevR = r

	if window.GetKey(glfw.Key1) == glfw.Press {
		console.SetPaletteMode(nes.PaletteNTSC)
	}
	if window.GetKey(glfw.Key2) == glfw.Press {
		console.SetPaletteMode(nes.PalettePAL)
	}
}
