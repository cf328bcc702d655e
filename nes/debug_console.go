package nes

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// DebugConsole is a NES console for debugging, driven by commands on stdin.
// commands:
//   s [N]:
//     execute N instruction steps (suffix 'd' prints state per step).
//   p [c|p|ca|ct|st]:
//     print CPU, PPU, cartridge, controller or stack state.
//   br 0xNNNN:
//     set a break point on PC.
//   r:
//     reset.
//   q:
//     quit.
type DebugConsole struct {
	*NesConsole
	cycles      uint64
	breakpoints []uint16
}

func (c *DebugConsole) Reset() error {
	c.cycles = 0
	return c.NesConsole.Reset()
}

func (c *DebugConsole) printStack() {
	for i := 0; i < 256; i++ {
		address := uint16(0x100 | i)
		fmt.Printf("0x%04x: 0x%02x, ", address, c.bus.read(address))
		if i%16 == 15 {
			fmt.Println()
		}
	}
}

func (c *DebugConsole) basePrint() {
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Executed cycles: %d\n", c.cycles)
	fmt.Println("Last: " + c.cpu.lastExecution)
	fmt.Printf("CPU: PC=0x%04x, A=0x%02x, X=0x%02x, Y=0x%02x, S=0x%02x, P=0x%02x\n",
		c.cpu.PC, c.cpu.A, c.cpu.X, c.cpu.Y, c.cpu.S, c.cpu.P.encode())
	fmt.Printf("PPU: dot=%d, scanline=%d, vblank=%t, v=0x%04x, t=0x%04x\n",
		c.ppu.dot, c.ppu.scanline, c.ppu.vblank, c.ppu.vramAddr, c.ppu.tempVRAMAddr)
}

func (c *DebugConsole) printCommand(args []string) {
	if len(args) < 2 {
		c.basePrint()
		return
	}
	switch args[1] {
	case "c", "cpu":
		fmt.Printf("%+v\n", *c.cpu)
	case "p", "ppu":
		fmt.Printf("%+v\n", *c.ppu)
	case "ca", "cartridge":
		fmt.Printf("%+v\n", *c.cartridge)
	case "ct", "controller":
		fmt.Printf("%+v %+v\n", *c.controllers[0], *c.controllers[1])
	case "st", "stack":
		c.printStack()
	}
}

func (c *DebugConsole) checkBreak() bool {
	for _, bp := range c.breakpoints {
		if bp == c.cpu.PC {
			fmt.Printf("Break at: 0x%04x\n", bp)
			return true
		}
	}
	return false
}

func (c *DebugConsole) stepCommand(args []string) error {
	num := 1
	verbose := false
	if len(args) >= 2 {
		re := regexp.MustCompile("^([0-9]+)(d?)$")
		m := re.FindStringSubmatch(args[1])
		if m == nil {
			return fmt.Errorf("Unparsable step count %q", args[1])
		}
		num, _ = strconv.Atoi(m[1])
		verbose = m[2] == "d"
	}
	for i := 0; i < num; i++ {
		cycles, err := c.step()
		c.cycles += uint64(cycles)
		if err != nil {
			return err
		}
		if verbose {
			c.basePrint()
		}
		if c.checkBreak() {
			return nil
		}
	}
	return nil
}

func (c *DebugConsole) breakPointCommand(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("br needs an address")
	}
	var address int
	if _, err := fmt.Sscanf(args[1], "0x%x", &address); err != nil {
		return fmt.Errorf("Unparsable break point %q: %w", args[1], err)
	}
	c.breakpoints = append(c.breakpoints, uint16(address))
	return nil
}

// Run ignores the budget and interprets one debugger command instead.
func (c *DebugConsole) Run(budget int) error {
	fmt.Printf("Debugger mode, 'q' to quit \n>> ")
	in := bufio.NewReader(os.Stdin)
	line, err := in.ReadString('\n')
	if err != nil {
		return err
	}
	args := strings.Split(strings.TrimSuffix(line, "\n"), " ")
	switch args[0] {
	case "p", "print":
		c.printCommand(args)
	case "s", "step":
		if err := c.stepCommand(args); err != nil {
			c.basePrint()
			return err
		}
		c.basePrint()
	case "br", "breakpoint":
		return c.breakPointCommand(args)
	case "r", "reset":
		return c.Reset()
	case "q", "quit":
		fmt.Println("Quitting.")
		os.Exit(0)
	default:
		return fmt.Errorf("Unknown command %q", args[0])
	}
	return nil
}

func (c *DebugConsole) Render() *image.RGBA {
	return c.NesConsole.Render()
}
