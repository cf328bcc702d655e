package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/miyako/mnes/nes"
	"github.com/miyako/mnes/ui"
)

var (
	debug   = flag.Bool("debug", false, "Runs the console with the interactive debugger.")
	palette = flag.Int("palette", 0, "Palette mode, 0 = NTSC, 1 = PAL-like.")
)

func main() {
	flag.Parse()
	defer glog.Flush()
	if flag.NArg() < 1 {
		glog.Exitf("Usage: mnes [flags] <rom.nes>")
	}
	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		glog.Exitf("Failed to read the ROM file: %v", err)
	}
	cartridge, err := nes.NewCartridge(data)
	if err != nil {
		glog.Exitf("Failed to load the ROM: %v", err)
	}
	console, err := nes.NewConsole(cartridge, *debug)
	if err != nil {
		glog.Exitf("Failed to create a console: %v", err)
	}
	console.SetPaletteMode(nes.PaletteMode(*palette))
	ui.Start(console, 768, 720)
}
