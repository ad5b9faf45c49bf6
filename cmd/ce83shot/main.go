// ce83shot loads a ROM, runs a bounded number of cycles (or until a
// breakpoint), and writes the current framebuffer out as a PNG, for
// visually inspecting boot progress without a full UI.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/zotley/ce83/internal/debug"
	"github.com/zotley/ce83/internal/emu"
	"github.com/zotley/ce83/internal/peripherals"
)

func main() {
	var (
		cycles  = flag.Int("cycles", 4_000_000, "CPU cycles to run before capturing (with -break: instruction steps)")
		breakPC = flag.Uint64("break", 0, "stop early at this PC (hex not required; 0 = disabled)")
		out     = flag.String("out", "boot.png", "output PNG path")
		overlay = flag.Bool("overlay", true, "overlay a register status line")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ce83shot [flags] <rom-file>")
		os.Exit(1)
	}

	rom, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading rom: %v\n", err)
		os.Exit(1)
	}

	e := emu.New()
	if err := e.LoadROM(rom); err != nil {
		fmt.Fprintf(os.Stderr, "loading rom: %v\n", err)
		os.Exit(1)
	}
	e.PowerOn()

	if *breakPC != 0 {
		dbg := debug.New(e)
		dbg.SetBreakpoint(uint32(*breakPC))
		dbg.RunToBreakpoint(*cycles)
	} else {
		e.RunCycles(*cycles)
	}

	frame := e.RenderFrame()
	rgba := convertFrame(frame)
	if *overlay {
		drawStatusLine(rgba, e)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, rgba); err != nil {
		fmt.Fprintf(os.Stderr, "encoding png: %v\n", err)
		os.Exit(1)
	}
}

// argbImage adapts the raw BGRA8888 framebuffer to image.Image so the
// x/image/draw conversion path can consume it without a manual pixel loop.
type argbImage struct {
	pix           []byte
	width, height int
}

func (a *argbImage) ColorModel() color.Model { return color.RGBAModel }
func (a *argbImage) Bounds() image.Rectangle { return image.Rect(0, 0, a.width, a.height) }
func (a *argbImage) At(x, y int) color.Color {
	o := (y*a.width + x) * 4
	b, g, r, al := a.pix[o], a.pix[o+1], a.pix[o+2], a.pix[o+3]
	return color.RGBA{R: r, G: g, B: b, A: al}
}

func convertFrame(frame []byte) *image.RGBA {
	src := &argbImage{pix: frame, width: peripherals.Width, height: peripherals.Height}
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
	return dst
}

// drawStatusLine renders a fixed-width register line onto the top of the
// captured screenshot, for quickly eyeballing PC/SP/flags alongside the
// rendered screen without a separate debugger session.
func drawStatusLine(dst *image.RGBA, e *emu.Emu) {
	c := e.CPU()
	text := fmt.Sprintf("PC=%06X SP=%06X A=%02X F=%02X BC=%06X", c.PC, c.SP, c.A, c.F, c.BC)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{R: 0, G: 255, B: 0, A: 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(2, 12),
	}
	d.DrawString(text)
}
