package emu

import (
	"github.com/zotley/ce83/internal/bus"
	"github.com/zotley/ce83/internal/peripherals"
)

// bppBitsFor maps the four indexed BPP modes (0..3) to bits-per-pixel,
// matching the PL111-derived control register this display model follows;
// mode 4 is treated as direct RGB565 (see RenderFrame).
var bppBitsFor = [4]uint{1, 2, 4, 8}

// RenderFrame reads VRAM starting at the LCD controller's upbase, converts
// it to ARGB8888 according to the current BPP/BGR/palette configuration,
// scales by the backlight byte, and returns the framebuffer. The returned
// slice is reused across calls; callers must copy it if they need it to
// outlive the next core call, mirroring the handle API's "valid until the
// next core call" contract.
func (e *Emu) RenderFrame() []byte {
	if !e.LCDOn() {
		for i := range e.framebuffer {
			e.framebuffer[i] = 0
		}
		return e.framebuffer
	}

	vram := e.bus.RAMBytes()
	base := e.periph.LCD.Upbase()
	var vramOff int
	if base >= bus.RAMBase && base < bus.RAMEnd {
		vramOff = int(base - bus.RAMBase)
	}

	bpp := e.periph.LCD.BPPMode()
	bgr := e.periph.LCD.BGRSwapped()
	palette := e.periph.LCD.Palette()
	backlight := uint32(e.periph.Control.Backlight())

	pixels := peripherals.Width * peripherals.Height

	readPixel565 := func(idx int) (r, g, b byte) {
		var v uint16
		if bpp == 4 {
			byteOff := vramOff + idx*2
			if byteOff+1 < len(vram) {
				v = uint16(vram[byteOff]) | uint16(vram[byteOff+1])<<8
			}
		} else {
			bits := bppBitsFor[bpp&3]
			perByte := 8 / bits
			byteOff := vramOff + idx/int(perByte)
			var raw byte
			if byteOff < len(vram) {
				raw = vram[byteOff]
			}
			shift := uint(idx%int(perByte)) * bits
			mask := byte(1<<bits) - 1
			palIdx := int((raw >> shift) & mask)
			if 2*palIdx+1 < len(palette) {
				v = uint16(palette[2*palIdx]) | uint16(palette[2*palIdx+1])<<8
			}
		}
		r5 := byte(v>>11) & 0x1F
		g6 := byte(v>>5) & 0x3F
		b5 := byte(v) & 0x1F
		r = scale5to8(r5)
		g = scale6to8(g6)
		b = scale5to8(b5)
		if bgr {
			r, b = b, r
		}
		return
	}

	for i := 0; i < pixels; i++ {
		r, g, b := readPixel565(i)
		r = byte(uint32(r) * backlight / 255)
		g = byte(uint32(g) * backlight / 255)
		b = byte(uint32(b) * backlight / 255)

		o := i * 4
		e.framebuffer[o+0] = b
		e.framebuffer[o+1] = g
		e.framebuffer[o+2] = r
		e.framebuffer[o+3] = 0xFF
	}
	return e.framebuffer
}

func scale5to8(v byte) byte { return byte((uint32(v)*255 + 15) / 31) }
func scale6to8(v byte) byte { return byte((uint32(v)*255 + 31) / 63) }
