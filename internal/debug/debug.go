// Package debug implements the register/memory/breakpoint adapter the
// orchestrator exposes over the same CPU/bus it drives: a thin wrapper
// funneling through the same Step/tick path run_cycles uses, never a
// second execution path.
package debug

import (
	"fmt"
	"strings"

	"github.com/zotley/ce83/internal/cpu"
	"github.com/zotley/ce83/internal/emu"
)

// RegisterInfo describes one named register for display purposes.
type RegisterInfo struct {
	Name  string
	Width int // bits
	Value uint64
}

// backstepDepth bounds the in-memory snapshot ring; it trades memory for
// how far an interactive session can step backward.
const backstepDepth = 64

type backstepEntry struct {
	cpuState cpu.State
	ram      []byte
}

// Debugger wraps an *emu.Emu with the interactive facilities described in
// the orchestrator's debug-adapter contract. It owns no CPU/bus state of
// its own beyond breakpoints and the backstep ring.
type Debugger struct {
	e *emu.Emu

	breakpoints map[uint32]bool

	ring    [backstepDepth]backstepEntry
	ringLen int
	ringPos int
}

// New wraps e for interactive debugging.
func New(e *emu.Emu) *Debugger {
	return &Debugger{e: e, breakpoints: make(map[uint32]bool)}
}

func (d *Debugger) CPUName() string    { return d.e.CPUType() }
func (d *Debugger) AddressWidth() int  { return 24 }

// GetRegisters returns every named register in display order.
func (d *Debugger) GetRegisters() []RegisterInfo {
	c := d.e.CPU()
	return []RegisterInfo{
		{"A", 8, uint64(c.A)}, {"F", 8, uint64(c.F)},
		{"BC", 24, uint64(c.BC)}, {"DE", 24, uint64(c.DE)}, {"HL", 24, uint64(c.HL)},
		{"A'", 8, uint64(c.A2)}, {"F'", 8, uint64(c.F2)},
		{"BC'", 24, uint64(c.BC2)}, {"DE'", 24, uint64(c.DE2)}, {"HL'", 24, uint64(c.HL2)},
		{"IX", 24, uint64(c.IX)}, {"IY", 24, uint64(c.IY)},
		{"SP", 24, uint64(c.SP)}, {"PC", 24, uint64(c.PC)},
		{"I", 16, uint64(c.I)}, {"R", 8, uint64(c.R)}, {"MBASE", 8, uint64(c.MBASE)},
		{"IM", 8, uint64(c.IM)},
	}
}

// GetRegister looks a register up by name, case-insensitively.
func (d *Debugger) GetRegister(name string) (uint64, bool) {
	c := d.e.CPU()
	switch strings.ToUpper(name) {
	case "A":
		return uint64(c.A), true
	case "F":
		return uint64(c.F), true
	case "BC":
		return uint64(c.BC), true
	case "DE":
		return uint64(c.DE), true
	case "HL":
		return uint64(c.HL), true
	case "IX":
		return uint64(c.IX), true
	case "IY":
		return uint64(c.IY), true
	case "SP":
		return uint64(c.SP), true
	case "PC":
		return uint64(c.PC), true
	case "I":
		return uint64(c.I), true
	case "R":
		return uint64(c.R), true
	case "MBASE":
		return uint64(c.MBASE), true
	case "IM":
		return uint64(c.IM), true
	}
	return 0, false
}

// SetRegister writes a register by name, masking to its natural width.
func (d *Debugger) SetRegister(name string, value uint64) bool {
	c := d.e.CPU()
	switch strings.ToUpper(name) {
	case "A":
		c.A = byte(value)
	case "F":
		c.F = byte(value)
	case "BC":
		c.BC = uint32(value) & 0xFFFFFF
	case "DE":
		c.DE = uint32(value) & 0xFFFFFF
	case "HL":
		c.HL = uint32(value) & 0xFFFFFF
	case "IX":
		c.IX = uint32(value) & 0xFFFFFF
	case "IY":
		c.IY = uint32(value) & 0xFFFFFF
	case "SP":
		c.SP = uint32(value) & 0xFFFFFF
	case "PC":
		c.PC = uint32(value) & 0xFFFFFF
	case "I":
		c.I = uint16(value)
	case "R":
		c.R = byte(value)
	case "MBASE":
		c.MBASE = byte(value)
	case "IM":
		c.IM = cpu.IntMode(byte(value) % 3)
	default:
		return false
	}
	return true
}

func (d *Debugger) GetPC() uint32    { return d.e.CPU().PC }
func (d *Debugger) SetPC(addr uint32) { d.e.CPU().PC = addr & 0xFFFFFF }

// ReadMemory reads size bytes from the bus starting at addr, through the
// same decode path guest code observes (flash/RAM/MMIO/fallback).
func (d *Debugger) ReadMemory(addr uint32, size int) []byte {
	out := make([]byte, size)
	for i := range out {
		out[i] = d.e.Bus().ReadByte(addr + uint32(i))
	}
	return out
}

// WriteMemory writes data to the bus starting at addr.
func (d *Debugger) WriteMemory(addr uint32, data []byte) {
	for i, b := range data {
		d.e.Bus().WriteByte(addr+uint32(i), b)
	}
}

// SetBreakpoint/ClearBreakpoint/ClearAllBreakpoints/ListBreakpoints/
// HasBreakpoint manage a plain PC-address breakpoint set.
func (d *Debugger) SetBreakpoint(addr uint32) { d.breakpoints[addr] = true }

func (d *Debugger) ClearBreakpoint(addr uint32) bool {
	if _, ok := d.breakpoints[addr]; ok {
		delete(d.breakpoints, addr)
		return true
	}
	return false
}

func (d *Debugger) ClearAllBreakpoints() { d.breakpoints = make(map[uint32]bool) }

func (d *Debugger) ListBreakpoints() []uint32 {
	out := make([]uint32, 0, len(d.breakpoints))
	for addr := range d.breakpoints {
		out = append(out, addr)
	}
	return out
}

func (d *Debugger) HasBreakpoint(addr uint32) bool { return d.breakpoints[addr] }

// Step executes exactly one instruction boundary through the CPU,
// forwarding its cycle cost to the bus exactly as run_cycles would for a
// single step.
func (d *Debugger) Step() {
	c := d.e.CPU()
	c.SetRunning(true)
	c.Step()
}

// RunToBreakpoint steps until a breakpoint address is hit or maxSteps is
// reached (0 = unbounded), returning whether a breakpoint was hit.
func (d *Debugger) RunToBreakpoint(maxSteps int) bool {
	c := d.e.CPU()
	c.SetRunning(true)
	for i := 0; maxSteps <= 0 || i < maxSteps; i++ {
		c.Step()
		if d.breakpoints[c.PC] {
			return true
		}
	}
	return false
}

// PushSnapshot records the current register file and full RAM image into
// the backstep ring, overwriting the oldest entry once full.
func (d *Debugger) PushSnapshot() {
	ram := make([]byte, len(d.e.Bus().RAMBytes()))
	copy(ram, d.e.Bus().RAMBytes())

	d.ring[d.ringPos] = backstepEntry{cpuState: d.e.CPU().ExportState(), ram: ram}
	d.ringPos = (d.ringPos + 1) % backstepDepth
	if d.ringLen < backstepDepth {
		d.ringLen++
	}
}

// Backstep restores the most recently pushed snapshot and discards it,
// returning an error if the ring is empty.
func (d *Debugger) Backstep() error {
	if d.ringLen == 0 {
		return fmt.Errorf("debug: no snapshot to step back to")
	}
	d.ringPos = (d.ringPos - 1 + backstepDepth) % backstepDepth
	d.ringLen--

	entry := d.ring[d.ringPos]
	copy(d.e.Bus().RAMBytes(), entry.ram)
	d.e.CPU().ImportState(entry.cpuState)
	return nil
}
