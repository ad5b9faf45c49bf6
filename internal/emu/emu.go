// Package emu implements the scheduler/orchestrator that drives the CPU,
// bus, and peripheral set as a single cooperative unit: loading a ROM,
// stepping cycles, rendering the LCD framebuffer, handling key input, and
// saving/loading full machine state.
package emu

import (
	"fmt"

	"github.com/zotley/ce83/internal/bus"
	"github.com/zotley/ce83/internal/cpu"
	"github.com/zotley/ce83/internal/peripherals"
)

// Emu owns a CPU, its bus, and the peripheral set hanging off that bus, and
// is the sole driver of all three for the lifetime of any entry point
// below; nothing else is permitted to step the CPU or tick the bus.
type Emu struct {
	cpu    *cpu.CPU
	bus    *bus.Bus
	periph *peripherals.Set

	cfg Config

	framebuffer []byte

	// nmiArmed latches a protected-write or stack-limit violation detected
	// between RunCycles steps; it is turned into a one-step NMI pulse on
	// the next iteration of the run loop.
	nmiArmed bool
}

// New constructs an Emu with no ROM loaded and the CPU at its reset
// state. Passing no options matches stock hardware defaults.
func New(opts ...Option) *Emu {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	set := peripherals.NewSet()
	set.Control.SetCPUSpeed(cfg.cpuSpeed)

	b := bus.New(set)
	c := cpu.New(b)

	e := &Emu{
		cpu:         c,
		bus:         b,
		periph:      set,
		cfg:         cfg,
		framebuffer: make([]byte, peripherals.Width*peripherals.Height*4),
	}
	b.AddTraceHook(e.observeWrite)
	return e
}

// observeWrite is the bus trace hook that turns a write into the protected
// address range into a pending NMI, per the control-port "protected_start/
// protected_end: range that traps NMI on write" contract. It never vetoes
// the write itself; the bus has already committed it by the time this
// fires.
func (e *Emu) observeWrite(write bool, addr uint32, value byte) {
	if !write {
		return
	}
	start, end := e.periph.Control.ProtectedRange()
	if end <= start {
		return
	}
	if addr >= start && addr < end && !e.periph.Control.FlashUnlocked() {
		e.nmiArmed = true
		e.cfg.logSink(LevelWarn, "emu", "protected write at %#06x (value %#02x)", addr, value)
	}
}

// LoadROM copies data into the flash image starting at address 0, rejects
// a nil or empty image, and resets the CPU and peripherals. It does not
// power the machine on; call PowerOn (or raise the on-key) separately.
func (e *Emu) LoadROM(data []byte) error {
	if data == nil {
		return fmt.Errorf("load rom: %w", ErrBadInput)
	}
	if len(data) == 0 {
		return fmt.Errorf("load rom: empty image: %w", ErrBadInput)
	}
	e.bus.LoadFlash(data)
	e.Reset()
	return nil
}

// Reset zeroes RAM, resets every peripheral, and resets the CPU to its
// power-on register state (PC=0, SP=0xFFFFFF, ADL=1).
func (e *Emu) Reset() {
	e.bus.ResetRAM()
	e.periph.Reset()
	e.periph.Control.SetCPUSpeed(e.cfg.cpuSpeed)
	e.cpu.Reset()
	e.nmiArmed = false
}

// PowerOn simulates the ON-key wake path: it raises the latched on-key
// source so the next peripheral tick turns it into a maskable interrupt,
// the same path a guest-observed physical key press takes.
func (e *Emu) PowerOn() {
	e.periph.Control.RaiseOnKey()
}

// RunCycles single-steps the CPU until at least n cycles have been
// consumed (the final instruction may overshoot n), resynchronizing the
// CPU's IRQ line from the interrupt controller and promoting any armed NMI
// condition to a one-step pulse after every step. It returns the number of
// cycles actually consumed.
func (e *Emu) RunCycles(n int) int {
	if n <= 0 {
		return 0
	}
	start := e.cpu.Cycles
	for e.cpu.Cycles-start < uint64(n) {
		armed := e.nmiArmed
		if armed {
			e.cpu.SetNMILine(true)
		}
		e.cpu.Step()
		if armed {
			e.cpu.SetNMILine(false)
			e.nmiArmed = false
		}

		e.cpu.SetIRQLine(e.periph.IRQPending())

		if limit := e.periph.Control.StackLimit(); limit != 0 && e.cpu.SP < limit {
			e.nmiArmed = true
			e.cfg.logSink(LevelWarn, "emu", "stack pointer %#06x below limit %#06x", e.cpu.SP, limit)
		}
	}
	return int(e.cpu.Cycles - start)
}

// SetKey updates the keypad matrix at (row, col); out-of-range coordinates
// are rejected rather than silently ignored, since they indicate a host/
// script bug rather than guest behavior.
func (e *Emu) SetKey(row, col int, down bool) error {
	if err := e.periph.SetKey(row, col, down); err != nil {
		return fmt.Errorf("set key: %w: %v", ErrBadInput, err)
	}
	return nil
}

// SetOnKey is the dedicated ON-key path: pressing it also raises the
// on-key wake latch, distinct from the 8x8 matrix SetKey covers.
func (e *Emu) SetOnKey(down bool) {
	if down {
		e.periph.Control.RaiseOnKey()
	}
}

// Backlight reports the current backlight byte (0..255, output-only from
// the guest's perspective).
func (e *Emu) Backlight() byte { return e.periph.Control.Backlight() }

// LCDOn reports whether the display is currently producing a non-black
// frame: the machine must be powered, and the LCD controller's own enable
// and power bits must both be set.
func (e *Emu) LCDOn() bool {
	return e.periph.Control.PoweredOn() && e.periph.LCD.Enabled() && e.periph.LCD.Powered()
}

// CPUType mirrors the teacher's DebuggableCPU.CPUName() contract for this
// core's single CPU kind.
func (e *Emu) CPUType() string { return "eZ80" }

// CPU and Bus expose the driven CPU/bus directly for the debug adapter,
// which is a thin wrapper over the same Step/tick path RunCycles uses
// rather than a second execution path.
func (e *Emu) CPU() *cpu.CPU          { return e.cpu }
func (e *Emu) Bus() *bus.Bus          { return e.bus }
func (e *Emu) Peripherals() *peripherals.Set { return e.periph }
