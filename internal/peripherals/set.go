// Package peripherals implements the memory-mapped controllers the CPU
// observes through the bus: control ports, interrupt controller, general-
// purpose timers, LCD, keypad, flash controller, SHA-256 accelerator, and
// RTC/watchdog stubs.
package peripherals

import "fmt"

// Interrupt source bits shared with the CPU-facing IRQ line, per §3.
const (
	SourceONKey = SourceOn
)

// MMIO sub-ranges, offsets from 0xE00000, per §3/§4.x and the addresses
// named in the reference controllers. The SHA-256 accelerator has no
// memory-mapped base in the reference material (only an I/O port number);
// 0xF40000 is this implementation's own placement, documented as such.
const (
	Base = 0xE00000

	controlOffset    = 0x000000
	controlAltOffset = 0x1F0000
	controlSize      = 0x100

	flashCtrlOffset = 0x010000
	flashCtrlSize   = 0x100

	lcdOffset = 0x030000
	lcdSize   = 0x1000

	intOffset = 0x100000
	intSize   = 0x20

	timerOffset = 0x120000
	timerSize   = 0x40

	keypadOffset = 0x150000
	keypadSize   = 0x40

	watchdogOffset = 0x160000
	watchdogSize   = 0x100

	sha256Offset = 0x140000
	sha256Size   = 0x100

	rtcOffset = 0x180000
	rtcSize   = 0x100

	fallbackSize = 0x200000
)

// Set aggregates every memory-mapped controller and implements
// bus.Peripherals by range-decoding addresses the same way the CPU/bus
// decodes flash vs RAM vs MMIO.
type Set struct {
	Control  *Control
	Interrupt *InterruptController
	Timers   *Timers
	LCD      *LCD
	Keypad   *Keypad
	Flash    *Flash
	SHA256   *SHA256
	RTC      *RTC
	Watchdog *Watchdog

	fallback []byte
}

func NewSet() *Set {
	return &Set{
		Control:   NewControl(),
		Interrupt: NewInterruptController(),
		Timers:    NewTimers(),
		LCD:       NewLCD(),
		Keypad:    NewKeypad(),
		Flash:     NewFlash(),
		SHA256:    NewSHA256(),
		RTC:       NewRTC(),
		Watchdog:  NewWatchdog(),
		fallback:  make([]byte, fallbackSize),
	}
}

func (s *Set) Reset() {
	s.Control.Reset()
	s.Interrupt.Reset()
	s.Timers.Reset()
	s.LCD.Reset()
	s.Keypad.Reset()
	s.Flash.Reset()
	s.SHA256.Reset()
	s.RTC.Reset()
	s.Watchdog.Reset()
	for i := range s.fallback {
		s.fallback[i] = 0
	}
}

func (s *Set) ReadByte(addr uint32) byte {
	off := addr - Base
	switch {
	case off >= controlOffset && off < controlOffset+controlSize:
		return s.Control.ReadByte(off - controlOffset)
	case off >= controlAltOffset && off < controlAltOffset+controlSize:
		return s.Control.ReadByte(off - controlAltOffset)
	case off >= flashCtrlOffset && off < flashCtrlOffset+flashCtrlSize:
		return s.Flash.ReadByte(off - flashCtrlOffset)
	case off >= lcdOffset && off < lcdOffset+lcdSize:
		return s.LCD.ReadByte(off - lcdOffset)
	case off >= intOffset && off < intOffset+intSize:
		return s.Interrupt.ReadByte(off - intOffset)
	case off >= timerOffset && off < timerOffset+timerSize:
		return s.Timers.ReadByte(off - timerOffset)
	case off >= keypadOffset && off < keypadOffset+keypadSize:
		return s.Keypad.ReadByte(off - keypadOffset)
	case off >= sha256Offset && off < sha256Offset+sha256Size:
		return s.SHA256.ReadByte(off - sha256Offset)
	case off >= watchdogOffset && off < watchdogOffset+watchdogSize:
		return s.Watchdog.ReadByte(off - watchdogOffset)
	case off >= rtcOffset && off < rtcOffset+rtcSize:
		return s.RTC.ReadByte(off - rtcOffset)
	default:
		return s.fallback[off%fallbackSize]
	}
}

func (s *Set) WriteByte(addr uint32, value byte) {
	off := addr - Base
	switch {
	case off >= controlOffset && off < controlOffset+controlSize:
		s.Control.WriteByte(off-controlOffset, value)
	case off >= controlAltOffset && off < controlAltOffset+controlSize:
		s.Control.WriteByte(off-controlAltOffset, value)
	case off >= flashCtrlOffset && off < flashCtrlOffset+flashCtrlSize:
		s.Flash.WriteByte(off-flashCtrlOffset, value)
	case off >= lcdOffset && off < lcdOffset+lcdSize:
		s.LCD.WriteByte(off-lcdOffset, value)
	case off >= intOffset && off < intOffset+intSize:
		s.Interrupt.WriteByte(off-intOffset, value)
	case off >= timerOffset && off < timerOffset+timerSize:
		s.Timers.WriteByte(off-timerOffset, value)
	case off >= keypadOffset && off < keypadOffset+keypadSize:
		s.Keypad.WriteByte(off-keypadOffset, value)
	case off >= sha256Offset && off < sha256Offset+sha256Size:
		s.SHA256.WriteByte(off-sha256Offset, value)
	case off >= watchdogOffset && off < watchdogOffset+watchdogSize:
		s.Watchdog.WriteByte(off-watchdogOffset, value)
	case off >= rtcOffset && off < rtcOffset+rtcSize:
		s.RTC.WriteByte(off-rtcOffset, value)
	default:
		s.fallback[off%fallbackSize] = value
	}
}

// Tick advances every peripheral by cycles CPU cycles and raises whichever
// interrupt-controller sources became pending as a result, mirroring the
// orchestration in the reference peripheral dispatcher's own tick method.
func (s *Set) Tick(cycles int) {
	fired := s.Timers.Tick(uint32(cycles), s.Control.CPUSpeed())
	if fired&0x1 != 0 {
		s.Interrupt.Raise(SourceTimer1)
	}
	if fired&0x2 != 0 {
		s.Interrupt.Raise(SourceTimer2)
	}
	if fired&0x4 != 0 {
		s.Interrupt.Raise(SourceTimer3)
	}

	if s.LCD.Tick(uint32(cycles)) {
		s.Interrupt.Raise(SourceLCD)
	}

	if s.Keypad.CheckInterrupt() {
		s.Interrupt.Raise(SourceKeypad)
	}

	if s.Control.AckOnKey() {
		s.Interrupt.Raise(SourceONKey)
	}
}

// IRQPending reports whether the interrupt controller currently wants the
// CPU's maskable interrupt line asserted.
func (s *Set) IRQPending() bool { return s.Interrupt.Pending() }

// SetKey updates the keypad's host-mirrored matrix; out-of-range
// coordinates are rejected with an error rather than silently ignored,
// since this is driven directly by host/script input rather than guest
// code.
func (s *Set) SetKey(row, col int, pressed bool) error {
	if row < 0 || row >= KeypadRows || col < 0 || col >= KeypadCols {
		return fmt.Errorf("peripherals: key (%d,%d) out of range", row, col)
	}
	s.Keypad.SetKey(row, col, pressed)
	return nil
}
