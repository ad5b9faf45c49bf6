package peripherals

// Snapshot is an exported, gob-friendly copy of every peripheral's
// persisted fields, letting the orchestrator's save-state support encode
// the entire peripheral set as a single blob without each controller
// needing its own bespoke serialization method.
type Snapshot struct {
	Control   ControlSnapshot
	Interrupt InterruptSnapshot
	Timers    TimersSnapshot
	LCD       LCDSnapshot
	Keypad    KeypadSnapshot
	Flash     FlashSnapshot
	SHA256    SHA256Snapshot
	RTC       RTCSnapshot
	Watchdog  WatchdogSnapshot
}

type ControlSnapshot struct {
	Power, CPUSpeed, FlashUnlock           byte
	ProtStart, ProtEnd, StackLimit         uint32
	Backlight, OnLatch                     byte
}

type InterruptSnapshot struct {
	Status, Enabled, Raw uint32
}

type timerUnitSnapshot struct {
	Counter, Reload, Match0, Match1 uint32
}

type TimersSnapshot struct {
	Unit                   [3]timerUnitSnapshot
	Control, Status, Mask  uint32
	Accum                  [3]uint32
}

type LCDSnapshot struct {
	Timing                        [4]uint32
	Control                       uint32
	IMSC, RIS                     byte
	Upbase, Lpbase, Upcurr, Lpcurr uint32
	Palette                       [512]byte
	FrameCycles                   uint32
}

type KeypadSnapshot struct {
	Matrix   [KeypadRows][KeypadCols]bool
	ScanMode byte
	Active   byte
	PrevAny  bool
}

type FlashSnapshot struct {
	Enable, SizeConfig, MapSelect, WaitStates, Control byte
}

type SHA256Snapshot struct {
	Block [16]uint32
	State [8]uint32
}

type RTCSnapshot struct {
	Control, Interrupt, LatchedSec, LatchedMin, LatchedHour byte
	LatchedDay                                              uint16
}

type WatchdogSnapshot struct {
	Control byte
	Load    uint32
	Interrupt, Lock byte
}

// Export captures the live state of every controller in the set.
func (s *Set) Export() Snapshot {
	var snap Snapshot

	snap.Control = ControlSnapshot{
		Power: s.Control.power, CPUSpeed: s.Control.cpuSpeed, FlashUnlock: s.Control.flashUnlock,
		ProtStart: s.Control.protStart, ProtEnd: s.Control.protEnd, StackLimit: s.Control.stackLimit,
		Backlight: s.Control.backlight, OnLatch: s.Control.onLatch,
	}
	snap.Interrupt = InterruptSnapshot{Status: s.Interrupt.status, Enabled: s.Interrupt.enabled, Raw: s.Interrupt.raw}

	for i, u := range s.Timers.unit {
		snap.Timers.Unit[i] = timerUnitSnapshot{Counter: u.counter, Reload: u.reload, Match0: u.match0, Match1: u.match1}
	}
	snap.Timers.Control, snap.Timers.Status, snap.Timers.Mask = s.Timers.control, s.Timers.status, s.Timers.mask
	snap.Timers.Accum = s.Timers.accum

	snap.LCD = LCDSnapshot{
		Timing: s.LCD.timing, Control: s.LCD.control, IMSC: s.LCD.imsc, RIS: s.LCD.ris,
		Upbase: s.LCD.upbase, Lpbase: s.LCD.lpbase, Upcurr: s.LCD.upcurr, Lpcurr: s.LCD.lpcurr,
		Palette: s.LCD.palette, FrameCycles: s.LCD.frameCycles,
	}

	snap.Keypad = KeypadSnapshot{Matrix: s.Keypad.matrix, ScanMode: s.Keypad.scanMode, Active: s.Keypad.active, PrevAny: s.Keypad.prevAny}

	snap.Flash = FlashSnapshot{
		Enable: s.Flash.enable, SizeConfig: s.Flash.sizeConfig, MapSelect: s.Flash.mapSelect,
		WaitStates: s.Flash.waitStates, Control: s.Flash.control,
	}

	snap.SHA256 = SHA256Snapshot{Block: s.SHA256.block, State: s.SHA256.state}

	snap.RTC = RTCSnapshot{
		Control: s.RTC.control, Interrupt: s.RTC.interrupt, LatchedSec: s.RTC.latchedSec,
		LatchedMin: s.RTC.latchedMin, LatchedHour: s.RTC.latchedHour, LatchedDay: s.RTC.latchedDay,
	}

	snap.Watchdog = WatchdogSnapshot{Control: s.Watchdog.control, Load: s.Watchdog.load, Interrupt: s.Watchdog.interrupt, Lock: s.Watchdog.lock}

	return snap
}

// Import restores every controller in the set from a prior Export. The
// fallback port-scratch store is left untouched by design: it holds no
// guest-observable semantics beyond "last value written to an unmapped
// port", which load_state does not need to reproduce exactly.
func (s *Set) Import(snap Snapshot) {
	s.Control.power, s.Control.cpuSpeed, s.Control.flashUnlock = snap.Control.Power, snap.Control.CPUSpeed, snap.Control.FlashUnlock
	s.Control.protStart, s.Control.protEnd, s.Control.stackLimit = snap.Control.ProtStart, snap.Control.ProtEnd, snap.Control.StackLimit
	s.Control.backlight, s.Control.onLatch = snap.Control.Backlight, snap.Control.OnLatch

	s.Interrupt.status, s.Interrupt.enabled, s.Interrupt.raw = snap.Interrupt.Status, snap.Interrupt.Enabled, snap.Interrupt.Raw

	for i, u := range snap.Timers.Unit {
		s.Timers.unit[i] = timerUnit{counter: u.Counter, reload: u.Reload, match0: u.Match0, match1: u.Match1}
	}
	s.Timers.control, s.Timers.status, s.Timers.mask = snap.Timers.Control, snap.Timers.Status, snap.Timers.Mask
	s.Timers.accum = snap.Timers.Accum

	s.LCD.timing = snap.LCD.Timing
	s.LCD.control, s.LCD.imsc, s.LCD.ris = snap.LCD.Control, snap.LCD.IMSC, snap.LCD.RIS
	s.LCD.upbase, s.LCD.lpbase, s.LCD.upcurr, s.LCD.lpcurr = snap.LCD.Upbase, snap.LCD.Lpbase, snap.LCD.Upcurr, snap.LCD.Lpcurr
	s.LCD.palette = snap.LCD.Palette
	s.LCD.frameCycles = snap.LCD.FrameCycles

	s.Keypad.matrix = snap.Keypad.Matrix
	s.Keypad.scanMode, s.Keypad.active, s.Keypad.prevAny = snap.Keypad.ScanMode, snap.Keypad.Active, snap.Keypad.PrevAny

	s.Flash.enable, s.Flash.sizeConfig, s.Flash.mapSelect = snap.Flash.Enable, snap.Flash.SizeConfig, snap.Flash.MapSelect
	s.Flash.waitStates, s.Flash.control = snap.Flash.WaitStates, snap.Flash.Control

	s.SHA256.block, s.SHA256.state = snap.SHA256.Block, snap.SHA256.State

	s.RTC.control, s.RTC.interrupt = snap.RTC.Control, snap.RTC.Interrupt
	s.RTC.latchedSec, s.RTC.latchedMin, s.RTC.latchedHour, s.RTC.latchedDay = snap.RTC.LatchedSec, snap.RTC.LatchedMin, snap.RTC.LatchedHour, snap.RTC.LatchedDay

	s.Watchdog.control, s.Watchdog.load, s.Watchdog.interrupt, s.Watchdog.lock = snap.Watchdog.Control, snap.Watchdog.Load, snap.Watchdog.Interrupt, snap.Watchdog.Lock
}
