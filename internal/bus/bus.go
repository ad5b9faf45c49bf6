// Package bus implements the eZ80 memory bus: address-range decode across
// flash, RAM/VRAM, and memory-mapped peripherals, plus the port-scratch
// fallback store for unmapped addresses.
package bus

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░

ce83 - a cycle-oriented TI-84 Plus CE emulator core
*/

const (
	FlashSize = 4 * 1024 * 1024
	FlashBase = 0x000000
	FlashEnd  = 0x400000 // exclusive

	RAMBase = 0xD00000
	RAMEnd  = 0xD65800 // exclusive
	RAMSize = RAMEnd - RAMBase

	MMIOBase = 0xE00000
	MMIOEnd  = 0x1000000 // exclusive, i.e. 0xFFFFFF inclusive

	FallbackSize = 0x200000
)

// Peripherals is the MMIO-side collaborator the bus dispatches to; it is
// satisfied by *peripherals.Set. Kept as an interface here so bus has no
// import-time dependency on the peripherals package's concrete types,
// mirroring the decoupling the teacher's MemoryBus/IORegion callback
// design achieves with plain function values.
type Peripherals interface {
	ReadByte(addr uint32) byte
	WriteByte(addr uint32, value byte)
	Tick(cycles int)
}

// TraceHook observes a completed bus access; it cannot veto or modify it.
// Registered by the orchestrator (internal/emu), which watches writes for
// protected-range violations.
type TraceHook func(write bool, addr uint32, value byte)

// Bus owns flash, RAM, the peripheral set, and the unmapped-address
// fallback store, and implements cpu.Bus.
type Bus struct {
	flash    []byte
	ram      []byte
	fallback []byte

	peripherals Peripherals

	hooks []TraceHook
}

// New constructs a Bus with empty flash/RAM and the given peripheral set.
func New(peripherals Peripherals) *Bus {
	return &Bus{
		flash:       make([]byte, FlashSize),
		ram:         make([]byte, RAMSize),
		fallback:    make([]byte, FallbackSize),
		peripherals: peripherals,
	}
}

// LoadFlash copies data into the flash image starting at offset 0,
// truncating or 0xFF-padding to FlashSize. Overlong images are truncated
// silently; the orchestrator is responsible for rejecting empty ROMs per
// the BadInput error kind before calling this.
func (b *Bus) LoadFlash(data []byte) {
	n := copy(b.flash, data)
	for i := n; i < len(b.flash); i++ {
		b.flash[i] = 0xFF
	}
}

// ResetRAM zeroes RAM without touching flash, per the reset contract
// ("Reset zeroes RAM/peripherals but preserves loaded flash").
func (b *Bus) ResetRAM() {
	for i := range b.ram {
		b.ram[i] = 0
	}
}

// AddTraceHook registers an observer invoked after every completed byte
// access. It never affects the access itself.
func (b *Bus) AddTraceHook(h TraceHook) { b.hooks = append(b.hooks, h) }

func (b *Bus) notify(write bool, addr uint32, value byte) {
	for _, h := range b.hooks {
		h(write, addr, value)
	}
}

// ReadByte decodes addr into flash, RAM, MMIO, or the fallback store.
func (b *Bus) ReadByte(addr uint32) byte {
	addr &= 0xFFFFFF
	var v byte
	switch {
	case addr < FlashEnd:
		v = b.flash[addr-FlashBase]
	case addr >= RAMBase && addr < RAMEnd:
		v = b.ram[addr-RAMBase]
	case addr >= MMIOBase:
		v = b.peripherals.ReadByte(addr)
	default:
		v = b.fallback[addr%FallbackSize]
	}
	b.notify(false, addr, v)
	return v
}

// WriteByte decodes addr the same way ReadByte does. Flash writes outside
// the flash controller's unlock path are dropped silently per §4.1; the
// flash controller itself lives in MMIO space and observes writes through
// its own registers, not through this path, so no special case is needed
// here beyond refusing to mutate the backing array.
func (b *Bus) WriteByte(addr uint32, value byte) {
	addr &= 0xFFFFFF
	switch {
	case addr < FlashEnd:
		// Dropped: flash is read-only from the CPU's perspective outside
		// the flash controller's own unlock sequence, which this bus does
		// not model as a distinct write path.
	case addr >= RAMBase && addr < RAMEnd:
		b.ram[addr-RAMBase] = value
	case addr >= MMIOBase:
		b.peripherals.WriteByte(addr, value)
	default:
		b.fallback[addr%FallbackSize] = value
	}
	b.notify(true, addr, value)
}

// ReadWord reads a little-endian 16-bit value.
func (b *Bus) ReadWord(addr uint32) uint32 {
	lo := uint32(b.ReadByte(addr))
	hi := uint32(b.ReadByte(addr + 1))
	return lo | hi<<8
}

// ReadAddr24 reads a little-endian 24-bit value, as used for ADL-mode
// pointers and IM2 vector targets.
func (b *Bus) ReadAddr24(addr uint32) uint32 {
	lo := uint32(b.ReadByte(addr))
	mid := uint32(b.ReadByte(addr + 1))
	hi := uint32(b.ReadByte(addr + 2))
	return lo | mid<<8 | hi<<16
}

// Tick forwards consumed cycles to the peripheral set.
func (b *Bus) Tick(cycles int) { b.peripherals.Tick(cycles) }

// RAMBytes/FlashBytes expose the backing arrays for save-state
// serialization and the LCD controller's VRAM reads; callers must not
// retain the slice across a Reset/LoadFlash call.
func (b *Bus) RAMBytes() []byte   { return b.ram }
func (b *Bus) FlashBytes() []byte { return b.flash }
