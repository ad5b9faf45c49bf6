package peripherals

import "testing"

func TestFlashDefaults(t *testing.T) {
	f := NewFlash()
	if !f.Enabled() {
		t.Fatal("flash should be enabled by default")
	}
	if f.MappedBytes() == 0 {
		t.Fatal("default size configuration should map a nonzero region")
	}
}

func TestFlashMappedBytesScalesWithMapSelect(t *testing.T) {
	f := NewFlash()
	f.WriteByte(flashRegMapSelect, 0x02)
	if got, want := f.MappedBytes(), uint32(0x10000<<2); got != want {
		t.Fatalf("MappedBytes = %#x, want %#x", got, want)
	}
}

func TestFlashMapSelectClampsOutOfRange(t *testing.T) {
	f := NewFlash()
	f.WriteByte(flashRegMapSelect, 0x0F) // masked to 0xF, >= 8 clamps to 0
	if got, want := f.MappedBytes(), uint32(0x10000); got != want {
		t.Fatalf("MappedBytes = %#x, want %#x", got, want)
	}
}

func TestFlashDisabledMapsNothing(t *testing.T) {
	f := NewFlash()
	f.WriteByte(flashRegEnable, 0x00)
	if f.MappedBytes() != 0 {
		t.Fatal("disabled flash must map zero bytes")
	}
}

func TestFlashImplausibleSizeConfigMapsNothing(t *testing.T) {
	f := NewFlash()
	f.WriteByte(flashRegSizeConfig, 0x40)
	if f.MappedBytes() != 0 {
		t.Fatal("size configuration above 0x3F should map zero bytes")
	}
}

func TestFlashWaitCycles(t *testing.T) {
	f := NewFlash()
	f.WriteByte(flashRegWaitStates, 4)
	if got, want := f.TotalWaitCycles(), 10; got != want {
		t.Fatalf("TotalWaitCycles = %d, want %d", got, want)
	}
}

func TestFlashUnmappedRegisterReadsFF(t *testing.T) {
	f := NewFlash()
	if f.ReadByte(0x03) != 0xFF {
		t.Fatal("unmapped flash register offsets should read 0xFF")
	}
}

func TestFlashControlBitIsolated(t *testing.T) {
	f := NewFlash()
	f.WriteByte(flashRegControl, 0xFE)
	if f.ReadByte(flashRegControl) != 0 {
		t.Fatal("control register should only retain bit 0")
	}
}
