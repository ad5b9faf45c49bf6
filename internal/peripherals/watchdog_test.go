package peripherals

import "testing"

func TestWatchdogDefaultLoad(t *testing.T) {
	w := NewWatchdog()
	if w.load != 0xFFFFFFFF {
		t.Fatalf("default load = %#x, want 0xffffffff", w.load)
	}
}

func TestWatchdogLoadRoundTrip(t *testing.T) {
	w := NewWatchdog()
	w.WriteByte(0x00, 0xAD)
	w.WriteByte(0x01, 0xDE)
	w.WriteByte(0x02, 0xEF)
	w.WriteByte(0x03, 0xBE)
	if w.load != 0xBEEFDEAD {
		t.Fatalf("load = %#08x, want 0xbeefdead", w.load)
	}
}

func TestWatchdogControlLockedAgainstWrites(t *testing.T) {
	w := NewWatchdog()
	w.WriteByte(0xC0, 1) // lock
	w.WriteByte(0x08, 0xFF)
	if w.control != 0 {
		t.Fatal("control should be unwritable once locked")
	}
	w.WriteByte(0xC0, 0) // unlock
	w.WriteByte(0x08, 0xFF)
	if w.control != 0xFF {
		t.Fatal("control should be writable again once unlocked")
	}
}

func TestWatchdogNeverExpires(t *testing.T) {
	w := NewWatchdog()
	w.WriteByte(0x08, 0x01)
	if w.ReadByte(0x0C) != 0 {
		t.Fatal("stub watchdog must never report an expiry condition")
	}
}

func TestWatchdogRevisionRegister(t *testing.T) {
	w := NewWatchdog()
	var v uint32
	for i := uint32(0); i < 4; i++ {
		v |= uint32(w.ReadByte(0xFC+i)) << (i * 8)
	}
	if v != watchdogRevision {
		t.Fatalf("revision = %#08x, want %#08x", v, watchdogRevision)
	}
}
