package peripherals

import "testing"

func TestControlDefaults(t *testing.T) {
	c := NewControl()
	if !c.PoweredOn() {
		t.Fatal("control should power on by default")
	}
	if c.CPUSpeed() != 3 {
		t.Fatalf("default CPU speed = %d, want 3", c.CPUSpeed())
	}
}

func TestControlProtectedRangeRoundTrip(t *testing.T) {
	c := NewControl()
	c.WriteByte(controlRegProtStart, 0x00)
	c.WriteByte(controlRegProtStart+1, 0xD0)
	c.WriteByte(controlRegProtEnd, 0x00)
	c.WriteByte(controlRegProtEnd+1, 0xE0)
	start, end := c.ProtectedRange()
	if start != 0xD000 || end != 0xE000 {
		t.Fatalf("protected range = [%#x, %#x), want [0xd000, 0xe000)", start, end)
	}
}

func TestControlOnKeyLatchAck(t *testing.T) {
	c := NewControl()
	if c.AckOnKey() {
		t.Fatal("on-key latch should start clear")
	}
	c.RaiseOnKey()
	if !c.AckOnKey() {
		t.Fatal("expected latch to report set after RaiseOnKey")
	}
	if c.AckOnKey() {
		t.Fatal("AckOnKey should clear the latch")
	}
}

func TestControlOnLatchWriteOneToClear(t *testing.T) {
	c := NewControl()
	c.RaiseOnKey()
	c.WriteByte(controlRegOnLatch, 1)
	if c.AckOnKey() {
		t.Fatal("writing 1 to the latch register should clear it directly")
	}
}

func TestControlFlashUnlockGatesProtection(t *testing.T) {
	c := NewControl()
	c.WriteByte(controlRegFlashUnlock, 1)
	if !c.FlashUnlocked() {
		t.Fatal("flash unlock bit should be settable")
	}
}

func TestControlSetCPUSpeedHostSide(t *testing.T) {
	c := NewControl()
	c.SetCPUSpeed(1)
	if c.CPUSpeed() != 1 {
		t.Fatalf("CPUSpeed after SetCPUSpeed = %d, want 1", c.CPUSpeed())
	}
}

func TestControlStackLimitRoundTrip(t *testing.T) {
	c := NewControl()
	c.WriteByte(controlRegStackLimit, 0x00)
	c.WriteByte(controlRegStackLimit+1, 0x10)
	if c.StackLimit() != 0x1000 {
		t.Fatalf("stack limit = %#x, want 0x1000", c.StackLimit())
	}
}
