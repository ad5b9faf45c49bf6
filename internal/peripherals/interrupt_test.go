package peripherals

import "testing"

func TestInterruptRaiseAndClear(t *testing.T) {
	ic := NewInterruptController()
	ic.WriteByte(0x04, byte(SourceTimer1)) // enable timer1

	ic.Raise(SourceTimer1)
	if !ic.Pending() {
		t.Fatal("expected pending after raise with matching enable bit")
	}

	// status is write-1-to-clear at offset 0.
	ic.WriteByte(0x00, byte(SourceTimer1))
	if ic.Pending() {
		t.Fatal("status ack should clear pending")
	}
	// raw stays latched until explicitly cleared.
	if ic.ReadByte(0x08) == 0 {
		t.Fatal("raw should remain set after status ack")
	}

	ic.ClearRaw(SourceTimer1)
	if ic.ReadByte(0x08) != 0 {
		t.Fatal("ClearRaw should clear raw")
	}
}

func TestInterruptDisabledSourceDoesNotPend(t *testing.T) {
	ic := NewInterruptController()
	ic.Raise(SourceKeypad)
	if ic.Pending() {
		t.Fatal("a source that is not enabled should not report pending")
	}
}

func TestInterruptRawIsReadOnly(t *testing.T) {
	ic := NewInterruptController()
	ic.WriteByte(0x08, 0xFF)
	if ic.ReadByte(0x08) != 0 {
		t.Fatal("raw register must ignore writes")
	}
}
