package peripherals

import "testing"

func TestKeypadRowBitsInverted(t *testing.T) {
	k := NewKeypad()
	k.SetKey(2, 3, true)
	got := k.ReadByte(keypadRegRow0 + 2)
	if got&(1<<3) != 0 {
		t.Fatalf("pressed key bit should read 0, got row byte %#02x", got)
	}
	if got != 0xF7 { // all bits set except bit 3
		t.Fatalf("row byte = %#02x, want %#02x", got, 0xF7)
	}
}

func TestKeypadNoKeysAllOnes(t *testing.T) {
	k := NewKeypad()
	if k.ReadByte(keypadRegRow0) != 0xFF {
		t.Fatal("an idle row should read all ones")
	}
}

func TestKeypadInterruptRisingEdgeOnly(t *testing.T) {
	k := NewKeypad()
	if k.CheckInterrupt() {
		t.Fatal("no interrupt should fire with nothing pressed")
	}
	k.SetKey(0, 0, true)
	if !k.CheckInterrupt() {
		t.Fatal("expected a rising-edge interrupt on first key press")
	}
	if k.CheckInterrupt() {
		t.Fatal("interrupt should not re-fire while the key stays held")
	}
	k.SetKey(0, 0, false)
	k.CheckInterrupt()
	k.SetKey(0, 0, true)
	if !k.CheckInterrupt() {
		t.Fatal("expected a new rising edge after release and re-press")
	}
}

func TestKeypadOutOfRangeIgnored(t *testing.T) {
	k := NewKeypad()
	k.SetKey(99, -1, true)
	if k.anyPressed() {
		t.Fatal("out-of-range SetKey should be a no-op")
	}
}

func TestKeypadScanModeRoundTrip(t *testing.T) {
	k := NewKeypad()
	k.WriteByte(keypadRegScanMode, 0x07)
	if k.ReadByte(keypadRegScanMode) != 0x07 {
		t.Fatal("scan mode register should round trip")
	}
}
