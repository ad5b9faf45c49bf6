package peripherals

import "testing"

// writeWord feeds a big-endian 32-bit message word to the accelerator's
// byte-oriented block registers, one byte at a time, the way the bus
// would when the guest does four consecutive byte stores into the same
// word slot.
func writeWord(s *SHA256, wordOffset uint32, v uint32) {
	s.WriteByte(wordOffset+0, byte(v))
	s.WriteByte(wordOffset+1, byte(v>>8))
	s.WriteByte(wordOffset+2, byte(v>>16))
	s.WriteByte(wordOffset+3, byte(v>>24))
}

// TestSHA256NISTSingleBlockABC compresses the single padded block for the
// three-byte message "abc" and checks the result against the well-known
// NIST test vector for SHA-256("abc").
func TestSHA256NISTSingleBlockABC(t *testing.T) {
	s := NewSHA256()

	words := [16]uint32{
		0x61626380, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0x18,
	}
	for i, w := range words {
		writeWord(s, 0x10+uint32(i)*4, w)
	}

	s.WriteByte(0x00, 0x0A) // load IV and compress in one write

	want := [8]uint32{
		0xba7816bf, 0x8f01cfea, 0x414140de, 0x5dae2223,
		0xb00361a3, 0x96177a9c, 0xb410ff61, 0xf20015ad,
	}
	if s.state != want {
		t.Fatalf("state = %08x, want %08x", s.state, want)
	}
}

func TestSHA256ClearBitZeroesState(t *testing.T) {
	s := NewSHA256()
	s.state = sha256IV
	s.WriteByte(0x00, 0x10)
	if s.state != ([8]uint32{}) {
		t.Fatal("clear bit should zero the state regardless of its prior value")
	}
}

func TestSHA256ControlWithoutTriggerBitsIsNoop(t *testing.T) {
	s := NewSHA256()
	s.WriteByte(0x00, 0x02) // matches neither 0x0E==0x0A nor 0x0A==0x0A
	if s.state != ([8]uint32{}) {
		t.Fatal("value 0x02 should not load the IV or compress")
	}
}

func TestSHA256QuickReadOfFinalWord(t *testing.T) {
	s := NewSHA256()
	s.state[7] = 0xAABBCCDD
	if got := s.ReadByte(0x0C); got != 0xDD {
		t.Fatalf("quick-read low byte = %#02x, want 0xdd", got)
	}
	if got := s.ReadByte(0x0F); got != 0xAA {
		t.Fatalf("quick-read high byte = %#02x, want 0xaa", got)
	}
}

func TestSHA256BlockWritesDoNotTouchState(t *testing.T) {
	s := NewSHA256()
	s.WriteByte(0x10, 0x42)
	if s.state != ([8]uint32{}) {
		t.Fatal("writing block data must not perturb state")
	}
	if s.block[0]&0xFF != 0x42 {
		t.Fatal("block byte write did not land in the expected word")
	}
}
