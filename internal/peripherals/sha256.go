package peripherals

import "math/bits"

// sha256K holds the FIPS 180-4 round constants.
var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

var sha256IV = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// SHA256 implements the single-block compression accelerator described in
// §3: a 64-byte input block and 8-word state, driven entirely by writes to
// the control byte at offset 0. There is no streaming/multi-block framing
// here beyond what repeated control-byte writes already provide; the
// accelerator compresses exactly one block per triggering write, matching
// the hardware contract.
type SHA256 struct {
	block [16]uint32
	state [8]uint32
}

func NewSHA256() *SHA256 { return &SHA256{} }

func (s *SHA256) Reset() { s.block = [16]uint32{}; s.state = [8]uint32{} }

func (s *SHA256) processBlock() {
	var w [64]uint32
	copy(w[:16], s.block[:])
	for i := 16; i < 64; i++ {
		s0 := bits.RotateLeft32(w[i-15], -7) ^ bits.RotateLeft32(w[i-15], -18) ^ (w[i-15] >> 3)
		s1 := bits.RotateLeft32(w[i-2], -17) ^ bits.RotateLeft32(w[i-2], -19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, d, e, f, g, h := s.state[0], s.state[1], s.state[2], s.state[3], s.state[4], s.state[5], s.state[6], s.state[7]
	for i := 0; i < 64; i++ {
		s0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := s0 + maj
		s1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		ch := (e & f) ^ (^e & g)
		t1 := h + s1 + ch + sha256K[i] + w[i]

		h, g, f = g, f, e
		e = d + t1
		d, c, b = c, b, a
		a = t1 + t2
	}

	s.state[0] += a
	s.state[1] += b
	s.state[2] += c
	s.state[3] += d
	s.state[4] += e
	s.state[5] += f
	s.state[6] += g
	s.state[7] += h
}

func (s *SHA256) ReadByte(offset uint32) byte {
	idx := offset >> 2
	shift := (offset & 3) * 8
	switch {
	case idx == 0x0C>>2:
		return byte(s.state[7] >> shift)
	case idx >= 0x10>>2 && idx < 0x50>>2:
		if i := idx - 0x10>>2; i < 16 {
			return byte(s.block[i] >> shift)
		}
	case idx >= 0x60>>2 && idx < 0x80>>2:
		if i := idx - 0x60>>2; i < 8 {
			return byte(s.state[i] >> shift)
		}
	}
	return 0
}

func (s *SHA256) WriteByte(offset uint32, value byte) {
	if offset == 0 {
		// Independent conditions, not an else-if chain: 0x0A matches both
		// the IV-load and the compress condition, giving "hash first
		// block" in a single write.
		if value&0x10 != 0 {
			s.state = [8]uint32{}
			return
		}
		if value&0x0E == 0x0A {
			s.state = sha256IV
		}
		if value&0x0A == 0x0A {
			s.processBlock()
		}
		return
	}
	idx := offset >> 2
	shift := (offset & 3) * 8
	if idx >= 0x10>>2 && idx < 0x50>>2 {
		if i := idx - 0x10>>2; i < 16 {
			mask := ^(uint32(0xFF) << shift)
			s.block[i] = (s.block[i] & mask) | (uint32(value) << shift)
		}
	}
}
