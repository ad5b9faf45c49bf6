package cpu

// initCBOps builds the CB-prefixed table: rotate/shift (x=0), BIT (x=1),
// RES (x=2), SET (x=3), each spanning all 8 z-coded operands. Built with
// the same range-loop idiom as the base table rather than 256 individual
// hand-written cases.
func (c *CPU) initCBOps() {
	rotates := [8]func(*CPU, byte) byte{
		(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
		(*CPU).sla, (*CPU).sra, (*CPU).sll, (*CPU).srl,
	}

	for y := byte(0); y < 8; y++ {
		fn := rotates[y]
		for z := byte(0); z < 8; z++ {
			zz := z
			opcode := y<<3 | zz
			c.cbOps[opcode] = func(cpu *CPU) {
				v := cpu.readReg8Plain(zz)
				result := fn(cpu, v)
				cpu.writeReg8Plain(zz, result)
				if zz == 6 {
					cpu.tick(15)
				} else {
					cpu.tick(8)
				}
			}
		}
	}

	for bit := byte(0); bit < 8; bit++ {
		b := bit
		for z := byte(0); z < 8; z++ {
			zz := z
			opcode := 0x40 | b<<3 | zz
			c.cbOps[opcode] = func(cpu *CPU) {
				v := cpu.readReg8Plain(zz)
				cpu.bitTest(b, v)
				if zz == 6 {
					cpu.tick(12)
				} else {
					cpu.tick(8)
				}
			}
		}
	}

	for bit := byte(0); bit < 8; bit++ {
		b := bit
		for z := byte(0); z < 8; z++ {
			zz := z
			opcode := 0x80 | b<<3 | zz
			c.cbOps[opcode] = func(cpu *CPU) {
				v := cpu.readReg8Plain(zz) &^ (1 << b)
				cpu.writeReg8Plain(zz, v)
				if zz == 6 {
					cpu.tick(15)
				} else {
					cpu.tick(8)
				}
			}
		}
	}

	for bit := byte(0); bit < 8; bit++ {
		b := bit
		for z := byte(0); z < 8; z++ {
			zz := z
			opcode := 0xC0 | b<<3 | zz
			c.cbOps[opcode] = func(cpu *CPU) {
				v := cpu.readReg8Plain(zz) | (1 << b)
				cpu.writeReg8Plain(zz, v)
				if zz == 6 {
					cpu.tick(15)
				} else {
					cpu.tick(8)
				}
			}
		}
	}
}

// execIndexedCB runs the DD CB d op / FD CB d op sub-chain: a displacement
// byte, then a CB-style opcode that always addresses (IX+d)/(IY+d)
// regardless of its z field. The undocumented "also store to register r"
// side effect some silicon exhibits on this form is not modeled; only the
// memory operand is affected, which is sufficient for boot-ROM behavior.
func (c *CPU) execIndexedCB(prefix byte) {
	c.prefixMode = prefix
	d := c.fetchSignedByte()
	opcode := c.fetchByte()
	addr := c.maskAddr(*c.indexPair() + uint32(int32(d)))

	x := opcode >> 6
	y := (opcode >> 3) & 7
	v := c.readByte(addr)

	switch x {
	case 0:
		rotates := [8]func(*CPU, byte) byte{
			(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
			(*CPU).sla, (*CPU).sra, (*CPU).sll, (*CPU).srl,
		}
		result := rotates[y](c, v)
		c.writeByte(addr, result)
		c.tick(23)
	case 1:
		c.bitTest(y, v)
		c.tick(20)
	case 2:
		c.writeByte(addr, v&^(1<<y))
		c.tick(23)
	case 3:
		c.writeByte(addr, v|(1<<y))
		c.tick(23)
	}
}
