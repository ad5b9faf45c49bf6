package cpu

// initBaseOps builds the 256-entry un-prefixed opcode table. Following the
// source engine's own style, the bulk of the table is generated from small
// loops over the opcode's x/y/z/p/q decomposition rather than hand-written
// one opcode at a time; only the irregular x=0 and x=3 groups get explicit
// per-opcode assignments.
func (c *CPU) initBaseOps() {
	for i := range c.baseOps {
		op := byte(i)
		c.baseOps[op] = func(cpu *CPU) { cpu.unimplemented(op) }
	}

	c.initX0Ops()

	// x=1: LD r,r' for every (y,z) pair except y==z==6 (HALT).
	for op := 0x40; op <= 0x7F; op++ {
		opcode := byte(op)
		y := (opcode >> 3) & 7
		z := opcode & 7
		if y == 6 && z == 6 {
			continue
		}
		c.baseOps[opcode] = func(cpu *CPU) { cpu.opLDRegReg(y, z) }
	}
	c.baseOps[0x76] = func(cpu *CPU) { cpu.opHalt() }

	// x=2: ALU A,r for each of the 8 operations across all 8 r codes.
	for aluOp := byte(0); aluOp < 8; aluOp++ {
		base := 0x80 + int(aluOp)*8
		for z := byte(0); z < 8; z++ {
			opcode := byte(base) + z
			op, zz := aluOp, z
			c.baseOps[opcode] = func(cpu *CPU) { cpu.opALUReg(op, zz) }
		}
	}

	c.initX3Ops()
}

func (c *CPU) initX0Ops() {
	c.baseOps[0x00] = func(cpu *CPU) { cpu.tick(4) } // NOP
	c.baseOps[0x08] = func(cpu *CPU) { cpu.exAF(); cpu.tick(4) }
	c.baseOps[0x10] = func(cpu *CPU) { cpu.opDJNZ() }
	c.baseOps[0x18] = func(cpu *CPU) { cpu.opJR(true) }
	c.baseOps[0x20] = func(cpu *CPU) { cpu.opJR(!cpu.flag(flagZ)) }
	c.baseOps[0x28] = func(cpu *CPU) { cpu.opJR(cpu.flag(flagZ)) }
	c.baseOps[0x30] = func(cpu *CPU) { cpu.opJR(!cpu.flag(flagC)) }
	c.baseOps[0x38] = func(cpu *CPU) { cpu.opJR(cpu.flag(flagC)) }

	// LD rr,nn / ADD HL,rr / INC rr / DEC rr / INC r / DEC r / LD r,n for
	// each of the four pair groups BC,DE,HL(or IX/IY),SP.
	for p := byte(0); p < 4; p++ {
		pp := p
		base := byte(pp) << 4
		c.baseOps[base+0x01] = func(cpu *CPU) { *cpu.regPair16(pp) = cpu.maskAddr(cpu.fetchAddrOperand()) }
		c.baseOps[base+0x09] = func(cpu *CPU) { cpu.addHL16(cpu.indexPair(), *cpu.regPair16(pp)); cpu.tick(9) }
		c.baseOps[base+0x03] = func(cpu *CPU) { *cpu.regPair16(pp) = cpu.maskAddr(*cpu.regPair16(pp) + 1); cpu.tick(6) }
		c.baseOps[base+0x0B] = func(cpu *CPU) { *cpu.regPair16(pp) = cpu.maskAddr(*cpu.regPair16(pp) - 1); cpu.tick(6) }
	}

	for y := byte(0); y < 8; y++ {
		yy := y
		opInc := byte(0x04) | yy<<3
		opDec := byte(0x05) | yy<<3
		opLdImm := byte(0x06) | yy<<3
		c.baseOps[opInc] = func(cpu *CPU) {
			v := cpu.readReg8(yy)
			cpu.writeReg8(yy, cpu.inc8(v))
			if yy == 6 {
				cpu.tick(11)
			} else {
				cpu.tick(4)
			}
		}
		c.baseOps[opDec] = func(cpu *CPU) {
			v := cpu.readReg8(yy)
			cpu.writeReg8(yy, cpu.dec8(v))
			if yy == 6 {
				cpu.tick(11)
			} else {
				cpu.tick(4)
			}
		}
		c.baseOps[opLdImm] = func(cpu *CPU) {
			n := cpu.fetchByte()
			cpu.writeReg8(yy, n)
			if yy == 6 {
				cpu.tick(10)
			} else {
				cpu.tick(7)
			}
		}
	}

	c.baseOps[0x07] = func(cpu *CPU) { cpu.A = cpu.rlc(cpu.A); cpu.setFlag(flagZ, cpu.flag(flagZ)); cpu.tick(4) }
	c.baseOps[0x0F] = func(cpu *CPU) { cpu.A = cpu.rrc(cpu.A); cpu.tick(4) }
	c.baseOps[0x17] = func(cpu *CPU) { cpu.A = cpu.rl(cpu.A); cpu.tick(4) }
	c.baseOps[0x1F] = func(cpu *CPU) { cpu.A = cpu.rr(cpu.A); cpu.tick(4) }
	// Accumulator rotates leave S/Z/PV untouched; only C/H/N/undoc change.
	for _, op := range []byte{0x07, 0x0F, 0x17, 0x1F} {
		orig := c.baseOps[op]
		c.baseOps[op] = func(cpu *CPU) {
			s, z, pv := cpu.flag(flagS), cpu.flag(flagZ), cpu.flag(flagPV)
			orig(cpu)
			cpu.setFlag(flagS, s)
			cpu.setFlag(flagZ, z)
			cpu.setFlag(flagPV, pv)
		}
	}

	c.baseOps[0x22] = func(cpu *CPU) { cpu.opLDAddrHL(true) }
	c.baseOps[0x2A] = func(cpu *CPU) { cpu.opLDAddrHL(false) }
	c.baseOps[0x32] = func(cpu *CPU) { addr := cpu.fetchAddrOperand(); cpu.writeByte(addr, cpu.A); cpu.tick(13) }
	c.baseOps[0x3A] = func(cpu *CPU) { addr := cpu.fetchAddrOperand(); cpu.A = cpu.readByte(addr); cpu.tick(13) }
	c.baseOps[0x02] = func(cpu *CPU) { cpu.writeByte(cpu.BC, cpu.A); cpu.tick(7) }
	c.baseOps[0x12] = func(cpu *CPU) { cpu.writeByte(cpu.DE, cpu.A); cpu.tick(7) }
	c.baseOps[0x0A] = func(cpu *CPU) { cpu.A = cpu.readByte(cpu.BC); cpu.tick(7) }
	c.baseOps[0x1A] = func(cpu *CPU) { cpu.A = cpu.readByte(cpu.DE); cpu.tick(7) }

	c.baseOps[0x27] = func(cpu *CPU) { cpu.daa(); cpu.tick(4) }
	c.baseOps[0x2F] = func(cpu *CPU) {
		cpu.A = ^cpu.A
		cpu.setFlag(flagH, true)
		cpu.setFlag(flagN, true)
		cpu.setUndoc(cpu.A)
		cpu.tick(4)
	}
	c.baseOps[0x37] = func(cpu *CPU) {
		cpu.setFlag(flagC, true)
		cpu.setFlag(flagH, false)
		cpu.setFlag(flagN, false)
		cpu.setUndoc(cpu.A)
		cpu.tick(4)
	}
	c.baseOps[0x3F] = func(cpu *CPU) {
		h := cpu.flag(flagC)
		cpu.setFlag(flagH, h)
		cpu.setFlag(flagC, !h)
		cpu.setFlag(flagN, false)
		cpu.setUndoc(cpu.A)
		cpu.tick(4)
	}
}

func (c *CPU) initX3Ops() {
	conds := [8]func(*CPU) bool{
		func(cpu *CPU) bool { return !cpu.flag(flagZ) },
		func(cpu *CPU) bool { return cpu.flag(flagZ) },
		func(cpu *CPU) bool { return !cpu.flag(flagC) },
		func(cpu *CPU) bool { return cpu.flag(flagC) },
		func(cpu *CPU) bool { return !cpu.flag(flagPV) },
		func(cpu *CPU) bool { return cpu.flag(flagPV) },
		func(cpu *CPU) bool { return !cpu.flag(flagS) },
		func(cpu *CPU) bool { return cpu.flag(flagS) },
	}
	for y := byte(0); y < 8; y++ {
		cond := conds[y]
		c.baseOps[0xC0+y*8] = func(cpu *CPU) { cpu.opRetCond(cond) }
		c.baseOps[0xC2+y*8] = func(cpu *CPU) { cpu.opJPCond(cond) }
		c.baseOps[0xC4+y*8] = func(cpu *CPU) { cpu.opCallCond(cond) }
	}

	for p := byte(0); p < 4; p++ {
		pp := p
		c.baseOps[0xC1+pp*16] = func(cpu *CPU) {
			v := cpu.popAddr()
			if pp == 3 {
				cpu.A = byte(v >> 8)
				cpu.F = byte(v)
			} else {
				*cpu.regPair16(pp) = v
			}
			cpu.tick(10)
		}
		c.baseOps[0xC5+pp*16] = func(cpu *CPU) { cpu.pushAddr(*cpu.pushPopPair(pp)); cpu.tick(11) }
	}

	c.baseOps[0xC3] = func(cpu *CPU) { cpu.PC = cpu.fetchAddrOperand(); cpu.tick(10) }
	c.baseOps[0xC9] = func(cpu *CPU) { cpu.PC = cpu.popAddr(); cpu.tick(10) }
	c.baseOps[0xCD] = func(cpu *CPU) { cpu.opCallCond(func(*CPU) bool { return true }) }

	c.baseOps[0xD3] = func(cpu *CPU) { n := cpu.fetchByte(); cpu.writeByte(0xFF0000|uint32(n), cpu.A); cpu.tick(11) }
	c.baseOps[0xDB] = func(cpu *CPU) { n := cpu.fetchByte(); cpu.A = cpu.readByte(0xFF0000 | uint32(n)); cpu.tick(11) }

	c.baseOps[0xE3] = func(cpu *CPU) { cpu.opExSPHL() }
	c.baseOps[0xE9] = func(cpu *CPU) { cpu.PC = cpu.maskAddr(*cpu.indexPair()); cpu.tick(4) }
	c.baseOps[0xEB] = func(cpu *CPU) { cpu.DE, cpu.HL = cpu.HL, cpu.DE; cpu.tick(4) }
	c.baseOps[0xF9] = func(cpu *CPU) { cpu.SP = cpu.maskAddr(*cpu.indexPair()); cpu.tick(6) }

	c.baseOps[0xF3] = func(cpu *CPU) { cpu.IFF1, cpu.IFF2 = false, false; cpu.tick(4) }
	c.baseOps[0xFB] = func(cpu *CPU) { cpu.iffDelay = 2; cpu.tick(4) }

	for aluOp := byte(0); aluOp < 8; aluOp++ {
		op := aluOp
		c.baseOps[0xC6+op*8] = func(cpu *CPU) { n := cpu.fetchByte(); cpu.execALU(op, n); cpu.tick(7) }
	}

	for y := byte(0); y < 8; y++ {
		yy := y
		c.baseOps[0xC7+yy*8] = func(cpu *CPU) {
			cpu.pushAddr(cpu.PC)
			cpu.PC = uint32(yy) * 8
			cpu.tick(11)
		}
	}
}

// pushPopPair returns BC/DE/HL(or IX/IY under prefix)/AF for PUSH/POP,
// which uses AF where the 16-bit-arithmetic table above used SP.
func (c *CPU) pushPopPair(p byte) *uint32 {
	if p == 3 {
		// AF is not itself a 24-bit register pair; stage it through a
		// scratch word so PUSH/POP can share the generic pointer shape.
		c.afScratch = uint32(c.A)<<8 | uint32(c.F)
		return &c.afScratch
	}
	return c.regPair16(p)
}

func (c *CPU) fetchAddrOperand() uint32 { return c.fetchAddr() }

func (c *CPU) opLDAddrHL(store bool) {
	addr := c.fetchAddrOperand()
	pair := c.indexPair()
	if store {
		c.writeByte(addr, lo8(*pair))
		c.writeByte(addr+1, hi8(*pair))
		if c.ADL {
			c.writeByte(addr+2, byte(*pair>>16))
		}
	} else {
		lo := uint32(c.readByte(addr))
		hi := uint32(c.readByte(addr + 1))
		if c.ADL {
			up := uint32(c.readByte(addr + 2))
			*pair = lo | hi<<8 | up<<16
		} else {
			*pair = (*pair &^ addrMask16) | (lo | hi<<8)
		}
	}
	c.tick(16)
}

func (c *CPU) opExSPHL() {
	addr := c.SP
	lo := uint32(c.readByte(addr))
	hi := uint32(c.readByte(addr + 1))
	var up uint32
	if c.ADL {
		up = uint32(c.readByte(addr + 2))
	}
	pair := c.indexPair()
	old := *pair
	if c.ADL {
		*pair = lo | hi<<8 | up<<16
	} else {
		*pair = (old &^ addrMask16) | (lo | hi<<8)
	}
	c.writeByte(addr, lo8(old))
	c.writeByte(addr+1, hi8(old))
	if c.ADL {
		c.writeByte(addr+2, byte(old>>16))
	}
	c.tick(19)
}
