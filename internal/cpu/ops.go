package cpu

// opLDRegReg implements the generic LD r,r' body shared by all 63 non-HALT
// opcodes in the 0x40-0x7F block; the loop in decode.go supplies y (dest)
// and z (src) for every opcode slot.
func (c *CPU) opLDRegReg(dest, src byte) {
	v := c.readReg8(src)
	c.writeReg8(dest, v)
	if dest == 6 || src == 6 {
		c.tick(7)
	} else {
		c.tick(4)
	}
}

func (c *CPU) opHalt() {
	c.Halted = true
	c.tick(4)
}

// opALUReg implements the generic ALU A,r body shared by the 0x80-0xBF
// block.
func (c *CPU) opALUReg(aluOp, src byte) {
	operand := c.readReg8(src)
	c.execALU(aluOp, operand)
	if src == 6 {
		c.tick(7)
	} else {
		c.tick(4)
	}
}

func (c *CPU) opDJNZ() {
	d := c.fetchSignedByte()
	setB := c.B() - 1
	c.setB(setB)
	if setB != 0 {
		c.PC = c.maskAddr(uint32(int32(c.PC) + int32(d)))
		c.tick(13)
	} else {
		c.tick(8)
	}
}

func (c *CPU) opJR(take bool) {
	d := c.fetchSignedByte()
	if take {
		c.PC = c.maskAddr(uint32(int32(c.PC) + int32(d)))
		c.tick(12)
	} else {
		c.tick(7)
	}
}

func (c *CPU) opJPCond(cond func(*CPU) bool) {
	addr := c.fetchAddrOperand()
	if cond(c) {
		c.PC = addr
	}
	c.tick(10)
}

func (c *CPU) opCallCond(cond func(*CPU) bool) {
	addr := c.fetchAddrOperand()
	if cond(c) {
		c.pushAddr(c.PC)
		c.PC = addr
		c.tick(17)
	} else {
		c.tick(10)
	}
}

func (c *CPU) opRetCond(cond func(*CPU) bool) {
	if cond(c) {
		c.PC = c.popAddr()
		c.tick(11)
	} else {
		c.tick(5)
	}
}
