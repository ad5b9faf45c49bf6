package cpu

// State is an exported, serialization-friendly copy of every field that
// defines CPU behavior, for the orchestrator's save-state support. It
// deliberately excludes the opcode dispatch tables (rebuilt by New, not
// data) and the running flag (the orchestrator decides whether a restored
// machine runs).
type State struct {
	A, F          byte
	BC, DE, HL    uint32
	A2, F2        byte
	BC2, DE2, HL2 uint32
	IX, IY        uint32
	SP, PC        uint32
	I             uint16
	R, MBASE      byte
	IFF1, IFF2    bool
	IM            IntMode
	ADL, Halted   bool
	Cycles        uint64

	IRQLine, NMILine, NMIPrev, NMIPending bool
	IffDelay                              int
	PrefixMode                            byte
	PrefixDisp                            int8
	HaveDisp                              bool

	LastUnknownOpcode byte
	UnknownOpcodeHits uint64
}

// ExportState captures the full register file and interrupt-edge state.
func (c *CPU) ExportState() State {
	return State{
		A: c.A, F: c.F,
		BC: c.BC, DE: c.DE, HL: c.HL,
		A2: c.A2, F2: c.F2,
		BC2: c.BC2, DE2: c.DE2, HL2: c.HL2,
		IX: c.IX, IY: c.IY,
		SP: c.SP, PC: c.PC,
		I: c.I, R: c.R, MBASE: c.MBASE,
		IFF1: c.IFF1, IFF2: c.IFF2,
		IM:  c.IM,
		ADL: c.ADL, Halted: c.Halted,
		Cycles: c.Cycles,

		IRQLine: c.irqLine, NMILine: c.nmiLine, NMIPrev: c.nmiPrev, NMIPending: c.nmiPend,
		IffDelay:   c.iffDelay,
		PrefixMode: c.prefixMode, PrefixDisp: c.prefixDisp, HaveDisp: c.haveDisp,

		LastUnknownOpcode: c.LastUnknownOpcode,
		UnknownOpcodeHits: c.UnknownOpcodeHits,
	}
}

// ImportState restores every field ExportState captured, without touching
// the dispatch tables or the running flag.
func (c *CPU) ImportState(s State) {
	c.A, c.F = s.A, s.F
	c.BC, c.DE, c.HL = s.BC, s.DE, s.HL
	c.A2, c.F2 = s.A2, s.F2
	c.BC2, c.DE2, c.HL2 = s.BC2, s.DE2, s.HL2
	c.IX, c.IY = s.IX, s.IY
	c.SP, c.PC = s.SP, s.PC
	c.I, c.R, c.MBASE = s.I, s.R, s.MBASE
	c.IFF1, c.IFF2 = s.IFF1, s.IFF2
	c.IM = s.IM
	c.ADL, c.Halted = s.ADL, s.Halted
	c.Cycles = s.Cycles

	c.irqLine, c.nmiLine, c.nmiPrev, c.nmiPend = s.IRQLine, s.NMILine, s.NMIPrev, s.NMIPending
	c.iffDelay = s.IffDelay
	c.prefixMode, c.prefixDisp, c.haveDisp = s.PrefixMode, s.PrefixDisp, s.HaveDisp

	c.LastUnknownOpcode = s.LastUnknownOpcode
	c.UnknownOpcodeHits = s.UnknownOpcodeHits
}
