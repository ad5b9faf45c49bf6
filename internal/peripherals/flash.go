package peripherals

const (
	flashRegEnable     = 0x00
	flashRegSizeConfig = 0x01
	flashRegMapSelect  = 0x02
	flashRegWaitStates = 0x05
	flashRegControl    = 0x08
)

// Flash implements the flash controller described in §4.5: enable/size/
// map-select/wait-state/control bytes governing how much of the flash
// image is mapped and how many wait cycles a flash access costs. It does
// not own the flash bytes themselves (the bus does); it only computes how
// much of them are currently visible.
type Flash struct {
	enable     byte
	sizeConfig byte
	mapSelect  byte
	waitStates byte
	control    byte
}

func NewFlash() *Flash {
	return &Flash{enable: 0x01, sizeConfig: 0x07}
}

func (f *Flash) Reset() { *f = *NewFlash() }

func (f *Flash) Enabled() bool        { return f.enable&0x01 != 0 }
func (f *Flash) WaitStates() byte     { return f.waitStates }
func (f *Flash) TotalWaitCycles() int { return 6 + int(f.waitStates) }
func (f *Flash) MapSelect() byte      { return f.mapSelect }

// MappedBytes computes how many bytes of the flash image are currently
// addressable, per §4.5: 0x10000 << map_select when enabled and the size
// configuration is plausible, else 0.
func (f *Flash) MappedBytes() uint32 {
	if f.enable == 0 || f.sizeConfig > 0x3F {
		return 0
	}
	m := f.mapSelect & 0x0F
	if m >= 8 {
		m = 0
	}
	return 0x10000 << m
}

func (f *Flash) ReadByte(offset uint32) byte {
	switch offset {
	case flashRegEnable:
		return f.enable
	case flashRegSizeConfig:
		return f.sizeConfig
	case flashRegMapSelect:
		return f.mapSelect
	case flashRegWaitStates:
		return f.waitStates
	case flashRegControl:
		return f.control
	default:
		return 0xFF
	}
}

func (f *Flash) WriteByte(offset uint32, value byte) {
	switch offset {
	case flashRegEnable:
		f.enable = value & 0x01
	case flashRegSizeConfig:
		f.sizeConfig = value
	case flashRegMapSelect:
		f.mapSelect = value & 0x0F
	case flashRegWaitStates:
		f.waitStates = value
	case flashRegControl:
		f.control = value & 0x01
	}
}
