package video

import "github.com/sdslabs/gbemu-sub000/gameboy/addr"

// Mode is one of the four PPU states the STAT register reports.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAMScan Mode = 2
	ModePixelTransfer Mode = 3
)

// Cycle lengths, in T-cycles, of each phase of a scanline.
const (
	oamScanCycles       = 80
	pixelTransferCycles = 172
	hblankCycles        = 204
	scanlineCycles      = oamScanCycles + pixelTransferCycles + hblankCycles // 456
)

// LCDC bit positions.
const (
	lcdcEnable          = 7
	lcdcWindowTileMap   = 6
	lcdcWindowEnable    = 5
	lcdcTileDataSelect  = 4
	lcdcBGTileMap       = 3
	lcdcSpriteSize      = 2
	lcdcSpriteEnable    = 1
	lcdcBGEnable        = 0
)

// STAT bit positions.
const (
	statLYCInterrupt    = 6
	statOAMInterrupt    = 5
	statVBlankInterrupt = 4
	statHBlankInterrupt = 3
	statLYCCoincidence  = 2
)

// PPU renders the background, window and sprite layers into a FrameBuffer,
// one scanline at a time, driven by Tick.
type PPU struct {
	vram *[0x2000]byte
	oam  *[0xA0]byte

	lcdc, stat, scy, scx, ly, lyc, bgp, obp0, obp1, wy, wx uint8

	mode        Mode
	modeCycles  int
	windowLine  int

	priority *spritePriority
	fb       *FrameBuffer

	RequestInterrupt func(addr.Interrupt)
	// FrameReady is invoked once per completed frame, after the final
	// scanline's H-Blank, with the just-finished FrameBuffer.
	FrameReady func(*FrameBuffer)
}

// NewPPU returns a PPU backed by the given VRAM and OAM arrays, which it
// never owns a private copy of: it reads through the bus's arrays directly,
// the same way the teacher's GPU reads tile data through a MemoryReader.
func NewPPU(vram *[0x2000]byte, oam *[0xA0]byte) *PPU {
	return &PPU{
		vram:     vram,
		oam:      oam,
		priority: newSpritePriority(),
		fb:       NewFrameBuffer(),
		mode:     ModeOAMScan,
		lcdc:     0x91,
		bgp:      0xFC,
		obp0:     0xFF,
		obp1:     0xFF,
	}
}

// FrameBuffer returns the most recently completed (or in-progress) frame.
func (p *PPU) FrameBuffer() *FrameBuffer {
	return p.fb
}

func (p *PPU) enabled() bool {
	return p.lcdc&(1<<lcdcEnable) != 0
}

// Tick advances the PPU by the given number of T-cycles.
func (p *PPU) Tick(cycles int) {
	if !p.enabled() {
		return
	}
	for i := 0; i < cycles; i++ {
		p.tickOnce()
	}
}

func (p *PPU) tickOnce() {
	p.modeCycles++

	switch p.mode {
	case ModeOAMScan:
		if p.modeCycles == oamScanCycles {
			p.modeCycles = 0
			p.setMode(ModePixelTransfer)
		}
	case ModePixelTransfer:
		if p.modeCycles == pixelTransferCycles {
			p.modeCycles = 0
			p.drawScanline()
			p.setMode(ModeHBlank)
		}
	case ModeHBlank:
		if p.modeCycles == hblankCycles {
			p.modeCycles = 0
			p.advanceLine()
		}
	case ModeVBlank:
		if p.modeCycles == scanlineCycles {
			p.modeCycles = 0
			p.advanceLine()
		}
	}
}

func (p *PPU) advanceLine() {
	p.setLY(p.ly + 1)

	switch {
	case p.ly == ScreenHeight:
		p.setMode(ModeVBlank)
		p.requestInterrupt(addr.VBlankInterrupt)
		if p.FrameReady != nil {
			p.FrameReady(p.fb)
		}
	case p.ly > 153:
		p.setLY(0)
		p.windowLine = 0
		p.setMode(ModeOAMScan)
	case p.mode == ModeVBlank:
		// stay in VBlank until line 153 rolls over, handled above
	default:
		p.setMode(ModeOAMScan)
	}
}

func (p *PPU) setMode(m Mode) {
	p.mode = m
	switch m {
	case ModeHBlank:
		p.maybeRequestSTAT(statHBlankInterrupt)
	case ModeOAMScan:
		p.maybeRequestSTAT(statOAMInterrupt)
	case ModeVBlank:
		p.maybeRequestSTAT(statVBlankInterrupt)
	}
}

func (p *PPU) maybeRequestSTAT(bit uint8) {
	if p.stat&(1<<bit) != 0 {
		p.requestInterrupt(addr.LCDSTATInterrupt)
	}
}

func (p *PPU) setLY(ly uint8) {
	p.ly = ly
	coincidence := p.ly == p.lyc
	if coincidence {
		p.stat |= 1 << statLYCCoincidence
	} else {
		p.stat &^= 1 << statLYCCoincidence
	}
	if coincidence && p.stat&(1<<statLYCInterrupt) != 0 {
		p.requestInterrupt(addr.LCDSTATInterrupt)
	}
}

func (p *PPU) requestInterrupt(i addr.Interrupt) {
	if p.RequestInterrupt != nil {
		p.RequestInterrupt(i)
	}
}

// ReadPort implements memory.PPUPorts.
func (p *PPU) ReadPort(address uint16) uint8 {
	switch address {
	case addr.LCDC:
		return p.lcdc
	case addr.STAT:
		return 0x80 | p.stat | uint8(p.mode)
	case addr.SCY:
		return p.scy
	case addr.SCX:
		return p.scx
	case addr.LY:
		return p.ly
	case addr.LYC:
		return p.lyc
	case addr.BGP:
		return p.bgp
	case addr.OBP0:
		return p.obp0
	case addr.OBP1:
		return p.obp1
	case addr.WY:
		return p.wy
	case addr.WX:
		return p.wx
	default:
		return 0xFF
	}
}

// WritePort implements memory.PPUPorts.
func (p *PPU) WritePort(address uint16, value uint8) {
	switch address {
	case addr.LCDC:
		wasEnabled := p.enabled()
		p.lcdc = value
		if wasEnabled && !p.enabled() {
			p.ly = 0
			p.modeCycles = 0
			p.mode = ModeHBlank
		}
	case addr.STAT:
		p.stat = value & 0x78
	case addr.SCY:
		p.scy = value
	case addr.SCX:
		p.scx = value
	case addr.LY:
		p.setLY(0)
	case addr.LYC:
		p.lyc = value
		p.setLY(p.ly)
	case addr.BGP:
		p.bgp = value
	case addr.OBP0:
		p.obp0 = value
	case addr.OBP1:
		p.obp1 = value
	case addr.WY:
		p.wy = value
	case addr.WX:
		p.wx = value
	}
}
