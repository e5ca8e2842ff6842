package memory

// InputSnapshot is queried by the bus whenever the program reads P1. Bit 0-3
// are Right/Left/Up/Down, bit 4-7 are A/B/Select/Start, and — matching the
// polarity of the hardware register this feeds — a 1 bit here means
// "released" and a 0 bit means "pressed".
//
// The bus never holds key state itself: it calls this function fresh on
// every P1 read, so host backends own the only copy of "what's pressed
// right now" and the bus cannot drift out of sync with it.
type InputSnapshot func() uint8

// Joypad button bit positions within an InputSnapshot value. A set bit
// means the button is released; a clear bit means it is pressed.
const (
	ButtonRight  uint8 = 1 << 0
	ButtonLeft   uint8 = 1 << 1
	ButtonUp     uint8 = 1 << 2
	ButtonDown   uint8 = 1 << 3
	ButtonA      uint8 = 1 << 4
	ButtonB      uint8 = 1 << 5
	ButtonSelect uint8 = 1 << 6
	ButtonStart  uint8 = 1 << 7
)

// joypad resolves the P1 register against a pull-based InputSnapshot and
// edge-detects the selected-line changes needed to raise the joypad
// interrupt.
type joypad struct {
	snapshot   InputSnapshot
	selectBits uint8
	lastLow    uint8
}

func newJoypad() *joypad {
	return &joypad{selectBits: 0x30}
}

// read assembles the P1 byte: bits 4-5 are the select lines as last written,
// bits 0-3 are the matrix lines they select, active-low, bits 6-7 always 1.
func (j *joypad) read() uint8 {
	mask := j.currentSnapshot() // 1 = released, 0 = pressed, per InputSnapshot
	lines := uint8(0x0F)

	if j.selectBits&0x10 == 0 { // direction keys selected
		if mask&ButtonRight == 0 {
			lines &^= 0x01
		}
		if mask&ButtonLeft == 0 {
			lines &^= 0x02
		}
		if mask&ButtonUp == 0 {
			lines &^= 0x04
		}
		if mask&ButtonDown == 0 {
			lines &^= 0x08
		}
	}
	if j.selectBits&0x20 == 0 { // action keys selected
		if mask&ButtonA == 0 {
			lines &^= 0x01
		}
		if mask&ButtonB == 0 {
			lines &^= 0x02
		}
		if mask&ButtonSelect == 0 {
			lines &^= 0x04
		}
		if mask&ButtonStart == 0 {
			lines &^= 0x08
		}
	}

	return 0xC0 | j.selectBits | lines
}

func (j *joypad) currentSnapshot() uint8 {
	if j.snapshot == nil {
		return 0xFF // no host wired up: every button reads as released
	}
	return j.snapshot()
}

// write updates the select lines (bits 4-5 only; the matrix lines are
// read-only from the program's side).
func (j *joypad) write(value uint8) {
	j.selectBits = value & 0x30
}

// pollEdge reports whether any selected matrix line just transitioned from
// high to low (i.e. a key was newly pressed while its line was selected),
// which is what the joypad interrupt fires on. The bus calls this from
// PollJoypad, which the frame driver invokes once per frame.
func (j *joypad) pollEdge() bool {
	lines := j.read() & 0x0F
	pressed := ^lines & 0x0F
	fired := pressed&^j.lastLow != 0
	j.lastLow = pressed
	return fired
}
