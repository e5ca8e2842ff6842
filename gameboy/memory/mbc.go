package memory

// MBC is the banking controller interface every cartridge type implements.
// Addr is the full 16-bit bus address; the MBC is only ever asked to
// translate the two banked windows (0x0000-0x7FFF for ROM, 0xA000-0xBFFF for
// external RAM).
type MBC interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// NoMBC serves a cartridge with no banking hardware: a flat 32KB ROM and,
// optionally, a flat 8KB RAM window. Writes into ROM space are ignored.
type NoMBC struct {
	cart *Cartridge
	ram  []byte
}

func newNoMBC(cart *Cartridge) *NoMBC {
	return &NoMBC{cart: cart, ram: make([]byte, 0x2000)}
}

func (m *NoMBC) Read(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		return m.cart.ReadByte(int(addr))
	case addr >= 0xA000 && addr < 0xC000:
		return m.ram[addr-0xA000]
	default:
		return 0xFF
	}
}

func (m *NoMBC) Write(addr uint16, value uint8) {
	if addr >= 0xA000 && addr < 0xC000 {
		m.ram[addr-0xA000] = value
	}
	// ROM space is read-only; writes are silently discarded.
}

// bankingMode selects what the two shared high bits of the bank-select
// registers mean.
type bankingMode uint8

const (
	romBankingMode bankingMode = iota
	ramBankingMode
)

// MBC1 implements the MBC1 banking scheme: a 5-bit low ROM bank register
// and a 2-bit register that, depending on bankingMode, either extends the
// ROM bank number (bits 5-6) or selects the RAM bank.
//
// Bank 0 of the low register is promoted to bank 1: the low 5 bits can never
// select the ROM bank actually mapped at 0x0000-0x3FFF, so a value of 0
// written there is read back as bank 1.
type MBC1 struct {
	cart *Cartridge
	ram  []byte

	ramEnabled bool
	lowBank    uint8
	highBits   uint8
	mode       bankingMode
}

func newMBC1(cart *Cartridge) *MBC1 {
	ramSize := cart.RAMBytes
	if ramSize == 0 {
		ramSize = 0x2000
	}
	return &MBC1{
		cart:    cart,
		ram:     make([]byte, ramSize),
		lowBank: 1,
	}
}

// romBank resolves the bank currently mapped at 0x4000-0x7FFF.
func (m *MBC1) romBank() int {
	low := m.lowBank & 0x1F
	if low == 0 {
		low = 1
	}
	bank := int(low)
	if m.mode == romBankingMode {
		bank |= int(m.highBits&0x03) << 5
	}
	return bank % m.cart.ROMBanks
}

// ramBank resolves the bank currently mapped at 0xA000-0xBFFF.
func (m *MBC1) ramBank() int {
	if m.mode != ramBankingMode {
		return 0
	}
	return int(m.highBits & 0x03)
}

func (m *MBC1) Read(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		return m.cart.ReadByte(int(addr))
	case addr < 0x8000:
		offset := m.romBank()*0x4000 + int(addr-0x4000)
		return m.cart.ReadByte(offset)
	case addr >= 0xA000 && addr < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		offset := (m.ramBank()*0x2000 + int(addr-0xA000)) % len(m.ram)
		return m.ram[offset]
	default:
		return 0xFF
	}
}

func (m *MBC1) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case addr < 0x4000:
		m.lowBank = value & 0x1F
	case addr < 0x6000:
		m.highBits = value & 0x03
	case addr < 0x8000:
		if value&0x01 == 0 {
			m.mode = romBankingMode
		} else {
			m.mode = ramBankingMode
		}
	case addr >= 0xA000 && addr < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		offset := (m.ramBank()*0x2000 + int(addr-0xA000)) % len(m.ram)
		m.ram[offset] = value
	}
}

// newMBC builds the banking controller a cartridge's header declares.
func newMBC(cart *Cartridge) MBC {
	switch cart.MBC {
	case MBC1Kind:
		return newMBC1(cart)
	default:
		return newNoMBC(cart)
	}
}
