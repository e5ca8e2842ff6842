package cpu

import "github.com/sdslabs/gbemu-sub000/gameboy/bit"

// Flag bit positions within the F register. The low nibble of F is always
// zero; only the top four bits are meaningful.
const (
	zeroFlag      uint8 = 1 << 7
	subFlag       uint8 = 1 << 6
	halfCarryFlag uint8 = 1 << 5
	carryFlag     uint8 = 1 << 4
)

// r8 names the eight 8-bit operand slots the instruction tables are built
// over. regHLInd is not a register at all: it stands for the byte addressed by
// HL, and getR8/setR8 route it through the bus.
type r8 uint8

const (
	regB r8 = iota
	regC
	regD
	regE
	regH
	regL
	regHLInd
	regA
)

// r8Names lists the eight slots in the encoding order the opcode tables use,
// for building instruction names.
var r8Names = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// r16 names the four register-pair operand slots used by LD rr,d16, INC rr,
// DEC rr and ADD HL,rr, in their opcode-encoding order.
type r16 uint8

const (
	regBC r16 = iota
	regDE
	regHL
	regSP
)

func (c *CPU) getR8(r r8) uint8 {
	switch r {
	case regB:
		return c.b
	case regC:
		return c.c
	case regD:
		return c.d
	case regE:
		return c.e
	case regH:
		return c.h
	case regL:
		return c.l
	case regHLInd:
		return c.bus.Read(c.HL())
	case regA:
		return c.a
	default:
		panic("cpu: invalid r8 slot")
	}
}

func (c *CPU) setR8(r r8, v uint8) {
	switch r {
	case regB:
		c.b = v
	case regC:
		c.c = v
	case regD:
		c.d = v
	case regE:
		c.e = v
	case regH:
		c.h = v
	case regL:
		c.l = v
	case regHLInd:
		c.bus.Write(c.HL(), v)
	case regA:
		c.a = v
	default:
		panic("cpu: invalid r8 slot")
	}
}

// BC, DE, HL and AF are the register pairs formed from the flat 8-bit
// fields. AF's low byte always masks off the unused nibble of F.
func (c *CPU) BC() uint16 { return bit.Combine(c.b, c.c) }
func (c *CPU) DE() uint16 { return bit.Combine(c.d, c.e) }
func (c *CPU) HL() uint16 { return bit.Combine(c.h, c.l) }
func (c *CPU) AF() uint16 { return bit.Combine(c.a, c.f&0xF0) }

func (c *CPU) setBC(v uint16) { c.b, c.c = bit.High(v), bit.Low(v) }
func (c *CPU) setDE(v uint16) { c.d, c.e = bit.High(v), bit.Low(v) }
func (c *CPU) setHL(v uint16) { c.h, c.l = bit.High(v), bit.Low(v) }
func (c *CPU) setAF(v uint16) { c.a, c.f = bit.High(v), bit.Low(v)&0xF0 }

func (c *CPU) getR16(r r16) uint16 {
	switch r {
	case regBC:
		return c.BC()
	case regDE:
		return c.DE()
	case regHL:
		return c.HL()
	case regSP:
		return c.sp
	default:
		panic("cpu: invalid r16 slot")
	}
}

func (c *CPU) setR16(r r16, v uint16) {
	switch r {
	case regBC:
		c.setBC(v)
	case regDE:
		c.setDE(v)
	case regHL:
		c.setHL(v)
	case regSP:
		c.sp = v
	default:
		panic("cpu: invalid r16 slot")
	}
}

// Registers is a read-only snapshot of CPU state, exposed for debugging and
// tests so callers never need direct field access on CPU.
type Registers struct {
	A, B, C, D, E, H, L, F uint8
	SP, PC                 uint16
}

// Registers returns a snapshot of the current register file.
func (c *CPU) Registers() Registers {
	return Registers{
		A: c.a, B: c.b, C: c.c, D: c.d, E: c.e, H: c.h, L: c.l, F: c.f,
		SP: c.sp, PC: c.pc,
	}
}
