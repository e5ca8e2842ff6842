package cpu

import "github.com/sdslabs/gbemu-sub000/gameboy/bit"

// instruction is one entry of the 256-wide dispatch table. exec runs the
// instruction against c, advancing PC past any operands it consumes, and
// returns the number of T-cycles actually spent (branches and (HL) operands
// take longer than the register-only form of the same opcode).
type instruction struct {
	name string
	exec func(c *CPU) int
}

var opcodeTable [256]instruction

// r8List is the eight operand slots in their opcode-encoding order.
var r8List = [8]r8{regB, regC, regD, regE, regH, regL, regHLInd, regA}

// r16List is the four 16-bit operand slots used by LD rr,d16 / INC rr /
// DEC rr / ADD HL,rr, in their opcode-encoding order.
var r16List = [4]r16{regBC, regDE, regHL, regSP}

func init() {
	buildLoadTable()
	buildALUTable()
	buildIncDecTable()
	buildControlTable()
}

func undefined(opcode uint8) instruction {
	return instruction{
		name: "??",
		exec: func(c *CPU) int {
			panic(newIllegalOpcode(opcode))
		},
	}
}

// IllegalOpcode is raised if the CPU ever fetches one of the eleven byte
// values the Sharp LR35902 never decodes as a valid instruction. Real
// software never emits these; hitting one means a ROM bug or a desynced
// fetch, either way not something this CPU can recover from.
type IllegalOpcode struct {
	Opcode uint8
}

func newIllegalOpcode(opcode uint8) IllegalOpcode {
	return IllegalOpcode{Opcode: opcode}
}

func (e IllegalOpcode) Error() string {
	return "cpu: illegal opcode"
}

func init() {
	for i := range opcodeTable {
		if opcodeTable[i].exec == nil {
			opcodeTable[i] = undefined(uint8(i))
		}
	}
}

// buildLoadTable fills in the LD r,r' block (0x40-0x7F, with 0x76 reserved
// for HALT), LD r,d8, LD rr,d16, and the handful of fixed-address loads.
func buildLoadTable() {
	for dstIdx, dst := range r8List {
		for srcIdx, src := range r8List {
			opcode := uint8(0x40 + dstIdx*8 + srcIdx)
			if dst == regHLInd && src == regHLInd {
				continue // 0x76 is HALT, not LD (HL),(HL)
			}
			d, s := dst, src
			cycles := 4
			if d == regHLInd || s == regHLInd {
				cycles = 8
			}
			opcodeTable[opcode] = instruction{
				name: "LD " + r8Names[dstIdx] + "," + r8Names[srcIdx],
				exec: func(c *CPU) int {
					c.setR8(d, c.getR8(s))
					return cycles
				},
			}
		}
	}

	opcodeTable[0x76] = instruction{name: "HALT", exec: execHALT}

	for idx, r := range r8List {
		opcode := uint8(0x06 + idx*8)
		rr := r
		cycles := 8
		if rr == regHLInd {
			cycles = 12
		}
		opcodeTable[opcode] = instruction{
			name: "LD " + r8Names[idx] + ",d8",
			exec: func(c *CPU) int {
				c.setR8(rr, c.fetch8())
				return cycles
			},
		}
	}

	ld16Opcodes := [4]uint8{0x01, 0x11, 0x21, 0x31}
	for i, op := range ld16Opcodes {
		rr := r16List[i]
		opcodeTable[op] = instruction{
			name: "LD rr,d16",
			exec: func(c *CPU) int {
				c.setR16(rr, c.fetch16())
				return 12
			},
		}
	}

	opcodeTable[0x02] = instruction{name: "LD (BC),A", exec: func(c *CPU) int {
		c.bus.Write(c.BC(), c.a)
		return 8
	}}
	opcodeTable[0x12] = instruction{name: "LD (DE),A", exec: func(c *CPU) int {
		c.bus.Write(c.DE(), c.a)
		return 8
	}}
	opcodeTable[0x0A] = instruction{name: "LD A,(BC)", exec: func(c *CPU) int {
		c.a = c.bus.Read(c.BC())
		return 8
	}}
	opcodeTable[0x1A] = instruction{name: "LD A,(DE)", exec: func(c *CPU) int {
		c.a = c.bus.Read(c.DE())
		return 8
	}}
	opcodeTable[0x22] = instruction{name: "LD (HL+),A", exec: func(c *CPU) int {
		c.bus.Write(c.HL(), c.a)
		c.setHL(c.HL() + 1)
		return 8
	}}
	opcodeTable[0x2A] = instruction{name: "LD A,(HL+)", exec: func(c *CPU) int {
		c.a = c.bus.Read(c.HL())
		c.setHL(c.HL() + 1)
		return 8
	}}
	opcodeTable[0x32] = instruction{name: "LD (HL-),A", exec: func(c *CPU) int {
		c.bus.Write(c.HL(), c.a)
		c.setHL(c.HL() - 1)
		return 8
	}}
	opcodeTable[0x3A] = instruction{name: "LD A,(HL-)", exec: func(c *CPU) int {
		c.a = c.bus.Read(c.HL())
		c.setHL(c.HL() - 1)
		return 8
	}}
	opcodeTable[0x08] = instruction{name: "LD (a16),SP", exec: func(c *CPU) int {
		addr := c.fetch16()
		c.bus.Write(addr, bit.Low(c.sp))
		c.bus.Write(addr+1, bit.High(c.sp))
		return 20
	}}
	opcodeTable[0xE0] = instruction{name: "LDH (a8),A", exec: func(c *CPU) int {
		c.bus.Write(0xFF00+uint16(c.fetch8()), c.a)
		return 12
	}}
	opcodeTable[0xF0] = instruction{name: "LDH A,(a8)", exec: func(c *CPU) int {
		c.a = c.bus.Read(0xFF00 + uint16(c.fetch8()))
		return 12
	}}
	opcodeTable[0xE2] = instruction{name: "LD (C),A", exec: func(c *CPU) int {
		c.bus.Write(0xFF00+uint16(c.c), c.a)
		return 8
	}}
	opcodeTable[0xF2] = instruction{name: "LD A,(C)", exec: func(c *CPU) int {
		c.a = c.bus.Read(0xFF00 + uint16(c.c))
		return 8
	}}
	opcodeTable[0xEA] = instruction{name: "LD (a16),A", exec: func(c *CPU) int {
		c.bus.Write(c.fetch16(), c.a)
		return 16
	}}
	opcodeTable[0xFA] = instruction{name: "LD A,(a16)", exec: func(c *CPU) int {
		c.a = c.bus.Read(c.fetch16())
		return 16
	}}
	opcodeTable[0xF9] = instruction{name: "LD SP,HL", exec: func(c *CPU) int {
		c.sp = c.HL()
		return 8
	}}
	opcodeTable[0xF8] = instruction{name: "LD HL,SP+e8", exec: func(c *CPU) int {
		e := int8(c.fetch8())
		result, flags := addSPSignedFlags(c.sp, e)
		c.setHL(result)
		c.apply(flags)
		return 12
	}}

	pushPopOpcodes := [4]struct {
		push, pop uint8
		get       func(c *CPU) uint16
		set       func(c *CPU, v uint16)
	}{
		{0xC5, 0xC1, (*CPU).BC, func(c *CPU, v uint16) { c.setBC(v) }},
		{0xD5, 0xD1, (*CPU).DE, func(c *CPU, v uint16) { c.setDE(v) }},
		{0xE5, 0xE1, (*CPU).HL, func(c *CPU, v uint16) { c.setHL(v) }},
		{0xF5, 0xF1, (*CPU).AF, func(c *CPU, v uint16) { c.setAF(v) }},
	}
	for _, p := range pushPopOpcodes {
		get, set := p.get, p.set
		opcodeTable[p.push] = instruction{name: "PUSH", exec: func(c *CPU) int {
			c.pushStack(get(c))
			return 16
		}}
		opcodeTable[p.pop] = instruction{name: "POP", exec: func(c *CPU) int {
			set(c, c.popStack())
			return 12
		}}
	}
}

func execHALT(c *CPU) int {
	pending := c.bus.PendingInterrupts()
	if !c.ime && pending != 0 {
		c.haltBug = true
	} else {
		c.halted = true
	}
	return 4
}

// buildALUTable fills in the 0x80-0xBF block (ADD/ADC/SUB/SBC/AND/XOR/OR/CP
// A,r) plus their d8-immediate forms at 0xC6/0xCE/0xD6/0xDE/0xE6/0xEE/0xF6/0xFE.
func buildALUTable() {
	ops := [8]func(a uint8, c *CPU) (uint8, flagUpdate, bool){
		func(a uint8, c *CPU) (uint8, flagUpdate, bool) { r, f := addFlags(c.a, a, false); return r, f, true },
		func(a uint8, c *CPU) (uint8, flagUpdate, bool) { r, f := addFlags(c.a, a, c.carry()); return r, f, true },
		func(a uint8, c *CPU) (uint8, flagUpdate, bool) { r, f := subFlags(c.a, a, false); return r, f, true },
		func(a uint8, c *CPU) (uint8, flagUpdate, bool) { r, f := subFlags(c.a, a, c.carry()); return r, f, true },
		func(a uint8, c *CPU) (uint8, flagUpdate, bool) { r, f := andFlags(c.a, a); return r, f, true },
		func(a uint8, c *CPU) (uint8, flagUpdate, bool) { r, f := xorFlags(c.a, a); return r, f, true },
		func(a uint8, c *CPU) (uint8, flagUpdate, bool) { r, f := orFlags(c.a, a); return r, f, true },
		func(a uint8, c *CPU) (uint8, flagUpdate, bool) { r, f := subFlags(c.a, a, false); return r, f, false }, // CP: discard result
	}
	names := [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}

	for opIdx, op := range ops {
		for srcIdx, src := range r8List {
			opcode := uint8(0x80 + opIdx*8 + srcIdx)
			f, s := op, src
			cycles := 4
			if s == regHLInd {
				cycles = 8
			}
			opcodeTable[opcode] = instruction{
				name: names[opIdx] + " A," + r8Names[srcIdx],
				exec: func(c *CPU) int {
					result, flags, writeBack := f(c.getR8(s), c)
					c.apply(flags)
					if writeBack {
						c.a = result
					}
					return cycles
				},
			}
		}
	}

	immOpcodes := [8]uint8{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE}
	for opIdx, opcode := range immOpcodes {
		f := ops[opIdx]
		opcodeTable[opcode] = instruction{
			name: names[opIdx] + " A,d8",
			exec: func(c *CPU) int {
				result, flags, writeBack := f(c.fetch8(), c)
				c.apply(flags)
				if writeBack {
					c.a = result
				}
				return 8
			},
		}
	}
}

// buildIncDecTable fills in INC r/DEC r (8-bit, 0x04/0x0C.. stepped by 8) and
// INC rr/DEC rr/ADD HL,rr (16-bit).
func buildIncDecTable() {
	for idx, r := range r8List {
		rr := r
		incOp := uint8(0x04 + idx*8)
		decOp := uint8(0x05 + idx*8)
		cycles := 4
		if rr == regHLInd {
			cycles = 12
		}
		opcodeTable[incOp] = instruction{name: "INC " + r8Names[idx], exec: func(c *CPU) int {
			result, flags := incFlags(c.getR8(rr))
			c.setR8(rr, result)
			c.apply(flags)
			return cycles
		}}
		opcodeTable[decOp] = instruction{name: "DEC " + r8Names[idx], exec: func(c *CPU) int {
			result, flags := decFlags(c.getR8(rr))
			c.setR8(rr, result)
			c.apply(flags)
			return cycles
		}}
	}

	inc16Opcodes := [4]uint8{0x03, 0x13, 0x23, 0x33}
	dec16Opcodes := [4]uint8{0x0B, 0x1B, 0x2B, 0x3B}
	addHLOpcodes := [4]uint8{0x09, 0x19, 0x29, 0x39}
	for i := range r16List {
		rr := r16List[i]
		opcodeTable[inc16Opcodes[i]] = instruction{name: "INC rr", exec: func(c *CPU) int {
			c.setR16(rr, c.getR16(rr)+1)
			return 8
		}}
		opcodeTable[dec16Opcodes[i]] = instruction{name: "DEC rr", exec: func(c *CPU) int {
			c.setR16(rr, c.getR16(rr)-1)
			return 8
		}}
		opcodeTable[addHLOpcodes[i]] = instruction{name: "ADD HL,rr", exec: func(c *CPU) int {
			result, flags := addHLFlags(c.HL(), c.getR16(rr))
			c.setHL(result)
			c.apply(flags)
			return 8
		}}
	}

	opcodeTable[0xE8] = instruction{name: "ADD SP,e8", exec: func(c *CPU) int {
		e := int8(c.fetch8())
		result, flags := addSPSignedFlags(c.sp, e)
		c.sp = result
		c.apply(flags)
		return 16
	}}
}
