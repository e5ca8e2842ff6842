package cpu

// buildControlTable fills in everything that isn't a regular load/ALU/inc-dec
// block: flow control (JP/JR/CALL/RET/RST), the accumulator rotates, stack
// manipulation helpers, and the single-byte misc instructions.
func buildControlTable() {
	opcodeTable[0x00] = instruction{name: "NOP", exec: func(c *CPU) int { return 4 }}
	opcodeTable[0x10] = instruction{name: "STOP", exec: func(c *CPU) int {
		c.fetch8() // STOP is encoded as two bytes; the second is conventionally 0x00
		c.halted = true
		return 4
	}}
	opcodeTable[0xF3] = instruction{name: "DI", exec: func(c *CPU) int {
		c.ime = false
		c.eiDelay = 0
		return 4
	}}
	opcodeTable[0xFB] = instruction{name: "EI", exec: func(c *CPU) int {
		if !c.ime {
			c.eiDelay = 2
		}
		return 4
	}}
	opcodeTable[0x27] = instruction{name: "DAA", exec: func(c *CPU) int {
		result, flags := daaFlags(c.a, c.subtract(), c.halfCarry(), c.carry())
		c.a = result
		c.apply(flags)
		return 4
	}}
	opcodeTable[0x2F] = instruction{name: "CPL", exec: func(c *CPU) int {
		c.a = ^c.a
		c.apply(flagUpdate{N: flagBool(true), H: flagBool(true)})
		return 4
	}}
	opcodeTable[0x37] = instruction{name: "SCF", exec: func(c *CPU) int {
		c.apply(flagUpdate{N: flagBool(false), H: flagBool(false), C: flagBool(true)})
		return 4
	}}
	opcodeTable[0x3F] = instruction{name: "CCF", exec: func(c *CPU) int {
		c.apply(flagUpdate{N: flagBool(false), H: flagBool(false), C: flagBool(!c.carry())})
		return 4
	}}

	opcodeTable[0x07] = instruction{name: "RLCA", exec: func(c *CPU) int {
		result, flags := rlcFlags(c.a)
		c.a = result
		flags.Z = flagBool(false)
		c.apply(flags)
		return 4
	}}
	opcodeTable[0x0F] = instruction{name: "RRCA", exec: func(c *CPU) int {
		result, flags := rrcFlags(c.a)
		c.a = result
		flags.Z = flagBool(false)
		c.apply(flags)
		return 4
	}}
	opcodeTable[0x17] = instruction{name: "RLA", exec: func(c *CPU) int {
		result, flags := rlFlags(c.a, c.carry())
		c.a = result
		flags.Z = flagBool(false)
		c.apply(flags)
		return 4
	}}
	opcodeTable[0x1F] = instruction{name: "RRA", exec: func(c *CPU) int {
		result, flags := rrFlags(c.a, c.carry())
		c.a = result
		flags.Z = flagBool(false)
		c.apply(flags)
		return 4
	}}

	buildJumpTable()
	buildCallRetTable()
}

// condition is one of the four branch conditions JP/JR/CALL/RET encode.
type condition uint8

const (
	condNZ condition = iota
	condZ
	condNC
	condC
)

func (c *CPU) checkCondition(cond condition) bool {
	switch cond {
	case condNZ:
		return !c.zero()
	case condZ:
		return c.zero()
	case condNC:
		return !c.carry()
	case condC:
		return c.carry()
	default:
		return false
	}
}

func buildJumpTable() {
	opcodeTable[0xC3] = instruction{name: "JP a16", exec: func(c *CPU) int {
		target := c.fetch16()
		c.pc = target
		return 16
	}}
	opcodeTable[0xE9] = instruction{name: "JP (HL)", exec: func(c *CPU) int {
		c.pc = c.HL()
		return 4
	}}
	opcodeTable[0x18] = instruction{name: "JR e8", exec: func(c *CPU) int {
		offset := int8(c.fetch8())
		c.pc = uint16(int32(c.pc) + int32(offset))
		return 12
	}}

	jpConditional := [4]uint8{0xC2, 0xCA, 0xD2, 0xDA}
	jrConditional := [4]uint8{0x20, 0x28, 0x30, 0x38}
	conditions := [4]condition{condNZ, condZ, condNC, condC}

	for i, op := range jpConditional {
		cond := conditions[i]
		opcodeTable[op] = instruction{name: "JP cc,a16", exec: func(c *CPU) int {
			target := c.fetch16()
			if c.checkCondition(cond) {
				c.pc = target
				return 16
			}
			return 12
		}}
	}
	for i, op := range jrConditional {
		cond := conditions[i]
		opcodeTable[op] = instruction{name: "JR cc,e8", exec: func(c *CPU) int {
			offset := int8(c.fetch8())
			if c.checkCondition(cond) {
				c.pc = uint16(int32(c.pc) + int32(offset))
				return 12
			}
			return 8
		}}
	}
}

func buildCallRetTable() {
	opcodeTable[0xCD] = instruction{name: "CALL a16", exec: func(c *CPU) int {
		target := c.fetch16()
		c.pushStack(c.pc)
		c.pc = target
		return 24
	}}
	opcodeTable[0xC9] = instruction{name: "RET", exec: func(c *CPU) int {
		c.pc = c.popStack()
		return 16
	}}
	opcodeTable[0xD9] = instruction{name: "RETI", exec: func(c *CPU) int {
		c.pc = c.popStack()
		c.ime = true
		c.eiDelay = 0
		return 16
	}}

	callConditional := [4]uint8{0xC4, 0xCC, 0xD4, 0xDC}
	retConditional := [4]uint8{0xC0, 0xC8, 0xD0, 0xD8}
	conditions := [4]condition{condNZ, condZ, condNC, condC}

	for i, op := range callConditional {
		cond := conditions[i]
		opcodeTable[op] = instruction{name: "CALL cc,a16", exec: func(c *CPU) int {
			target := c.fetch16()
			if c.checkCondition(cond) {
				c.pushStack(c.pc)
				c.pc = target
				return 24
			}
			return 12
		}}
	}
	for i, op := range retConditional {
		cond := conditions[i]
		opcodeTable[op] = instruction{name: "RET cc", exec: func(c *CPU) int {
			if c.checkCondition(cond) {
				c.pc = c.popStack()
				return 20
			}
			return 8
		}}
	}

	rstOpcodes := [8]uint8{0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF}
	for i, op := range rstOpcodes {
		target := uint16(i * 8)
		opcodeTable[op] = instruction{name: "RST", exec: func(c *CPU) int {
			c.pushStack(c.pc)
			c.pc = target
			return 16
		}}
	}
}
