package cpu

// cbTable is the 256-entry table for CB-prefixed opcodes: bit rotates/shifts,
// and the BIT/RES/SET family, each generated over the same eight r8 operand
// slots the main table uses.
var cbTable [256]instruction

func init() {
	buildCBShiftTable()
	buildCBBitTable()
}

func buildCBShiftTable() {
	ops := [8]struct {
		name string
		fn   func(c *CPU, a uint8) (uint8, flagUpdate)
	}{
		{"RLC", func(c *CPU, a uint8) (uint8, flagUpdate) { return rlcFlags(a) }},
		{"RRC", func(c *CPU, a uint8) (uint8, flagUpdate) { return rrcFlags(a) }},
		{"RL", func(c *CPU, a uint8) (uint8, flagUpdate) { return rlFlags(a, c.carry()) }},
		{"RR", func(c *CPU, a uint8) (uint8, flagUpdate) { return rrFlags(a, c.carry()) }},
		{"SLA", func(c *CPU, a uint8) (uint8, flagUpdate) { return slaFlags(a) }},
		{"SRA", func(c *CPU, a uint8) (uint8, flagUpdate) { return sraFlags(a) }},
		{"SWAP", func(c *CPU, a uint8) (uint8, flagUpdate) { return swapFlags(a) }},
		{"SRL", func(c *CPU, a uint8) (uint8, flagUpdate) { return srlFlags(a) }},
	}

	for opIdx, op := range ops {
		for srcIdx, src := range r8List {
			opcode := uint8(opIdx*8 + srcIdx)
			f, rr := op.fn, src
			cycles := 8
			if rr == regHLInd {
				cycles = 16
			}
			cbTable[opcode] = instruction{
				name: op.name + " " + r8Names[srcIdx],
				exec: func(c *CPU) int {
					result, flags := f(c, c.getR8(rr))
					c.setR8(rr, result)
					c.apply(flags)
					return cycles
				},
			}
		}
	}
}

func buildCBBitTable() {
	for bitIdx := uint8(0); bitIdx < 8; bitIdx++ {
		for srcIdx, src := range r8List {
			rr := src
			b := bitIdx

			bitOp := uint8(0x40 + int(bitIdx)*8 + srcIdx)
			bitCycles := 8
			if rr == regHLInd {
				bitCycles = 12
			}
			cbTable[bitOp] = instruction{
				name: "BIT",
				exec: func(c *CPU) int {
					c.apply(bitFlags(c.getR8(rr), b))
					return bitCycles
				},
			}

			resOp := uint8(0x80 + int(bitIdx)*8 + srcIdx)
			setOp := uint8(0xC0 + int(bitIdx)*8 + srcIdx)
			rwCycles := 8
			if rr == regHLInd {
				rwCycles = 16
			}
			cbTable[resOp] = instruction{
				name: "RES",
				exec: func(c *CPU) int {
					c.setR8(rr, c.getR8(rr)&^(1<<b))
					return rwCycles
				},
			}
			cbTable[setOp] = instruction{
				name: "SET",
				exec: func(c *CPU) int {
					c.setR8(rr, c.getR8(rr)|(1<<b))
					return rwCycles
				},
			}
		}
	}
}
