// Package cpu implements the Sharp LR35902 instruction set: fetch/decode/
// execute, the interrupt dispatch sequence, and the HALT/STOP quirks real
// software depends on.
package cpu

import (
	"github.com/sdslabs/gbemu-sub000/gameboy/addr"
	"github.com/sdslabs/gbemu-sub000/gameboy/bit"
	"github.com/sdslabs/gbemu-sub000/gameboy/memory"
)

// CPU is the Sharp LR35902 core. Registers are flat bytes rather than a
// struct of register pairs: AF/BC/DE/HL are assembled on demand by
// registers.go, which keeps the opcode tables simple to generate
// programmatically over the eight r8 operand slots.
type CPU struct {
	bus *memory.Bus

	a, b, c, d, e, h, l, f uint8
	sp, pc                 uint16

	ime     bool
	eiDelay int
	halted  bool
	haltBug bool
}

// New returns a CPU wired to bus, with every register zeroed as it would be
// entering the boot ROM at 0x0000.
func New(bus *memory.Bus) *CPU {
	return &CPU{bus: bus}
}

// SkipBootROM seeds the documented post-boot register state and sets PC to
// 0x0100, the cartridge entry point. The emulator calls this when it has no
// boot ROM image to run instead.
func (c *CPU) SkipBootROM() {
	c.setAF(0x01B0)
	c.setBC(0x0013)
	c.setDE(0x00D8)
	c.setHL(0x014D)
	c.sp = 0xFFFE
	c.pc = 0x0100
}

// Halted reports whether the CPU is currently suspended in HALT.
func (c *CPU) Halted() bool { return c.halted }

// IME reports the current state of the interrupt master enable flag.
func (c *CPU) IME() bool { return c.ime }

// Step executes exactly one instruction (or one interrupt dispatch, or one
// halted no-op cycle) and returns the number of T-cycles it took.
func (c *CPU) Step() int {
	var cycles int
	switch {
	case c.serviceInterruptPending():
		cycles = c.serviceInterrupt()
	case c.halted:
		cycles = 4
	default:
		cycles = c.executeOne()
	}

	if c.eiDelay > 0 {
		c.eiDelay--
		if c.eiDelay == 0 {
			c.ime = true
		}
	}

	return cycles
}

// serviceInterruptPending reports whether any enabled interrupt is pending,
// and wakes the CPU from HALT if so, whether or not IME is set: a disabled
// interrupt still wakes a halted CPU, it just isn't dispatched.
func (c *CPU) serviceInterruptPending() bool {
	pending := c.bus.PendingInterrupts()
	if pending == 0 {
		return false
	}
	if c.halted {
		c.halted = false
	}
	return c.ime && pending != 0
}

// serviceInterrupt dispatches the highest-priority pending, enabled
// interrupt: two wait states, a push of PC, a jump to the vector, and IME
// cleared so the handler can't be re-entered until it re-enables it.
func (c *CPU) serviceInterrupt() int {
	pending := c.bus.PendingInterrupts()
	for _, src := range addr.OrderedInterrupts {
		if pending&uint8(src) == 0 {
			continue
		}
		c.ime = false
		c.eiDelay = 0
		c.bus.ClearInterrupt(src)
		c.pushStack(c.pc)
		c.pc = src.Vector()
		return 20
	}
	return 0
}

// executeOne fetches, decodes and runs a single instruction, honoring the
// HALT bug's suppressed PC increment on the opcode fetch.
func (c *CPU) executeOne() int {
	op := c.fetchOpcode()
	if op == 0xCB {
		cbOp := c.fetch8()
		return cbTable[cbOp].exec(c)
	}
	return opcodeTable[op].exec(c)
}

// fetchOpcode reads the byte at PC. Ordinarily it advances PC by one; if the
// HALT bug was just triggered, PC is left in place so this same byte is
// fetched (and executed) a second time as part of the following
// instruction too.
func (c *CPU) fetchOpcode() uint8 {
	op := c.bus.Read(c.pc)
	if c.haltBug {
		c.haltBug = false
	} else {
		c.pc++
	}
	return op
}

// fetch8 reads an operand byte at PC and advances PC.
func (c *CPU) fetch8() uint8 {
	v := c.bus.Read(c.pc)
	c.pc++
	return v
}

// fetch16 reads a little-endian operand word at PC and advances PC by two.
func (c *CPU) fetch16() uint16 {
	low := c.fetch8()
	high := c.fetch8()
	return bit.Combine(high, low)
}

func (c *CPU) pushStack(v uint16) {
	c.sp--
	c.bus.Write(c.sp, bit.High(v))
	c.sp--
	c.bus.Write(c.sp, bit.Low(v))
}

func (c *CPU) popStack() uint16 {
	low := c.bus.Read(c.sp)
	c.sp++
	high := c.bus.Read(c.sp)
	c.sp++
	return bit.Combine(high, low)
}
