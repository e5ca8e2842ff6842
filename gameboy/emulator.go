// Package gameboy wires the CPU, memory bus and PPU into a single runnable
// system: one call to RunFrame steps every component forward by at least one
// 70224-cycle frame.
package gameboy

import (
	"fmt"
	"log/slog"

	"github.com/sdslabs/gbemu-sub000/gameboy/addr"
	"github.com/sdslabs/gbemu-sub000/gameboy/cpu"
	"github.com/sdslabs/gbemu-sub000/gameboy/memory"
	"github.com/sdslabs/gbemu-sub000/gameboy/video"
)

// CyclesPerFrame is the number of T-cycles in one 59.7Hz video frame:
// 154 scanlines x 456 cycles.
const CyclesPerFrame = 70224

// PresentFunc is called once per completed frame with the finished
// framebuffer. Hosts implement this to blit to a window, terminal, or test
// harness.
type PresentFunc func(*video.FrameBuffer)

// Emulator owns one running Game Boy: its cartridge, CPU, memory bus and
// PPU, stepped together one frame at a time.
type Emulator struct {
	CPU   *cpu.CPU
	Bus   *memory.Bus
	PPU   *video.PPU

	logger *slog.Logger
}

// New constructs an Emulator from a cartridge ROM image. If bootROM is
// non-empty, it is overlaid at 0x0000-0x00FF until the program disables it;
// otherwise the CPU is seeded directly with the documented post-boot
// register state, since no real Nintendo boot ROM can be embedded here.
func New(romData []byte, bootROM []byte, logger *slog.Logger) (*Emulator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	bus, err := memory.NewBus(romData)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}

	ppu := video.NewPPU(bus.VRAM(), bus.OAM())
	ppu.RequestInterrupt = bus.RequestInterrupt
	bus.AttachPPU(ppu)

	c := cpu.New(bus)

	if len(bootROM) > 0 {
		bus.AttachBootROM(bootROM)
		logger.Info("boot ROM attached", "size", len(bootROM))
	} else {
		c.SkipBootROM()
		logger.Info("no boot ROM provided, seeding post-boot register state")
	}

	logger.Info("cartridge loaded",
		"title", bus.Cartridge().Title,
		"mbc", bus.Cartridge().MBC,
		"rom_banks", bus.Cartridge().ROMBanks,
		"ram_bytes", bus.Cartridge().RAMBytes,
	)

	return &Emulator{CPU: c, Bus: bus, PPU: ppu, logger: logger}, nil
}

// SetInputSnapshot installs the host callback queried for the joypad state
// on every P1 read and poll.
func (e *Emulator) SetInputSnapshot(fn memory.InputSnapshot) {
	e.Bus.SetInputSnapshot(fn)
}

// SetSerialSink installs the callback invoked with each byte a ROM shifts
// out over the serial port (commonly used by test ROMs to report results).
func (e *Emulator) SetSerialSink(fn memory.LogSink) {
	e.Bus.SetSerialSink(fn)
}

// SetPresent installs the callback invoked once per completed frame.
func (e *Emulator) SetPresent(fn PresentFunc) {
	if fn == nil {
		e.PPU.FrameReady = nil
		return
	}
	e.PPU.FrameReady = func(fb *video.FrameBuffer) { fn(fb) }
}

// RunFrame steps the CPU, timer and PPU forward until at least one frame's
// worth of cycles (CyclesPerFrame) has elapsed, then polls the joypad once.
// CPU instructions don't divide CyclesPerFrame evenly, so the final
// instruction of a frame may slightly overrun it. The overrun is not carried
// into the next call: every call counts from zero.
func (e *Emulator) RunFrame() {
	spent := 0
	for spent < CyclesPerFrame {
		cycles := e.CPU.Step()
		e.Bus.TickTimer(cycles)
		e.PPU.Tick(cycles)
		spent += cycles
	}
	e.Bus.PollJoypad()
}

// FrameBuffer returns the most recently completed frame.
func (e *Emulator) FrameBuffer() *video.FrameBuffer {
	return e.PPU.FrameBuffer()
}

// RequestInterrupt exposes the bus's interrupt line for components outside
// this package (a host's debug UI, for instance) that need to inject one.
func (e *Emulator) RequestInterrupt(i addr.Interrupt) {
	e.Bus.RequestInterrupt(i)
}
