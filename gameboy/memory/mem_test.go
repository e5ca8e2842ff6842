package memory

import (
	"testing"

	"github.com/sdslabs/gbemu-sub000/gameboy/addr"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	data := make([]byte, 0x8000)
	bus, err := NewBus(data)
	if err != nil {
		t.Fatalf("NewBus: %v", err)
	}
	return bus
}

func TestBusWRAMAndEchoAlias(t *testing.T) {
	bus := newTestBus(t)
	bus.Write(0xC010, 0x5A)
	if got := bus.Read(0xE010); got != 0x5A {
		t.Errorf("echo RAM read = %X; want 0x5A (aliases WRAM)", got)
	}
}

func TestBusHRAMRoundTrip(t *testing.T) {
	bus := newTestBus(t)
	bus.Write(0xFF90, 0x42)
	if got := bus.Read(0xFF90); got != 0x42 {
		t.Errorf("HRAM read = %X; want 0x42", got)
	}
}

func TestBusOAMDMACopiesFullTransferWindow(t *testing.T) {
	bus := newTestBus(t)
	for i := uint16(0); i < 0xA0; i++ {
		bus.Write(0xC100+i, byte(i))
	}

	bus.Write(addr.DMA, 0xC1)

	for i := uint16(0); i < 0xA0; i++ {
		want := byte(i)
		if got := bus.Read(addr.OAMStart + i); got != want {
			t.Fatalf("OAM[%d] = %X; want %X after DMA from 0xC100", i, got, want)
		}
	}
}

func TestBusBootROMOverlayDisabledByWrite(t *testing.T) {
	bus := newTestBus(t)
	boot := make([]byte, 0x100)
	boot[0] = 0xAA
	bus.AttachBootROM(boot)

	if got := bus.Read(0x0000); got != 0xAA {
		t.Fatalf("Read(0x0000) = %X; want boot ROM byte 0xAA while overlay active", got)
	}

	bus.Write(addr.BOOT, 0x01)

	if got := bus.Read(0x0000); got == 0xAA {
		t.Errorf("Read(0x0000) still returns boot ROM byte after BOOT register disable")
	}
}

func TestBusInterruptRequestAndClear(t *testing.T) {
	bus := newTestBus(t)
	bus.Write(addr.IE, uint8(addr.TimerInterrupt|addr.VBlankInterrupt))

	bus.RequestInterrupt(addr.TimerInterrupt)
	if bus.PendingInterrupts() != uint8(addr.TimerInterrupt) {
		t.Fatalf("PendingInterrupts = %05b; want only TimerInterrupt set", bus.PendingInterrupts())
	}

	bus.ClearInterrupt(addr.TimerInterrupt)
	if bus.PendingInterrupts() != 0 {
		t.Errorf("PendingInterrupts = %05b; want 0 after clear", bus.PendingInterrupts())
	}
}

func TestBusIFReadAlwaysHasUpperBitsSet(t *testing.T) {
	bus := newTestBus(t)
	if got := bus.Read(addr.IF); got&0xE0 != 0xE0 {
		t.Errorf("IF read = %08b; want upper 3 bits set", got)
	}
}

func TestBusTimerInterruptWiredToBus(t *testing.T) {
	bus := newTestBus(t)
	bus.Write(addr.TIMA, 0xFF)
	bus.Write(addr.TMA, 0x10)
	bus.Write(addr.TAC, 0x05)
	bus.Write(addr.IE, uint8(addr.TimerInterrupt))

	bus.TickTimer(16) // one edge at this frequency: TIMA overflows and reloads synchronously

	if bus.PendingInterrupts()&uint8(addr.TimerInterrupt) == 0 {
		t.Errorf("expected TimerInterrupt to be pending after TIMA overflow")
	}
}

func TestBusJoypadEdgeRequestsInterrupt(t *testing.T) {
	bus := newTestBus(t)
	bus.Write(addr.IE, uint8(addr.JoypadInterrupt))
	bus.Write(addr.P1, 0x20) // select direction keys

	pressed := false
	bus.SetInputSnapshot(func() uint8 {
		if pressed {
			return 0xFF &^ ButtonDown
		}
		return 0xFF
	})

	bus.PollJoypad()
	if bus.PendingInterrupts() != 0 {
		t.Fatalf("no interrupt expected before any key is pressed")
	}

	pressed = true
	bus.PollJoypad()
	if bus.PendingInterrupts()&uint8(addr.JoypadInterrupt) == 0 {
		t.Errorf("expected JoypadInterrupt to be pending after Down is pressed")
	}
}
