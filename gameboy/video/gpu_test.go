package video

import (
	"testing"

	"github.com/sdslabs/gbemu-sub000/gameboy/addr"
)

func newTestPPU() (*PPU, *[0x2000]byte, *[0xA0]byte) {
	var vram [0x2000]byte
	var oam [0xA0]byte
	ppu := NewPPU(&vram, &oam)
	return ppu, &vram, &oam
}

func TestPPUModeProgressesThroughScanline(t *testing.T) {
	ppu, _, _ := newTestPPU()

	if ppu.mode != ModeOAMScan {
		t.Fatalf("initial mode = %v; want ModeOAMScan", ppu.mode)
	}

	ppu.Tick(oamScanCycles - 1)
	if ppu.mode != ModeOAMScan {
		t.Fatalf("mode switched early")
	}
	ppu.Tick(1)
	if ppu.mode != ModePixelTransfer {
		t.Fatalf("mode = %v after OAM scan; want ModePixelTransfer", ppu.mode)
	}

	ppu.Tick(pixelTransferCycles)
	if ppu.mode != ModeHBlank {
		t.Fatalf("mode = %v after pixel transfer; want ModeHBlank", ppu.mode)
	}

	ppu.Tick(hblankCycles)
	if ppu.ly != 1 {
		t.Fatalf("LY = %d after one scanline; want 1", ppu.ly)
	}
	if ppu.mode != ModeOAMScan {
		t.Fatalf("mode = %v at the start of the next line; want ModeOAMScan", ppu.mode)
	}
}

func TestPPUEntersVBlankAtLine144AndFiresInterrupt(t *testing.T) {
	ppu, _, _ := newTestPPU()
	fired := false
	ppu.RequestInterrupt = func(i addr.Interrupt) {
		if i == addr.VBlankInterrupt {
			fired = true
		}
	}

	for line := 0; line < ScreenHeight; line++ {
		ppu.Tick(scanlineCycles)
	}

	if ppu.mode != ModeVBlank {
		t.Fatalf("mode = %v at line %d; want ModeVBlank", ppu.mode, ppu.ly)
	}
	if !fired {
		t.Fatalf("expected VBlankInterrupt to fire on entering line 144")
	}
}

func TestPPUFrameReadyFiresOncePerFrame(t *testing.T) {
	ppu, _, _ := newTestPPU()
	frames := 0
	ppu.FrameReady = func(*FrameBuffer) { frames++ }

	for line := 0; line < 154; line++ {
		ppu.Tick(scanlineCycles)
	}

	if frames != 1 {
		t.Fatalf("FrameReady fired %d times over one full frame; want 1", frames)
	}
	if ppu.ly != 0 {
		t.Fatalf("LY = %d after line 153 rolls over; want 0", ppu.ly)
	}
}

func TestPPULYCCoincidenceSetsSTATBit(t *testing.T) {
	ppu, _, _ := newTestPPU()
	ppu.WritePort(addr.LYC, 1)

	ppu.Tick(scanlineCycles)

	stat := ppu.ReadPort(addr.STAT)
	if stat&(1<<statLYCCoincidence) == 0 {
		t.Fatalf("STAT = %08b; expected LYC coincidence bit set once LY == LYC", stat)
	}
}

func TestWindowInternalLineCounterOnlyAdvancesWhenDrawn(t *testing.T) {
	ppu, vram, _ := newTestPPU()

	// A single solid tile (all pixels color index 1) at tile 0, used by both
	// the background and window tile maps' first entry.
	for row := 0; row < 8; row++ {
		vram[row*2] = 0xFF
		vram[row*2+1] = 0x00
	}

	ppu.WritePort(addr.LCDC, 0x80|1<<lcdcBGEnable|1<<lcdcWindowEnable|1<<lcdcTileDataSelect)
	ppu.WritePort(addr.WY, 4)
	ppu.WritePort(addr.WX, 7)

	// Lines 0-3: window not yet visible (LY < WY), window line must not advance.
	for i := 0; i < 4; i++ {
		ppu.ly = uint8(i)
		ppu.drawScanline()
	}
	if ppu.windowLine != 0 {
		t.Fatalf("windowLine = %d before WY is reached; want 0", ppu.windowLine)
	}

	ppu.ly = 4
	ppu.drawScanline()
	if ppu.windowLine != 1 {
		t.Fatalf("windowLine = %d after one drawn window line; want 1", ppu.windowLine)
	}

	ppu.ly = 5
	ppu.drawScanline()
	if ppu.windowLine != 2 {
		t.Fatalf("windowLine = %d after two drawn window lines; want 2", ppu.windowLine)
	}
}

func TestLYWriteResetsToZero(t *testing.T) {
	ppu, _, _ := newTestPPU()

	ppu.Tick(scanlineCycles * 3) // LY is now 3
	if ppu.ly != 3 {
		t.Fatalf("LY = %d after three scanlines; want 3", ppu.ly)
	}

	ppu.WritePort(addr.LY, 0x42) // any write resets LY to 0, value is irrelevant
	if ppu.ly != 0 {
		t.Fatalf("LY = %d after a write; want 0", ppu.ly)
	}
}

func TestLCDCBGDisableAlsoSuppressesWindow(t *testing.T) {
	ppu, vram, _ := newTestPPU()

	for row := 0; row < 8; row++ {
		vram[row*2] = 0xFF
		vram[row*2+1] = 0x00
	}

	// Window enabled but BG/window master bit (LCDC bit 0) clear: on real
	// hardware this disables window compositing too, not just background.
	ppu.WritePort(addr.LCDC, 0x80|1<<lcdcWindowEnable|1<<lcdcTileDataSelect)
	ppu.WritePort(addr.WY, 0)
	ppu.WritePort(addr.WX, 7)

	ppu.ly = 0
	ppu.drawScanline()

	if ppu.windowLine != 0 {
		t.Fatalf("windowLine = %d with LCDC bit 0 clear; want 0, window must not draw", ppu.windowLine)
	}
	if got := ppu.fb.GetPixel(0, 0); got != ShadeWhite {
		t.Fatalf("pixel(0,0) = %v; want ShadeWhite, BG+window both disabled by LCDC bit 0", got)
	}
}
