// Package render implements a terminal host for the emulator: it blits a
// FrameBuffer to a tcell screen using the half-block technique (two vertical
// pixels per character cell, foreground/background color for top/bottom),
// and reads keyboard events into an input.Manager.
package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/sdslabs/gbemu-sub000/gameboy"
	"github.com/sdslabs/gbemu-sub000/gameboy/input"
	"github.com/sdslabs/gbemu-sub000/gameboy/input/action"
	"github.com/sdslabs/gbemu-sub000/gameboy/video"
)

// keyTimeout is how long a Game Boy button is considered held after its
// last key event. A terminal delivers key-down events (often repeated while
// held, with gaps between repeats) but no key-up event at all, so a button
// must be expired on a timeout rather than released explicitly.
const keyTimeout = 100 * time.Millisecond

// shadeColor maps each of the four monochrome shades to an RGB color
// approximating the classic DMG-001 green-grey palette.
var shadeColor = [4]tcell.Color{
	video.ShadeWhite:     tcell.NewRGBColor(0xE0, 0xF8, 0xD0),
	video.ShadeLightGrey: tcell.NewRGBColor(0x88, 0xC0, 0x70),
	video.ShadeDarkGrey:  tcell.NewRGBColor(0x34, 0x68, 0x56),
	video.ShadeBlack:     tcell.NewRGBColor(0x08, 0x18, 0x20),
}

// Terminal is a tcell-backed host: it owns the screen, pumps key events
// into an input.Manager, and presents frames the emulator produces.
type Terminal struct {
	screen tcell.Screen
	emu    *gameboy.Emulator
	input  *input.Manager
	quit   bool

	lastPressed map[action.Action]time.Time
}

// NewTerminal initializes a tcell screen and wires it to emu: frames the
// emulator produces are drawn here, and key presses update manager, which
// the caller should already have wired to emu.SetInputSnapshot.
func NewTerminal(emu *gameboy.Emulator, manager *input.Manager) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	screen.HideCursor()

	t := &Terminal{screen: screen, emu: emu, input: manager, lastPressed: make(map[action.Action]time.Time)}
	manager.On(action.Quit, func() { t.quit = true })
	emu.SetPresent(t.present)
	return t, nil
}

// Close restores the terminal to its normal mode.
func (t *Terminal) Close() {
	t.screen.Fini()
}

// Run drives the emulator one frame at a time, pumping input events and
// redrawing, until the host quits or maxFrames is reached (0 means
// unbounded).
func (t *Terminal) Run(maxFrames int) {
	frame := 0
	for !t.quit {
		t.pollEvents()
		if t.quit {
			return
		}
		t.emu.RunFrame()
		frame++
		if maxFrames > 0 && frame >= maxFrames {
			return
		}
	}
}

func (t *Terminal) pollEvents() {
	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventKey:
			t.handleKey(e)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
	t.expireStaleKeys(time.Now())
}

func (t *Terminal) handleKey(e *tcell.EventKey) {
	if a, ok := input.DefaultKeyMap[e.Key()]; ok {
		t.press(a)
		return
	}
	if e.Key() == tcell.KeyRune {
		if a, ok := input.DefaultRuneMap[e.Rune()]; ok {
			t.press(a)
		}
	}
}

// press records a as held and, for Game Boy buttons, stamps the time so
// expireStaleKeys can release it once no further key events refresh it.
func (t *Terminal) press(a action.Action) {
	t.input.Press(a)
	if a.IsGameBoyButton() {
		t.lastPressed[a] = time.Now()
	}
}

// expireStaleKeys releases any Game Boy button whose last key event is
// older than keyTimeout. The terminal never sees a key-up event, so this is
// the only mechanism that turns a key press into a release.
func (t *Terminal) expireStaleKeys(now time.Time) {
	for a, pressedAt := range t.lastPressed {
		if now.Sub(pressedAt) >= keyTimeout {
			t.input.Release(a)
			delete(t.lastPressed, a)
		}
	}
}

// present draws one completed frame using the half-block technique: each
// terminal row covers two framebuffer rows, the top one as the cell's
// foreground color (drawn with an upper-half-block glyph) and the bottom one
// as its background color.
func (t *Terminal) present(fb *video.FrameBuffer) {
	style := tcell.StyleDefault
	for y := 0; y < video.ScreenHeight; y += 2 {
		for x := 0; x < video.ScreenWidth; x++ {
			top := fb.GetPixel(x, y)
			bottom := video.ShadeWhite
			if y+1 < video.ScreenHeight {
				bottom = fb.GetPixel(x, y+1)
			}
			cellStyle := style.Foreground(shadeColor[top]).Background(shadeColor[bottom])
			t.screen.SetContent(x, y/2, '▀', nil, cellStyle)
		}
	}
	t.screen.Show()
}
