package input

import (
	"testing"

	"github.com/sdslabs/gbemu-sub000/gameboy/input/action"
	"github.com/sdslabs/gbemu-sub000/gameboy/memory"
)

func TestPressReleaseTracksHeldButtons(t *testing.T) {
	m := NewManager()

	m.Press(action.A)
	m.Press(action.Up)
	want := uint8(0xFF) &^ (memory.ButtonA | memory.ButtonUp)
	if got := m.Snapshot(); got != want {
		t.Errorf("Snapshot = %08b; want A|Up pressed (clear), rest released (set)", got)
	}

	m.Release(action.A)
	want = uint8(0xFF) &^ memory.ButtonUp
	if got := m.Snapshot(); got != want {
		t.Errorf("Snapshot = %08b; want only Up pressed after releasing A", got)
	}
}

func TestPressInvokesEmulatorActionHandler(t *testing.T) {
	m := NewManager()
	called := false
	m.On(action.Quit, func() { called = true })

	m.Press(action.Quit)

	if !called {
		t.Fatalf("expected the Quit handler to be invoked")
	}
	if m.Snapshot() != 0xFF {
		t.Errorf("Snapshot = %08b; emulator-level actions must not affect joypad state", m.Snapshot())
	}
}

func TestReleaseIsNoOpForEmulatorActions(t *testing.T) {
	m := NewManager()
	m.Release(action.Pause) // must not panic despite Pause having no held bit
}
