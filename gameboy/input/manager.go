// Package input translates host key events into Game Boy button state and
// emulator-level actions. It is deliberately pull-based on the Game Boy
// side: Manager just maintains "what's held right now," and the memory bus
// asks for a snapshot of it whenever the program reads the joypad register,
// rather than the manager pushing press/release events into the bus itself.
package input

import (
	"sync"

	"github.com/sdslabs/gbemu-sub000/gameboy/input/action"
	"github.com/sdslabs/gbemu-sub000/gameboy/memory"
)

// buttonBits maps each Game Boy action to its InputSnapshot bit.
var buttonBits = map[action.Action]uint8{
	action.Right:  memory.ButtonRight,
	action.Left:   memory.ButtonLeft,
	action.Up:     memory.ButtonUp,
	action.Down:   memory.ButtonDown,
	action.A:      memory.ButtonA,
	action.B:      memory.ButtonB,
	action.Select: memory.ButtonSelect,
	action.Start:  memory.ButtonStart,
}

// Manager tracks currently-held buttons and dispatches emulator-level
// actions (pause, quit) to registered handlers.
type Manager struct {
	mu       sync.Mutex
	held     uint8
	handlers map[action.Action]func()
}

// NewManager returns an empty Manager: no buttons held, no handlers bound.
func NewManager() *Manager {
	return &Manager{handlers: make(map[action.Action]func())}
}

// On registers a callback for an emulator-level action. Calling it again for
// the same action replaces the previous handler.
func (m *Manager) On(a action.Action, handler func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[a] = handler
}

// Press records a press of the Game Boy button a is bound to, or invokes
// its registered handler if a is an emulator-level action instead.
func (m *Manager) Press(a action.Action) {
	if bit, ok := buttonBits[a]; ok {
		m.mu.Lock()
		m.held |= bit
		m.mu.Unlock()
		return
	}
	m.mu.Lock()
	handler := m.handlers[a]
	m.mu.Unlock()
	if handler != nil {
		handler()
	}
}

// Release clears a Game Boy button's held bit. It is a no-op for
// emulator-level actions, which fire once on Press and have no held state.
func (m *Manager) Release(a action.Action) {
	if bit, ok := buttonBits[a]; ok {
		m.mu.Lock()
		m.held &^= bit
		m.mu.Unlock()
	}
}

// Snapshot implements memory.InputSnapshot: the bus calls this directly.
// held tracks "currently pressed" bits internally; InputSnapshot's documented
// polarity is the opposite (1 = released, 0 = pressed), so it's inverted here
// at the boundary rather than threading the inverted convention through
// Press/Release too.
func (m *Manager) Snapshot() uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ^m.held
}
