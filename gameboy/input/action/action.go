// Package action names the logical inputs a host can bind keys to: the
// eight Game Boy hardware buttons, plus the handful of emulator-level
// controls (pause, quit) that sit outside the joypad matrix entirely.
package action

// Action is one input a key can be bound to.
type Action uint8

const (
	Up Action = iota
	Down
	Left
	Right
	A
	B
	Start
	Select

	Pause
	Quit
)

// Category groups an Action for UI/help-text purposes.
type Category uint8

const (
	CategoryGameBoy Category = iota
	CategoryEmulator
)

// Info describes an Action for display purposes.
type Info struct {
	Name     string
	Category Category
}

var infoTable = map[Action]Info{
	Up:     {"Up", CategoryGameBoy},
	Down:   {"Down", CategoryGameBoy},
	Left:   {"Left", CategoryGameBoy},
	Right:  {"Right", CategoryGameBoy},
	A:      {"A", CategoryGameBoy},
	B:      {"B", CategoryGameBoy},
	Start:  {"Start", CategoryGameBoy},
	Select: {"Select", CategoryGameBoy},
	Pause:  {"Pause", CategoryEmulator},
	Quit:   {"Quit", CategoryEmulator},
}

// GetInfo returns the display metadata for an Action.
func GetInfo(a Action) Info {
	return infoTable[a]
}

// IsGameBoyButton reports whether a is one of the eight hardware buttons
// that feed the joypad matrix, as opposed to an emulator-level control.
func (a Action) IsGameBoyButton() bool {
	return infoTable[a].Category == CategoryGameBoy
}
