package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/sdslabs/gbemu-sub000/gameboy/input/action"
)

// DefaultKeyMap binds the terminal host's keys to Game Boy buttons and the
// minimal set of emulator controls: arrow keys and WASD for direction,
// Z/X for B/A, Enter for Start, C for Select, Escape to quit, Space to
// pause.
var DefaultKeyMap = map[tcell.Key]action.Action{
	tcell.KeyUp:     action.Up,
	tcell.KeyDown:   action.Down,
	tcell.KeyLeft:   action.Left,
	tcell.KeyRight:  action.Right,
	tcell.KeyEnter:  action.Start,
	tcell.KeyEscape: action.Quit,
}

// DefaultRuneMap binds plain character keys, which tcell reports separately
// from the named keys above.
var DefaultRuneMap = map[rune]action.Action{
	'w': action.Up,
	'a': action.Left,
	's': action.Down,
	'd': action.Right,
	'x': action.A,
	'z': action.B,
	'c': action.Select,
	' ': action.Pause,
}
