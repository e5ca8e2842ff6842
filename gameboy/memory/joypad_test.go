package memory

import "testing"

func TestJoypadReadSelectsDirectionLines(t *testing.T) {
	j := newJoypad()
	j.snapshot = func() uint8 { return 0xFF &^ (ButtonRight | ButtonA) } // Right+A pressed, rest released
	j.write(0x20) // select direction keys (bit 4 low), action keys deselected

	got := j.read()
	if got&0x01 != 0 {
		t.Errorf("Right should read as pressed (bit clear); got %08b", got)
	}
	if got&0x02 == 0 {
		t.Errorf("Left should read as not pressed (bit set); got %08b", got)
	}
}

func TestJoypadReadSelectsActionLines(t *testing.T) {
	j := newJoypad()
	j.snapshot = func() uint8 { return 0xFF &^ (ButtonA | ButtonStart) } // A+Start pressed, rest released
	j.write(0x10) // select action keys

	got := j.read()
	if got&0x01 != 0 {
		t.Errorf("A should read as pressed (bit clear); got %08b", got)
	}
	if got&0x08 != 0 {
		t.Errorf("Start should read as pressed (bit clear); got %08b", got)
	}
	if got&0x02 == 0 {
		t.Errorf("B should read as not pressed (bit set); got %08b", got)
	}
}

func TestJoypadPollEdgeFiresOnNewPress(t *testing.T) {
	j := newJoypad()
	pressed := false
	j.snapshot = func() uint8 {
		if pressed {
			return 0xFF &^ ButtonA
		}
		return 0xFF
	}
	j.write(0x10)

	if j.pollEdge() {
		t.Fatalf("no edge expected before any key is pressed")
	}
	pressed = true
	if !j.pollEdge() {
		t.Fatalf("expected an edge once A transitions to pressed")
	}
	if j.pollEdge() {
		t.Fatalf("no further edge expected while A stays held")
	}
}
