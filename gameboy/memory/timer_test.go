package memory

import "testing"

func TestTimerDIVIncrementsWithCounter(t *testing.T) {
	timer := &Timer{}
	timer.Tick(256)
	if got := timer.Read(divAddress); got != 1 {
		t.Errorf("DIV = %d; want 1 after 256 cycles", got)
	}
}

func TestTimerDIVWriteResetsCounter(t *testing.T) {
	timer := &Timer{counter: 0x1234}
	timer.Write(divAddress, 0x99) // value is irrelevant, any write resets
	if got := timer.Read(divAddress); got != 0 {
		t.Errorf("DIV = %d; want 0 after write", got)
	}
}

func TestTimerTIMAIncrementsAtSelectedFrequency(t *testing.T) {
	timer := &Timer{}
	timer.Write(tacAddress, 0x05) // enabled, frequency select 1 -> bit 3, every 16 cycles
	timer.Tick(16)
	if got := timer.Read(timaAddress); got != 1 {
		t.Errorf("TIMA = %d; want 1 after 16 cycles at the fastest frequency", got)
	}
}

func TestTimerOverflowReloadsFromTMAAndRequestsInterrupt(t *testing.T) {
	timer := &Timer{tima: 0xFF, tma: 0x7C}
	timer.Write(tacAddress, 0x05)

	fired := false
	timer.RequestTimer = func() { fired = true }

	timer.Tick(16) // one tick at this frequency: TIMA overflows past 0xFF
	if got := timer.Read(timaAddress); got != 0x7C {
		t.Fatalf("TIMA after overflow = %X; want TMA value 0x7C reloaded on the same tick", got)
	}
	if !fired {
		t.Errorf("expected timer interrupt to be requested on the overflow tick")
	}
}

func TestTimerDisabledDoesNotIncrementTIMA(t *testing.T) {
	timer := &Timer{}
	timer.Write(tacAddress, 0x01) // frequency selected, but enable bit clear
	timer.Tick(64)
	if got := timer.Read(timaAddress); got != 0 {
		t.Errorf("TIMA = %d; want 0 while the timer is disabled", got)
	}
}
