package signal_test

import (
	"testing"

	"example.com/blink-demo/base/gpio"
	"example.com/blink-demo/core/signal"
	gpiodrv "example.com/blink-demo/driver/gpio"
)

func TestLogicalSignalString(t *testing.T) {
	tests := []struct {
		sig  signal.LogicalSignal
		want string
	}{
		{signal.PrimaryA, "primary_a"},
		{signal.PrimaryB, "primary_b"},
		{signal.Collision, "collision"},
		{signal.Activity, "activity"},
		{signal.LogicalSignal(99), "unknown"},
	}

	for _, tt := range tests {
		got := tt.sig.String()
		if got != tt.want {
			t.Errorf("LogicalSignal(%d).String() = %q, want %q", int(tt.sig), got, tt.want)
		}
	}
}

func TestBoardMapping(t *testing.T) {
	pins := &gpiodrv.SimulatedPins{}
	b := signal.NewBoard(pins, 1, 2, 3, 4)

	tests := []struct {
		sig signal.LogicalSignal
		pin gpio.Pin
	}{
		{signal.PrimaryA, 1},
		{signal.PrimaryB, 2},
		{signal.Collision, 3},
		{signal.Activity, 4},
	}

	for _, tt := range tests {
		if got := b.Pin(tt.sig); got != tt.pin {
			t.Errorf("Pin(%v) = %v, want %v", tt.sig, got, tt.pin)
		}
		b.Set(tt.sig, true)
		if got := pins.Level(tt.pin); got != gpio.High {
			t.Errorf("after Set(%v, true), pin %v level = %v, want High", tt.sig, tt.pin, got)
		}
		b.Set(tt.sig, false)
		if got := pins.Level(tt.pin); got != gpio.Low {
			t.Errorf("after Set(%v, false), pin %v level = %v, want Low", tt.sig, tt.pin, got)
		}
	}

	if got := len(pins.Transitions()); got != 2*len(tests) {
		t.Errorf("recorded %d transitions, want %d", got, 2*len(tests))
	}
}

func TestBoardLevelsAreIndependent(t *testing.T) {
	pins := &gpiodrv.SimulatedPins{}
	b := signal.NewBoard(pins, 1, 2, 3, 4)

	b.Set(signal.PrimaryA, true)
	b.Set(signal.Collision, true)
	b.Set(signal.PrimaryA, false)

	if got := pins.Level(3); got != gpio.High {
		t.Errorf("collision pin level = %v, want High", got)
	}
	if got := pins.Level(1); got != gpio.Low {
		t.Errorf("primary A pin level = %v, want Low", got)
	}
	if got := pins.Level(2); got != gpio.Low {
		t.Errorf("primary B pin level = %v, want Low", got)
	}
}

func TestNewBoardNilOutput(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("signal.NewBoard(nil, ...), did not panic")
		}
	}()
	signal.NewBoard(nil, 1, 2, 3, 4)
}

func TestSetInvalidSignal(t *testing.T) {
	pins := &gpiodrv.SimulatedPins{}
	b := signal.NewBoard(pins, 1, 2, 3, 4)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Set with invalid signal, did not panic")
		}
	}()
	b.Set(signal.LogicalSignal(99), true)
}
