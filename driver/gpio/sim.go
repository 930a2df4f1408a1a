package gpio

import (
	"sync"

	"example.com/blink-demo/base/gpio"
	"example.com/blink-demo/base/timebase"
)

// Transition is one recorded pin write.
type Transition struct {
	Pin   gpio.Pin
	Level gpio.Level
	Ticks uint32
}

// SimulatedPins is an in-memory pin bank that records every write.
// When a clock is set, transitions are stamped with the tick counter.
// Observing levels from outside a critical section is inherently a
// best-effort snapshot; the recorder's own lock only keeps the log
// consistent, it provides no synchronization with the tasks.
type SimulatedPins struct {
	Clock timebase.MonotonicClock

	mu          sync.Mutex
	levels      map[gpio.Pin]gpio.Level
	transitions []Transition
}

var _ gpio.Output = (*SimulatedPins)(nil)

func (p *SimulatedPins) SetPin(pin gpio.Pin, level gpio.Level) {
	var t uint32
	if p.Clock != nil {
		t = p.Clock.Ticks()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.levels == nil {
		p.levels = make(map[gpio.Pin]gpio.Level)
	}
	p.levels[pin] = level
	p.transitions = append(p.transitions, Transition{Pin: pin, Level: level, Ticks: t})
}

// Level returns the last written level of a pin, Low if never written.
func (p *SimulatedPins) Level(pin gpio.Pin) gpio.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.levels[pin]
}

// Transitions returns a copy of the recorded writes in order.
func (p *SimulatedPins) Transitions() []Transition {
	p.mu.Lock()
	defer p.mu.Unlock()
	ts := make([]Transition, len(p.transitions))
	copy(ts, p.transitions)
	return ts
}

// Reset clears recorded writes and levels.
func (p *SimulatedPins) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.levels = nil
	p.transitions = nil
}
