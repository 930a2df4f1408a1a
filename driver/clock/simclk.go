package clock

import (
	"runtime"
	"sync/atomic"
	"time"

	"example.com/blink-demo/base/timebase"
	"example.com/blink-demo/base/timemath"
)

// SimulatedClock is a manual time base for tests and benchmarks. Every
// poll advances the counter by Quantum ticks, so busy-wait loops make
// progress without consuming wall-clock time, and Sleep advances the
// counter by the full duration at once. The counter is a plain uint32
// and wraps like the real time base.
type SimulatedClock struct {
	// Quantum is the number of ticks each Ticks call adds; zero means
	// one.
	Quantum uint32

	ticks atomic.Uint32
}

var _ timebase.MonotonicClock = (*SimulatedClock)(nil)

// SetTicks positions the counter, e.g. near the wraparound boundary.
func (c *SimulatedClock) SetTicks(t uint32) {
	c.ticks.Store(t)
}

func (c *SimulatedClock) Ticks() uint32 {
	q := c.Quantum
	if q == 0 {
		q = 1
	}
	return c.ticks.Add(q)
}

func (c *SimulatedClock) Sleep(duration time.Duration) {
	c.ticks.Add(timemath.FromDuration(duration))
	runtime.Gosched()
}
