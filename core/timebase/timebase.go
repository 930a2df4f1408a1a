package timebase

import (
	"sync/atomic"
	"time"

	"example.com/blink-demo/base/timebase"
	"example.com/blink-demo/base/timemath"
)

var clk atomic.Value

func RegisterClock(c timebase.MonotonicClock) {
	if c == nil {
		panic("monotonic clock must not be nil")
	}
	swapped := clk.CompareAndSwap(nil, c)
	if !swapped {
		panic("monotonic clock already registered")
	}
}

func clock() timebase.MonotonicClock {
	c, ok := clk.Load().(timebase.MonotonicClock)
	if !ok {
		panic("no monotonic clock registered")
	}
	return c
}

// Ticks returns the current value of the process-wide millisecond
// counter. It wraps at 2^32; compare values with timemath.Elapsed.
func Ticks() uint32 {
	return clock().Ticks()
}

// Sleep suspends the caller for at least the given duration, letting
// other tasks run in the meantime.
func Sleep(duration time.Duration) {
	clock().Sleep(duration)
}

// Spin busy-waits until the given duration has passed on the tick
// counter. It polls the counter in a tight loop and never yields, so a
// caller holding the scheduler gate keeps holding it for the whole
// wait. The unsigned-subtraction comparison tolerates one counter
// wraparound.
func Spin(duration time.Duration) {
	c := clock()
	start := c.Ticks()
	n := timemath.FromDuration(duration)
	for timemath.Elapsed(c.Ticks(), start) < n {
	}
}
