package timebase

import (
	"time"
)

// MonotonicClock is the process-wide time base: a millisecond counter
// that is monotonically non-decreasing and wraps at 2^32, plus a
// scheduler-aware sleep. The counter is initialized once at startup
// and never reset.
type MonotonicClock interface {
	Ticks() uint32
	Sleep(duration time.Duration)
}
