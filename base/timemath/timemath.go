package timemath

import (
	"time"
)

// The process-wide time base is a fixed-width unsigned millisecond
// counter that wraps at 2^32. Comparisons must go through Elapsed
// rather than comparing absolute tick values; unsigned subtraction
// stays correct across one wraparound.

func FromDuration(d time.Duration) uint32 {
	if d < 0 {
		panic("invalid duration")
	}
	return uint32(d / time.Millisecond)
}

func ToDuration(t uint32) time.Duration {
	return time.Duration(t) * time.Millisecond
}

// Elapsed returns the number of ticks between start and now. The
// result is correct as long as now is not more than one full counter
// width ahead of start.
func Elapsed(now, start uint32) uint32 {
	return now - start
}

// Expired reports whether at least d has passed between start and now.
func Expired(now, start uint32, d time.Duration) bool {
	return Elapsed(now, start) >= FromDuration(d)
}
