//go:build !linux

package clock

import (
	"context"
	"log/slog"
	"time"

	"example.com/blink-demo/base/timebase"
)

var epoch = time.Now()

// SystemClock derives the 32-bit millisecond time base from the Go
// runtime's monotonic clock. The counter wraps at 2^32.
type SystemClock struct {
	Log *slog.Logger
}

var _ timebase.MonotonicClock = (*SystemClock)(nil)

func (c *SystemClock) Ticks() uint32 {
	return uint32(time.Since(epoch).Milliseconds())
}

func (c *SystemClock) Sleep(duration time.Duration) {
	c.Log.LogAttrs(context.Background(), slog.LevelDebug, "SystemClock.Sleep",
		slog.Duration("duration", duration))
	time.Sleep(duration)
}
