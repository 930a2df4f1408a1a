//go:build linux

package clock

import (
	"context"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sys/unix"

	"example.com/blink-demo/base/logbase"
	"example.com/blink-demo/base/timebase"
)

// SystemClock reads the kernel's raw monotonic clock and truncates it
// to the 32-bit millisecond time base, so the counter wraps naturally
// at 2^32 like a hardware cycle counter would.
type SystemClock struct {
	Log *slog.Logger
}

var _ timebase.MonotonicClock = (*SystemClock)(nil)

func (c *SystemClock) Ticks() uint32 {
	var ts unix.Timespec
	err := unix.ClockGettime(unix.CLOCK_MONOTONIC_RAW, &ts)
	if err != nil {
		logbase.Fatal(c.Log, "unix.ClockGettime failed", slog.Any("error", err))
	}
	return uint32(int64(ts.Sec)*1_000 + int64(ts.Nsec)/1_000_000)
}

func (c *SystemClock) Sleep(duration time.Duration) {
	c.Log.LogAttrs(context.Background(), slog.LevelDebug, "SystemClock.Sleep",
		slog.Duration("duration", duration))
	if duration <= 0 {
		// A zero timespec would disarm the timer and block forever.
		return
	}
	fd, err := unix.TimerfdCreate(unix.CLOCK_MONOTONIC, unix.TFD_NONBLOCK)
	if err != nil {
		logbase.Fatal(c.Log, "unix.TimerfdCreate failed", slog.Any("error", err))
	}
	if fd < math.MinInt32 || math.MaxInt32 < fd {
		logbase.Fatal(c.Log, "unix.TimerfdCreate returned unexpected value")
	}
	err = unix.TimerfdSettime(fd, 0, &unix.ItimerSpec{
		Value: unix.NsecToTimespec(duration.Nanoseconds()),
	}, nil /* oldValue */)
	if err != nil {
		logbase.Fatal(c.Log, "unix.TimerfdSettime failed", slog.Any("error", err))
	}
	pollFds := []unix.PollFd{
		{Fd: int32(fd), Events: unix.POLLIN},
	}
	for {
		_, err := unix.Poll(pollFds, -1 /* timeout */)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			logbase.Fatal(c.Log, "unix.Poll failed", slog.Any("error", err))
		}
		break
	}
	_ = unix.Close(fd)
}
