package access

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"example.com/blink-demo/base/metrics"
	"example.com/blink-demo/base/timemath"
	"example.com/blink-demo/core/sched"
	"example.com/blink-demo/core/signal"
	"example.com/blink-demo/core/timebase"
)

// Both delays are part of the demonstrated behavior and deliberately
// not configurable.
const (
	collisionPulse = 100 * time.Millisecond
	holdDelay      = 500 * time.Millisecond
)

type accessorMetrics struct {
	calls      prometheus.Counter
	collisions prometheus.Counter
	hold       prometheus.Histogram
}

var (
	mtrcsOnce sync.Once
	mtrcs     *accessorMetrics
)

func accessMetrics() *accessorMetrics {
	mtrcsOnce.Do(func() {
		mtrcs = &accessorMetrics{
			calls: promauto.NewCounter(prometheus.CounterOpts{
				Name: metrics.AccessCallsN,
				Help: metrics.AccessCallsH,
			}),
			collisions: promauto.NewCounter(prometheus.CounterOpts{
				Name: metrics.AccessCollisionsN,
				Help: metrics.AccessCollisionsH,
			}),
			hold: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    metrics.AccessHoldN,
				Help:    metrics.AccessHoldH,
				Buckets: prometheus.LinearBuckets(500, 25, 8),
			}),
		}
	})
	return mtrcs
}

// Accessor guards the demo's shared resource: a saved-state flag plus
// the Collision and Activity signals. Every call runs under a global
// scheduler suspension, so the whole body executes with no
// interleaving from any other task. The busy-wait delays inside the
// held gate stall every task in the process; that starvation is the
// behavior the demo exists to show, not something to optimize away.
//
// The flag alternates across consecutive invocations system-wide,
// whichever task enters: a call that finds it false runs the collision
// pulse and leaves it true, a call that finds it true consumes it and
// leaves it false. Total latency is therefore at least 500 ms on every
// call and at least 600 ms on every other call.
//
// Access cannot fail and returns nothing. Recursive entry from a task
// already inside the accessor is undefined.
type Accessor struct {
	Log   *slog.Logger
	Board *signal.Board
	Sched *sched.Scheduler

	// Histo, when set, records per-call latency in milliseconds. Used
	// by the benchmark; calls are serialized, so no extra locking.
	Histo *hdrhistogram.Histogram

	// Trace, when set, receives the entry and exit tick of each call
	// before the gate is released.
	Trace func(enter, exit uint32)

	saved bool
}

func (a *Accessor) Access() {
	a.Sched.SuspendAll()
	m := accessMetrics()
	m.calls.Inc()
	enter := timebase.Ticks()

	a.Board.Set(signal.Activity, true)
	consumed := a.saved
	if consumed {
		a.saved = false
	} else {
		m.collisions.Inc()
		a.Log.LogAttrs(context.Background(), slog.LevelDebug, "collision pulse",
			slog.Uint64("ticks", uint64(enter)))
		a.Board.Set(signal.Collision, false)
		timebase.Spin(collisionPulse)
		a.Board.Set(signal.Collision, true)
	}
	timebase.Spin(holdDelay)
	if !consumed {
		a.saved = true
	}
	a.Board.Set(signal.Activity, false)

	exit := timebase.Ticks()
	hold := timemath.Elapsed(exit, enter)
	m.hold.Observe(float64(hold))
	if a.Histo != nil {
		_ = a.Histo.RecordValue(int64(hold))
	}
	if a.Trace != nil {
		a.Trace(enter, exit)
	}
	a.Sched.ResumeAll()
}
