package task

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"example.com/blink-demo/base/metrics"
	"example.com/blink-demo/core/access"
	"example.com/blink-demo/core/sched"
	"example.com/blink-demo/core/signal"
)

// Periods of the two task instances, fixed at creation.
const (
	PeriodA = 100 * time.Millisecond
	PeriodB = 500 * time.Millisecond
)

type taskMetrics struct {
	iterations *prometheus.CounterVec
}

var (
	mtrcsOnce sync.Once
	mtrcs     *taskMetrics
)

func iterationMetrics() *taskMetrics {
	mtrcsOnce.Do(func() {
		mtrcs = &taskMetrics{
			iterations: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: metrics.TaskIterationsN,
				Help: metrics.TaskIterationsH,
			}, []string{"task"}),
		}
	})
	return mtrcs
}

// Task is one of the periodic contenders: an infinite loop that raises
// its own signal, calls the shared resource accessor, lowers the
// signal and sleeps for its period. The two instances differ only in
// the signal they drive and their period. The loop has no terminal
// state of its own; the context exists so harnesses can bound a run.
type Task struct {
	Log      *slog.Logger
	Name     string
	Signal   signal.LogicalSignal
	Period   time.Duration
	Board    *signal.Board
	Sched    *sched.Scheduler
	Accessor *access.Accessor
}

func (t *Task) Run(ctx context.Context) {
	if t.Period <= 0 {
		panic("invalid task period")
	}
	iterations := iterationMetrics().iterations.WithLabelValues(t.Name)
	t.Log.LogAttrs(ctx, slog.LevelInfo, "task started",
		slog.String("task", t.Name),
		slog.Duration("period", t.Period),
	)
	for {
		if ctx.Err() != nil {
			t.Log.LogAttrs(ctx, slog.LevelInfo, "task stopped",
				slog.String("task", t.Name))
			return
		}
		t.Sched.Step(func() { t.Board.Set(t.Signal, true) })
		t.Accessor.Access()
		t.Sched.Step(func() { t.Board.Set(t.Signal, false) })
		iterations.Inc()
		t.Sched.Sleep(t.Period)
	}
}
