package sched

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"example.com/blink-demo/base/metrics"
	"example.com/blink-demo/core/timebase"
)

type schedulerMetrics struct {
	suspensions prometheus.Counter
}

var (
	mtrcsOnce sync.Once
	mtrcs     *schedulerMetrics
)

func schedMetrics() *schedulerMetrics {
	mtrcsOnce.Do(func() {
		mtrcs = &schedulerMetrics{
			suspensions: promauto.NewCounter(prometheus.CounterOpts{
				Name: metrics.SchedSuspensionsN,
				Help: metrics.SchedSuspensionsH,
			}),
		}
	})
	return mtrcs
}

// Scheduler models a preemptive task runner's global suspend/resume
// primitive as a single process-wide gate. SuspendAll acquires the
// gate exclusively; tasks pass through Checkpoint at each preemption
// point and block there while the gate is held. The gate tracks no
// owner and has no timeout; suspending again from a task that already
// holds the gate deadlocks.
type Scheduler struct {
	gate sync.RWMutex
}

// SuspendAll disables task switching process-wide. It returns once
// every in-flight critical section has finished; the order between
// concurrent contenders is gate-policy-defined.
func (s *Scheduler) SuspendAll() {
	s.gate.Lock()
	schedMetrics().suspensions.Inc()
}

// ResumeAll re-enables task switching. It must be called exactly once
// for each SuspendAll, on every exit path.
func (s *Scheduler) ResumeAll() {
	s.gate.Unlock()
}

// Checkpoint is a preemption point. It returns immediately while task
// switching is enabled and blocks while the gate is held.
func (s *Scheduler) Checkpoint() {
	s.gate.RLock()
	s.gate.RUnlock()
}

// Step executes one task step. The step never overlaps a held
// suspension: a task can only be preempted between steps, not inside
// one, which is the instruction-boundary preemption model the gate
// stands in for. Calling Step from inside a critical section
// deadlocks.
func (s *Scheduler) Step(f func()) {
	s.gate.RLock()
	defer s.gate.RUnlock()
	f()
}

// Sleep suspends the calling task for at least the given duration,
// letting other tasks run, and then waits at a checkpoint so that the
// task never resumes into a held critical section.
func (s *Scheduler) Sleep(duration time.Duration) {
	timebase.Sleep(duration)
	s.Checkpoint()
}
