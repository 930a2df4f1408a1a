package benchmark

import (
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/mmcloughlin/profile"

	"example.com/blink-demo/core/access"
	"example.com/blink-demo/core/sched"
	"example.com/blink-demo/core/signal"
)

// RunAccessorBenchmark measures accessor latency on the simulated
// time base: a fixed number of contending goroutines each call the
// shared accessor in a loop, and per-call hold durations (in simulated
// milliseconds) go into a single histogram. Calls are serialized by
// the critical section, so the shared histogram needs no extra lock.
func RunAccessorBenchmark(logger *slog.Logger, board *signal.Board,
	profileCPU bool) {
	const numTaskGoroutine = 2
	const numCallsPerTask = 10_000

	hg := hdrhistogram.New(1, 60_000, 3)
	acc := &access.Accessor{
		Log:   logger,
		Board: board,
		Sched: &sched.Scheduler{},
		Histo: hg,
	}

	if profileCPU {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	sg := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(numTaskGoroutine)
	for i := numTaskGoroutine; i > 0; i-- {
		go func() {
			defer wg.Done()
			<-sg
			for j := numCallsPerTask; j > 0; j-- {
				acc.Access()
			}
		}()
	}
	t0 := time.Now()
	close(sg)
	wg.Wait()
	hg.PercentilesPrint(os.Stdout, 1, 1.0)
	log.Print(time.Since(t0))
}
