package sched_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"example.com/blink-demo/core/sched"
	"example.com/blink-demo/core/timebase"
	"example.com/blink-demo/driver/clock"
)

var lclk = &clock.SimulatedClock{}

func init() {
	timebase.RegisterClock(lclk)
}

func TestCheckpointPassesWhileRunning(t *testing.T) {
	s := &sched.Scheduler{}
	done := make(chan struct{})
	go func() {
		s.Checkpoint()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("checkpoint blocked with task switching enabled")
	}
}

func TestCheckpointBlocksWhileSuspended(t *testing.T) {
	s := &sched.Scheduler{}
	s.SuspendAll()
	done := make(chan struct{})
	go func() {
		s.Checkpoint()
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("checkpoint passed while task switching was suspended")
	case <-time.After(50 * time.Millisecond):
	}
	s.ResumeAll()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("checkpoint did not pass after resume")
	}
}

func TestStepBlocksWhileSuspended(t *testing.T) {
	s := &sched.Scheduler{}
	s.SuspendAll()
	var ran atomic.Bool
	done := make(chan struct{})
	go func() {
		s.Step(func() { ran.Store(true) })
		close(done)
	}()
	time.Sleep(50 * time.Millisecond)
	if ran.Load() {
		t.Fatal("step ran while task switching was suspended")
	}
	s.ResumeAll()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("step did not run after resume")
	}
	if !ran.Load() {
		t.Fatal("step function was not called")
	}
}

func TestSuspendAllMutualExclusion(t *testing.T) {
	s := &sched.Scheduler{}
	var inside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s.SuspendAll()
				if n := inside.Add(1); n != 1 {
					t.Errorf("critical sections overlap: %d holders", n)
				}
				inside.Add(-1)
				s.ResumeAll()
			}
		}()
	}
	wg.Wait()
}

func TestSuspendAllExcludesSteps(t *testing.T) {
	s := &sched.Scheduler{}
	var inSection atomic.Bool
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			s.SuspendAll()
			inSection.Store(true)
			inSection.Store(false)
			s.ResumeAll()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			s.Step(func() {
				if inSection.Load() {
					t.Errorf("step ran inside a critical section")
				}
			})
		}
	}()
	wg.Wait()
}

func TestSleepAdvancesAndCheckpoints(t *testing.T) {
	s := &sched.Scheduler{}
	lclk.SetTicks(0)
	start := timebase.Ticks()
	s.Sleep(100 * time.Millisecond)
	if elapsed := timebase.Ticks() - start; elapsed < 100 {
		t.Errorf("sched.Sleep(100ms) advanced %v ticks, want >= 100", elapsed)
	}

	s.SuspendAll()
	done := make(chan struct{})
	go func() {
		s.Sleep(time.Millisecond)
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("sleeping task resumed into a held critical section")
	case <-time.After(50 * time.Millisecond):
	}
	s.ResumeAll()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sleeping task did not resume after resume")
	}
}
