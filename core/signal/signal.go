package signal

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"example.com/blink-demo/base/gpio"
	"example.com/blink-demo/base/metrics"
)

// LogicalSignal names one of the digital outputs the demo drives,
// decoupled from physical pin wiring.
type LogicalSignal int

const (
	PrimaryA LogicalSignal = iota
	PrimaryB
	Collision
	Activity

	numSignals
)

func (s LogicalSignal) String() string {
	switch s {
	case PrimaryA:
		return "primary_a"
	case PrimaryB:
		return "primary_b"
	case Collision:
		return "collision"
	case Activity:
		return "activity"
	default:
		return "unknown"
	}
}

type boardMetrics struct {
	writes *prometheus.CounterVec
}

var (
	mtrcsOnce sync.Once
	mtrcs     *boardMetrics
)

func signalMetrics() *boardMetrics {
	mtrcsOnce.Do(func() {
		mtrcs = &boardMetrics{
			writes: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: metrics.SignalWritesN,
				Help: metrics.SignalWritesH,
			}, []string{"signal"}),
		}
	})
	return mtrcs
}

// Board maps each logical signal to exactly one physical pin on a
// digital output sink. Levels are transient and overwritten on every
// write; the Board holds no shared state beyond the sink itself.
type Board struct {
	out  gpio.Output
	pins [numSignals]gpio.Pin
}

func NewBoard(out gpio.Output, primaryA, primaryB, collision, activity gpio.Pin) *Board {
	if out == nil {
		panic("digital output sink must not be nil")
	}
	b := &Board{out: out}
	b.pins[PrimaryA] = primaryA
	b.pins[PrimaryB] = primaryB
	b.pins[Collision] = collision
	b.pins[Activity] = activity
	return b
}

// Pin returns the physical pin a logical signal is wired to.
func (b *Board) Pin(sig LogicalSignal) gpio.Pin {
	if sig < 0 || sig >= numSignals {
		panic("invalid logical signal")
	}
	return b.pins[sig]
}

// Set drives a logical signal to the given level.
func (b *Board) Set(sig LogicalSignal, on bool) {
	if sig < 0 || sig >= numSignals {
		panic("invalid logical signal")
	}
	lvl := gpio.Low
	if on {
		lvl = gpio.High
	}
	b.out.SetPin(b.pins[sig], lvl)
	signalMetrics().writes.WithLabelValues(sig.String()).Inc()
}
