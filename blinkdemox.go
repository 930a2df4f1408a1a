// Driver for quick experiments

package main

import (
	"log/slog"

	"example.com/blink-demo/core/access"
	"example.com/blink-demo/core/sched"
	"example.com/blink-demo/core/signal"
	"example.com/blink-demo/core/timebase"
	"example.com/blink-demo/driver/clock"
	gpiodrv "example.com/blink-demo/driver/gpio"
)

func runX() {
	initLogger(true /* verbose */)

	log := newSlogger(true /* verbose */)

	lclk := &clock.SimulatedClock{}
	timebase.RegisterClock(lclk)

	pins := &gpiodrv.SimulatedPins{Clock: lclk}
	board := signal.NewBoard(pins, 17, 27, 22, 23)
	acc := &access.Accessor{Log: log, Board: board, Sched: &sched.Scheduler{}}

	for i := 0; i < 4; i++ {
		acc.Access()
	}
	for _, tr := range pins.Transitions() {
		log.Debug("transition",
			slog.Uint64("pin", uint64(tr.Pin)),
			slog.Bool("high", bool(tr.Level)),
			slog.Uint64("ticks", uint64(tr.Ticks)),
		)
	}
}
