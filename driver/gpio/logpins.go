package gpio

import (
	"context"
	"log/slog"

	"example.com/blink-demo/base/gpio"
)

// LogPins is a digital output sink that writes pin transitions to the
// log instead of hardware, for running the demo on a desktop machine.
type LogPins struct {
	Log *slog.Logger
}

var _ gpio.Output = (*LogPins)(nil)

func (p *LogPins) SetPin(pin gpio.Pin, level gpio.Level) {
	p.Log.LogAttrs(context.Background(), slog.LevelInfo, "pin write",
		slog.Uint64("pin", uint64(pin)),
		slog.Bool("high", bool(level)),
	)
}
