// Critical section demo service

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"example.com/blink-demo/base/gpio"
	"example.com/blink-demo/base/zaplog"

	"example.com/blink-demo/benchmark"

	"example.com/blink-demo/core/access"
	"example.com/blink-demo/core/sched"
	"example.com/blink-demo/core/signal"
	"example.com/blink-demo/core/task"
	"example.com/blink-demo/core/timebase"

	"example.com/blink-demo/driver/clock"
	gpiodrv "example.com/blink-demo/driver/gpio"
)

const (
	outputDriverLog = "log"
	outputDriverSim = "sim"

	defaultMetricsAddr = "127.0.0.1:8080"
)

type svcConfig struct {
	PrimaryAPin  uint32 `toml:"primary_a_pin,omitempty"`
	PrimaryBPin  uint32 `toml:"primary_b_pin,omitempty"`
	CollisionPin uint32 `toml:"collision_pin,omitempty"`
	ActivityPin  uint32 `toml:"activity_pin,omitempty"`
	OutputDriver string `toml:"output_driver,omitempty"`
	MetricsAddr  string `toml:"metrics_address,omitempty"`
}

var (
	log *zap.Logger
)

func initLogger(verbose bool) {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	c.EncoderConfig.EncodeCaller = func(
		caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		p := caller.TrimmedPath()
		if len(p) > 30 {
			p = "..." + p[len(p)-27:]
		}
		enc.AppendString(fmt.Sprintf("%30s", p))
	}
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	var err error
	log, err = c.Build()
	if err != nil {
		panic(err)
	}
	zaplog.SetLogger(log)
}

func newSlogger(verbose bool) *slog.Logger {
	lvl := slog.LevelInfo
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func runMonitor(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	err := http.ListenAndServe(addr, nil)
	log.Fatal("failed to serve metrics", zap.Error(err))
}

func loadConfig(configFile string) svcConfig {
	raw, err := os.ReadFile(configFile)
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	var cfg svcConfig
	err = toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		log.Fatal("failed to decode configuration", zap.Error(err))
	}
	return cfg
}

func newBoard(cfg svcConfig, logger *slog.Logger) *signal.Board {
	var out gpio.Output
	switch cfg.OutputDriver {
	case "", outputDriverLog:
		out = &gpiodrv.LogPins{Log: logger}
	case outputDriverSim:
		out = &gpiodrv.SimulatedPins{}
	default:
		log.Fatal("unknown output driver", zap.String("output_driver", cfg.OutputDriver))
	}
	return signal.NewBoard(out,
		gpio.Pin(cfg.PrimaryAPin),
		gpio.Pin(cfg.PrimaryBPin),
		gpio.Pin(cfg.CollisionPin),
		gpio.Pin(cfg.ActivityPin),
	)
}

func runDemo(configFile string, verbose bool) {
	ctx := context.Background()
	logger := newSlogger(verbose)
	cfg := loadConfig(configFile)

	lclk := &clock.SystemClock{Log: logger}
	timebase.RegisterClock(lclk)

	board := newBoard(cfg, logger)
	schd := &sched.Scheduler{}
	acc := &access.Accessor{Log: logger, Board: board, Sched: schd}

	taskA := &task.Task{
		Log:      logger,
		Name:     "A",
		Signal:   signal.PrimaryA,
		Period:   task.PeriodA,
		Board:    board,
		Sched:    schd,
		Accessor: acc,
	}
	taskB := &task.Task{
		Log:      logger,
		Name:     "B",
		Signal:   signal.PrimaryB,
		Period:   task.PeriodB,
		Board:    board,
		Sched:    schd,
		Accessor: acc,
	}

	go taskA.Run(ctx)
	go taskB.Run(ctx)

	addr := cfg.MetricsAddr
	if addr == "" {
		addr = defaultMetricsAddr
	}
	runMonitor(addr)
}

func runBenchmark(verbose, profileCPU bool) {
	logger := newSlogger(verbose)
	timebase.RegisterClock(&clock.SimulatedClock{Quantum: 25})
	pins := &gpiodrv.SimulatedPins{}
	board := signal.NewBoard(pins, 17, 27, 22, 23)
	benchmark.RunAccessorBenchmark(logger, board, profileCPU)
}

func exitWithUsage() {
	fmt.Println("<usage>")
	os.Exit(1)
}

func main() {
	var (
		verbose    bool
		configFile string
		profileCPU bool
	)

	demoFlags := flag.NewFlagSet("demo", flag.ExitOnError)
	benchmarkFlags := flag.NewFlagSet("benchmark", flag.ExitOnError)

	demoFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	demoFlags.StringVar(&configFile, "config", "", "Config file")

	benchmarkFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	benchmarkFlags.BoolVar(&profileCPU, "profile", false, "Write a CPU profile")

	if len(os.Args) < 2 {
		exitWithUsage()
	}

	switch os.Args[1] {
	case demoFlags.Name():
		err := demoFlags.Parse(os.Args[2:])
		if err != nil || demoFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose)
		runDemo(configFile, verbose)
	case benchmarkFlags.Name():
		err := benchmarkFlags.Parse(os.Args[2:])
		if err != nil || benchmarkFlags.NArg() != 0 {
			exitWithUsage()
		}
		initLogger(verbose)
		runBenchmark(verbose, profileCPU)
	case "x":
		runX()
	default:
		exitWithUsage()
	}
}
