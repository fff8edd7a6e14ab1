// Command balance plays many seeded careers to completion and prints a JSON
// report of per-position averages for tuning the match and progression curves.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/footy-career/internal/app"
	"github.com/riskibarqy/footy-career/internal/config"
	"github.com/riskibarqy/footy-career/internal/observability"
	"github.com/riskibarqy/footy-career/internal/platform/logging"
	"github.com/riskibarqy/footy-career/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}

	var (
		careers  = flag.Int("careers", 200, "number of careers to simulate")
		seasons  = flag.Int("seasons", 10, "seasons per career before retiring")
		baseSeed = flag.Uint64("seed", 1, "seed of the first career; career i uses seed+i")
		workers  = flag.Int("workers", cfg.BalanceWorkers, "worker pool size")
		timeout  = flag.Duration("timeout", 10*time.Minute, "abort the run after this long")
		rows     = flag.Bool("rows", false, "include every career in the report")
		pretty   = flag.Bool("pretty", false, "indent the JSON report")
	)
	flag.Parse()

	// Logs go to stderr so stdout carries only the report.
	logOpts := cfg.LogOptions()
	logOpts.Stderr = true
	logger := logging.New(cfg.LogLevel, logOpts)
	defer func() { _ = logger.Sync() }()

	// Profiling a long run is the main reason to enable Pyroscope here.
	telemetry, err := observability.Start(cfg, logger)
	if err != nil {
		logger.Error("start observability", "error", err)
		os.Exit(1)
	}
	defer func() { _ = telemetry.Shutdown(context.Background()) }()

	svc, _, err := app.NewBalanceService(cfg, logger)
	if err != nil {
		logger.Error("build balance service", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	report, err := svc.Run(ctx, usecase.BalanceInput{
		Careers:    *careers,
		Seasons:    *seasons,
		BaseSeed:   *baseSeed,
		MaxWorkers: *workers,
	})
	if err != nil {
		logger.Error("balance run failed", "error", err)
		os.Exit(1)
	}
	if !*rows {
		report.Rows = nil
	}

	var out []byte
	if *pretty {
		out, err = sonic.ConfigStd.MarshalIndent(report, "", "  ")
	} else {
		out, err = sonic.Marshal(report)
	}
	if err != nil {
		logger.Error("encode report", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
