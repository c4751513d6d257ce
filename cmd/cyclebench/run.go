// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli/v3"

	"github.com/aclements/go-cyclebench/bench"
	"github.com/aclements/go-cyclebench/cpuinfo"
	"github.com/aclements/go-cyclebench/internal/config"
	"github.com/aclements/go-cyclebench/internal/demo"
	"github.com/aclements/go-cyclebench/internal/logger"
	"github.com/aclements/go-cyclebench/tsc"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Measure the built-in decoder variants",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML file with run settings",
			},
			&cli.Int64Flag{
				Name:    "repeat",
				Aliases: []string{"r"},
				Usage:   "repeats per variant; the minimum is reported",
			},
			&cli.Int64Flag{
				Name:    "values",
				Aliases: []string{"n"},
				Usage:   "values decoded per call",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "input generator seed",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "cycle source: tsc, wall, or perf",
			},
			&cli.StringFlag{
				Name:  "event",
				Usage: "perf event for --source=perf, e.g. cycles:u",
			},
			&cli.Int64Flag{
				Name:  "cpu",
				Usage: "pin to this CPU (-1 for no pinning)",
			},
			&cli.StringFlag{
				Name:  "filter",
				Usage: "only run variants whose label contains this",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			cfg, err := loadConfig(cmd)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			log.Debug("config", "repeat", cfg.Repeat, "values", cfg.Values, "source", cfg.Source, "cpu", cfg.CPU)

			// Everything from here on must stay on one thread, and ideally
			// one CPU.
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			if cfg.CPU >= 0 {
				if err := pinCPU(cfg.CPU); err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				log.Debug("pinned", "cpu", cfg.CPU)
			}

			src, closeSrc, err := openSource(cfg)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer closeSrc()

			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()
			cpuinfo.Detect().Print(w)

			cases := demo.Cases(demo.NewInput(cfg.Values, cfg.Seed), cfg.Filter)
			if len(cases) == 0 {
				log.Warn("no variants match filter", "filter", cfg.Filter)
				return nil
			}
			m := &bench.Measurer{W: w, Source: src, Repeat: cfg.Repeat, Log: log}
			results := m.Run(cases)

			if best, ok := fastest(results); ok {
				log.Info("fastest", "label", best.Label, "cycles_per_op", fmt.Sprintf("%.2f", best.CyclesPerOp), "source", best.Source)
			}
			for _, r := range results {
				if r.Wrong {
					return cli.Exit(fmt.Sprintf("error: %s produced a wrong answer", r.Label), 1)
				}
			}
			return nil
		},
	}
}

// loadConfig reads the config file, if any, and applies flags on top.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if cmd.IsSet("repeat") {
		cfg.Repeat = int(cmd.Int64("repeat"))
	}
	if cmd.IsSet("values") {
		cfg.Values = int(cmd.Int64("values"))
	}
	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Uint64("seed")
	}
	if cmd.IsSet("source") {
		cfg.Source = cmd.String("source")
	}
	if cmd.IsSet("event") {
		cfg.Event = cmd.String("event")
	}
	if cmd.IsSet("cpu") {
		cfg.CPU = int(cmd.Int64("cpu"))
	}
	if cmd.IsSet("filter") {
		cfg.Filter = cmd.String("filter")
	}
	return cfg, cfg.Validate()
}

// openSource returns the configured cycle source and a function to release
// it.
func openSource(cfg config.Config) (tsc.Source, func(), error) {
	if cfg.Source == "perf" {
		return openPerfSource(cfg.Event)
	}
	src, ok := tsc.Lookup(cfg.Source)
	if !ok {
		return nil, nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
	return src, func() {}, nil
}

// fastest returns the correct result with the fewest cycles per op.
func fastest(results []bench.Result) (bench.Result, bool) {
	var best bench.Result
	found := false
	for _, r := range results {
		if r.Wrong {
			continue
		}
		if !found || r.CyclesPerOp < best.CyclesPerOp {
			best, found = r, true
		}
	}
	return best, found
}
