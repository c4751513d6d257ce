// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command cyclebench prints the processor environment and measures the
// cycles per decoded value of a built-in set of decoder variants.
//
// Usage:
//
//	cyclebench env [--json]
//	cyclebench run [--config file] [--repeat N] [--source tsc|wall|perf] [--cpu N] ...
//
// Results go to stdout, one line per variant; logs go to stderr.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/aclements/go-cyclebench/internal/logger"
)

func main() {
	app := &cli.Command{
		Name:  "cyclebench",
		Usage: "Cycle-accurate microbenchmarks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn, or error",
				Value: "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			log := logger.Pretty(os.Stderr, logger.ParseLevel(cmd.String("log-level")))
			return logger.WithContext(ctx, log), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			envCmd(),
			runCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
