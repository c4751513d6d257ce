// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/aclements/go-cyclebench/cpuinfo"
)

func envCmd() *cli.Command {
	return &cli.Command{
		Name:  "env",
		Usage: "Print the processor and build environment",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print every detected fact as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := printEnv(os.Stdout, cpuinfo.Detect(), cmd.Bool("json")); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			return nil
		},
	}
}

func printEnv(w io.Writer, env cpuinfo.Env, asJSON bool) error {
	if !asJSON {
		env.Print(w)
		return nil
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding environment: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
