// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/aclements/go-cyclebench/events"
	"github.com/aclements/go-cyclebench/perf"
	"github.com/aclements/go-cyclebench/tsc"
)

func openPerfSource(name string) (tsc.Source, func(), error) {
	ev, err := events.ParseEvent(name)
	if err != nil {
		return nil, nil, err
	}
	src, err := perf.OpenCycleSource(ev)
	if err != nil {
		return nil, nil, err
	}
	return src, src.Close, nil
}

// pinCPU restricts the calling thread to cpu. The caller must have locked
// its goroutine to the thread.
func pinCPU(cpu int) error {
	var set unix.CPUSet
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("pinning to CPU %d: %w", cpu, err)
	}
	return nil
}
