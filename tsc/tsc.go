// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tsc reads the processor's cycle counter with enough serialization
// to bound a short measured region.
//
// On amd64, [Start] executes CPUID then RDTSC, so nothing after the read can
// start before it, and [Stop] executes RDTSCP then CPUID, so everything before
// the read has retired and nothing after it can start early. The two orders
// are different on purpose. On arm64 the same shape is built from ISB and
// CNTVCT_EL0. Elsewhere both fall back to the monotonic wall clock in
// nanoseconds.
//
// The counters are per-core on some machines. Callers that care should pin
// the goroutine to one OS thread and that thread to one CPU.
package tsc

import "time"

// A Source produces ordered cycle counts. Only the difference between a Stop
// and a preceding Start is meaningful.
type Source interface {
	// Start returns a count before the measured region.
	Start() uint64
	// Stop returns a count after the measured region.
	Stop() uint64
	// Name identifies the counter, e.g., "rdtsc".
	Name() string
}

type hardware struct{}

func (hardware) Start() uint64 { return Start() }
func (hardware) Stop() uint64  { return Stop() }
func (hardware) Name() string  { return counterName }

type wall struct{}

func (wall) Start() uint64 { return wallNow() }
func (wall) Stop() uint64  { return wallNow() }
func (wall) Name() string  { return "wall" }

var (
	// Hardware reads the serialized hardware cycle counter using [Start]
	// and [Stop].
	Hardware Source = hardware{}

	// Wall reads the monotonic clock in nanoseconds. It works everywhere but
	// is much coarser than a cycle counter.
	Wall Source = wall{}

	// Default is the Source used when none is given.
	Default = Hardware
)

var epoch = time.Now()

func wallNow() uint64 {
	return uint64(time.Since(epoch))
}

// Lookup returns the built-in Source with the given name: "tsc" (or the
// hardware counter's own name) for [Hardware], or "wall" for [Wall].
func Lookup(name string) (Source, bool) {
	switch name {
	case "tsc", "":
		return Hardware, true
	case "wall":
		return Wall, true
	}
	if name == counterName {
		return Hardware, true
	}
	return nil, false
}
