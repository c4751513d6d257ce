// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// perfbench reports cycle counts as Go benchmark metrics.
//
// Every platform gets "tsc-cycles/op" from the hardware cycle counter read by
// package tsc. On Linux, perf events such as instructions are reported as
// well when the kernel allows it.
package perfbench

import (
	"testing"

	"github.com/aclements/go-cyclebench/tsc"
)

// Counters is a set of cycle counters that will be reported in benchmark
// results.
type Counters struct {
	b  testingB
	bN int

	running bool
	start   uint64 // tsc reading at the last Start
	total   uint64 // tsc cycles accumulated while running

	countersOS
}

// testingB is the *testing.B interface needed by Counters. Used for testing.
type testingB interface {
	ReportMetric(n float64, unit string)
	Logf(format string, args ...any)
	Cleanup(func())
}

// tscMetric is the metric name of the time-stamp counter, without "/op".
const tscMetric = "tsc-cycles"

// Open starts a set of counters for benchmark b. These counters will be
// reported as metrics when the benchmark ends. Perf counters only count
// events on the calling goroutine; the time-stamp counter counts everything
// on the CPU, so the goroutine should stay put.
//
// The counters are running on return. In general, any calls to b.StopTimer,
// b.StartTimer, or b.ResetTimer should be paired with the equivalent calls on
// Counters.
//
// The final value of the counters is captured in a b.Cleanup function. If the
// benchmark does substantial other work in cleanup functions, it may want to
// explicitly call [Counters.Stop] before returning.
func Open(b *testing.B) *Counters {
	printUnits()
	return open(b, b.N)
}

func open(b testingB, bN int) *Counters {
	cs := &Counters{b: b, bN: bN}
	cs.openOS()
	b.Cleanup(cs.close)
	cs.Start()
	return cs
}

func (cs *Counters) Start() {
	if cs.running {
		return
	}
	cs.running = true
	cs.startOS()
	cs.start = tsc.Start()
}

func (cs *Counters) Stop() {
	if !cs.running {
		return
	}
	cs.total += tsc.Stop() - cs.start
	cs.running = false
	cs.stopOS()
}

func (cs *Counters) Reset() {
	cs.total = 0
	if cs.running {
		cs.start = tsc.Start()
	}
	cs.resetOS()
}

// Total returns the total count of the named counter, which is a reported
// metric name without the "/op". If the named counter is unknown or could not
// be opened, this returns 0, false.
func (cs *Counters) Total(name string) (float64, bool) {
	if name == tscMetric {
		total := cs.total
		if cs.running {
			total += tsc.Stop() - cs.start
		}
		return float64(total), true
	}
	return cs.totalOS(name)
}

func (cs *Counters) close() {
	if cs.b == nil {
		return
	}
	cs.Stop()
	cs.b.ReportMetric(float64(cs.total)/float64(cs.bN), tscMetric+"/op")
	cs.closeOS()
	cs.b = nil
}
