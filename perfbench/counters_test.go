// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfbench

import (
	"runtime"
	"slices"
	"testing"
)

type testB struct {
	t       *testing.T
	metrics map[string]float64
	cleanup func()
}

func (tb *testB) ReportMetric(n float64, unit string) {
	if tb.metrics == nil {
		tb.metrics = map[string]float64{}
	}
	tb.metrics[unit] = n
}

func (tb *testB) Logf(format string, args ...any) {
	// Perf counters are often unavailable in containers; that's not a
	// failure of this package.
	tb.t.Helper()
	tb.t.Logf(format, args...)
}

func (tb *testB) Cleanup(fn func()) {
	tb.cleanup = fn
}

var sink int

func spin(n int) {
	for i := 0; i < n; i++ {
		sink += i
	}
}

func TestBasic(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	tb := &testB{t: t}
	open(tb, 1)
	spin(1000)
	tb.cleanup()

	val, ok := tb.metrics["tsc-cycles/op"]
	if !ok {
		t.Fatalf("tsc-cycles/op not reported; got %v", tb.metrics)
	}
	if val == 0 {
		t.Errorf("tsc-cycles/op reported, but value is 0")
	}
	t.Logf("metrics %v", tb.metrics)
}

var loopIters = 1000

// measureLoop returns the p95 tsc-cycles/op of a loop of loopIters.
func measureLoop(t *testing.T) float64 {
	p95 := p95Of(100, func() float64 {
		tb := &testB{t: t}
		open(tb, 1)
		spin(loopIters)
		tb.cleanup()
		return tb.metrics["tsc-cycles/op"]
	})
	t.Logf("loop is %f cycles (p95)", p95)
	return p95
}

func p95Of(iters int, f func() float64) float64 {
	dist := make([]float64, iters)
	for i := range dist {
		dist[i] = f()
	}
	slices.Sort(dist)
	return dist[int(float64(iters)*95/100+0.5)]
}

// Cycle counts are noisier than instruction counts, so be generous.
const slack = 3

func TestStop(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	limit := measureLoop(t) * slack

	// Occasionally we get unlucky (e.g., kernel preemption). Do a bunch of
	// tests and ignore the outliers.
	p95 := p95Of(100, func() float64 {
		tb := &testB{t: t}
		cs := open(tb, 1)
		spin(loopIters)
		cs.Stop()
		spin(100 * loopIters)
		tb.cleanup()
		return tb.metrics["tsc-cycles/op"]
	})
	if p95 > limit {
		t.Errorf("stop didn't stop counter, got %f > %f cycles", p95, limit)
	}
}

func TestResetStopped(t *testing.T) {
	tb := &testB{t: t}
	cs := open(tb, 1)
	cs.Stop()
	cs.Reset()
	spin(loopIters)
	tb.cleanup()

	if tb.metrics["tsc-cycles/op"] != 0 {
		t.Errorf("reset didn't reset tsc-cycles to 0")
	}
}

func TestResetRunning(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	limit := measureLoop(t) * slack

	p95 := p95Of(100, func() float64 {
		tb := &testB{t: t}
		cs := open(tb, 1)
		spin(100 * loopIters)
		cs.Reset()
		spin(loopIters)
		cs.Stop()
		tb.cleanup()
		return tb.metrics["tsc-cycles/op"]
	})

	if p95 > limit {
		t.Errorf("reset didn't reset counter, got %f > %f cycles", p95, limit)
	}
}

func TestTotal(t *testing.T) {
	tb := &testB{t: t}
	cs := open(tb, 1)
	spin(loopIters)
	cs.Stop()
	got, ok := cs.Total("tsc-cycles")
	if !ok || got == 0 {
		t.Errorf("Total(tsc-cycles) = %v, %v", got, ok)
	}
	if _, ok := cs.Total("no-such-counter"); ok {
		t.Errorf("Total of unknown counter succeeded")
	}
	tb.cleanup()
}
