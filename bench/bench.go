// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bench finds the fastest of several implementations of a hot
// function by counting cycles.
//
// [Best] runs a test function repeatedly and keeps the smallest cycle count
// seen, on the theory that every source of noise (interrupts, cache misses,
// frequency changes) only ever makes a run slower. It checks every result
// against an expected answer so a fast but wrong variant can't win silently.
// A typical driver looks like:
//
//	cpuinfo.PrintEnv()
//	bench.BestTime("decodeScalar", decodeScalar, want, 500, n)
//	bench.BestTime("decodeUnrolled", decodeUnrolled, want, 500, n)
//
// which prints
//
//	Intel processor:  Skylake	 compiler version: go1.24.0	AVX2 is NOT available.
//	                            decodeScalar:  3.12 cycles per decoded value
//	                          decodeUnrolled:  1.87 cycles per decoded value
//
// The caller is responsible for pinning the goroutine to one CPU; see
// [runtime.LockOSThread].
package bench

import (
	"fmt"
	"io"
	"math"
	"os"
	"reflect"
	"runtime"

	"github.com/aclements/go-cyclebench/tsc"
)

// Result is the outcome of one measurement.
type Result struct {
	Label  string
	Source string // Name of the tsc.Source
	Repeat int

	// MinCycles is the smallest Stop-Start difference over all repeats. It
	// is math.MaxUint64 if Repeat <= 0.
	MinCycles uint64
	// CyclesPerOp is MinCycles divided by the caller's operation count.
	CyclesPerOp float64
	// Wrong is set if any repeat returned something other than the
	// expected answer.
	Wrong bool
}

// BestTime measures test with [tsc.Default] and prints the result line to
// stdout. See [Best].
func BestTime[T comparable](label string, test func() T, want T, repeat int, size uint64) Result {
	return Best(os.Stdout, tsc.Default, label, test, want, repeat, size)
}

// Best calls test repeat times, timing each call with src, and writes
//
//	<label right-aligned to 40>:  <cycles/op> cycles per decoded value
//
// to w, with " [ERROR]" appended if any call returned something other than
// want. size is the number of operations one call to test performs; the
// minimum cycle count is divided by it. Neither repeat nor size is checked.
//
// The comparison against want happens inside the timed region, so its cost
// is included. If label is empty, the name of test's function is used.
//
// If w has a Flush method, Best flushes it before the first repeat and after
// the result line.
func Best[T comparable](w io.Writer, src tsc.Source, label string, test func() T, want T, repeat int, size uint64) Result {
	if label == "" {
		label = funcName(test)
	}
	fmt.Fprintf(w, "%40s: ", label)
	flush(w)

	minDiff := uint64(math.MaxUint64)
	wrong := false
	for i := 0; i < repeat; i++ {
		// The order here is what's being measured: fence, start, call
		// and compare, stop.
		tsc.Fence()
		start := src.Start()
		if test() != want {
			wrong = true
		}
		stop := src.Stop()
		if diff := stop - start; diff < minDiff {
			minDiff = diff
		}
	}

	r := Result{
		Label:       label,
		Source:      src.Name(),
		Repeat:      repeat,
		MinCycles:   minDiff,
		CyclesPerOp: float64(minDiff) / float64(size),
		Wrong:       wrong,
	}
	fmt.Fprintf(w, " %.2f cycles per decoded value", r.CyclesPerOp)
	if wrong {
		fmt.Fprint(w, " [ERROR]")
	}
	fmt.Fprint(w, "\n")
	flush(w)
	return r
}

type flusher interface {
	Flush() error
}

func flush(w io.Writer) {
	if f, ok := w.(flusher); ok {
		f.Flush()
	}
}

func funcName(f any) string {
	fn := runtime.FuncForPC(reflect.ValueOf(f).Pointer())
	if fn == nil {
		return "?"
	}
	return fn.Name()
}
