// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bench

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"runtime"
	"strings"
	"testing"

	"github.com/aclements/go-cyclebench/tsc"
)

// fakeSource reports a scripted cost for each Start/Stop pair.
type fakeSource struct {
	now   uint64
	costs []uint64
	pairs int
}

func (s *fakeSource) Start() uint64 {
	s.now += 1000
	return s.now
}

func (s *fakeSource) Stop() uint64 {
	cost := s.costs[s.pairs%len(s.costs)]
	s.pairs++
	s.now += cost
	return s.now
}

func (s *fakeSource) Name() string { return "fake" }

func TestBestMinimum(t *testing.T) {
	src := &fakeSource{costs: []uint64{10, 7, 9, 12, 8}}
	calls := 0
	f := func() int {
		calls++
		return 42
	}

	var buf bytes.Buffer
	r := Best(&buf, src, "decode", f, 42, 5, 2)

	if calls != 5 {
		t.Errorf("test called %d times, want 5", calls)
	}
	if r.MinCycles != 7 {
		t.Errorf("MinCycles = %d, want 7", r.MinCycles)
	}
	for _, c := range src.costs {
		if r.MinCycles > c {
			t.Errorf("MinCycles %d > iteration cost %d", r.MinCycles, c)
		}
	}
	if r.CyclesPerOp != 3.5 {
		t.Errorf("CyclesPerOp = %v, want 3.5", r.CyclesPerOp)
	}
	want := fmt.Sprintf("%40s:  3.50 cycles per decoded value\n", "decode")
	if got := buf.String(); got != want {
		t.Errorf("output:\n got %q\nwant %q", got, want)
	}
	if r.Wrong || r.Source != "fake" || r.Repeat != 5 || r.Label != "decode" {
		t.Errorf("unexpected result %+v", r)
	}
}

func TestBestError(t *testing.T) {
	for _, tc := range []struct {
		name    string
		answers []int
		wrong   bool
	}{
		{"all-right", []int{42, 42, 42, 42, 42}, false},
		{"one-wrong", []int{42, 42, 41, 42, 42}, true},
		{"last-wrong", []int{42, 42, 42, 42, 41}, true},
		{"all-wrong", []int{0, 0, 0, 0, 0}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			i := 0
			f := func() int {
				v := tc.answers[i]
				i++
				return v
			}
			var buf bytes.Buffer
			r := Best(&buf, &fakeSource{costs: []uint64{5}}, tc.name, f, 42, len(tc.answers), 1)
			out := buf.String()
			if got := strings.Contains(out, "[ERROR]"); got != tc.wrong {
				t.Errorf("[ERROR] in %q is %v, want %v", out, got, tc.wrong)
			}
			if r.Wrong != tc.wrong {
				t.Errorf("Wrong = %v, want %v", r.Wrong, tc.wrong)
			}
			// Wrong answers don't affect the timing or stop the loop.
			if i != len(tc.answers) || r.MinCycles != 5 {
				t.Errorf("ran %d times with min %d, want %d times with min 5", i, r.MinCycles, len(tc.answers))
			}
			if !strings.HasSuffix(out, "cycles per decoded value [ERROR]\n") && tc.wrong {
				t.Errorf("malformed error line %q", out)
			}
		})
	}
}

func TestBestHardware(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var buf bytes.Buffer
	r := Best(&buf, tsc.Default, "answer", func() int { return 42 }, 42, 5, 1)
	t.Logf("%s", buf.String())
	if strings.Contains(buf.String(), "[ERROR]") {
		t.Errorf("unexpected [ERROR]: %q", buf.String())
	}
	if !(r.CyclesPerOp > 0) {
		t.Errorf("CyclesPerOp = %v, want > 0", r.CyclesPerOp)
	}

	buf.Reset()
	n := 0
	r = Best(&buf, tsc.Default, "answer", func() int {
		n++
		if n == 3 {
			return 41
		}
		return 42
	}, 42, 5, 1)
	if !strings.Contains(buf.String(), "[ERROR]") || !r.Wrong {
		t.Errorf("expected [ERROR], got %q", buf.String())
	}
}

func TestBestUncheckedArgs(t *testing.T) {
	var buf bytes.Buffer
	r := Best(&buf, &fakeSource{costs: []uint64{3}}, "zero-size", func() int { return 0 }, 0, 1, 0)
	if !math.IsInf(r.CyclesPerOp, 1) {
		t.Errorf("size 0: CyclesPerOp = %v, want +Inf", r.CyclesPerOp)
	}

	buf.Reset()
	calls := 0
	r = Best(&buf, &fakeSource{costs: []uint64{3}}, "no-repeat", func() int { calls++; return 0 }, 0, 0, 1)
	if calls != 0 || r.MinCycles != math.MaxUint64 {
		t.Errorf("repeat 0: %d calls, min %d", calls, r.MinCycles)
	}
	if !strings.HasSuffix(buf.String(), "cycles per decoded value\n") {
		t.Errorf("repeat 0: no result line in %q", buf.String())
	}
}

func TestBestDefaultLabel(t *testing.T) {
	var buf bytes.Buffer
	r := Best(&buf, &fakeSource{costs: []uint64{1}}, "", answer, 42, 1, 1)
	if !strings.HasSuffix(r.Label, ".answer") {
		t.Errorf("Label = %q, want function name", r.Label)
	}
}

func answer() int { return 42 }

// flushRecorder records what had been written at each Flush.
type flushRecorder struct {
	buf     bytes.Buffer
	flushes []string
}

func (f *flushRecorder) Write(p []byte) (int, error) { return f.buf.Write(p) }
func (f *flushRecorder) Flush() error {
	f.flushes = append(f.flushes, f.buf.String())
	return nil
}

func TestBestFlush(t *testing.T) {
	var fr flushRecorder
	Best(&fr, &fakeSource{costs: []uint64{4}}, "x", func() bool { return true }, true, 3, 1)
	want := []string{
		fmt.Sprintf("%40s: ", "x"),
		fmt.Sprintf("%40s:  4.00 cycles per decoded value\n", "x"),
	}
	if len(fr.flushes) != len(want) {
		t.Fatalf("got %d flushes %q, want %q", len(fr.flushes), fr.flushes, want)
	}
	for i := range want {
		if fr.flushes[i] != want[i] {
			t.Errorf("flush %d saw %q, want %q", i, fr.flushes[i], want[i])
		}
	}

	// A bufio.Writer must reach the underlying writer.
	var out bytes.Buffer
	bw := bufio.NewWriter(&out)
	Best(bw, &fakeSource{costs: []uint64{4}}, "y", func() bool { return true }, true, 1, 1)
	if !strings.Contains(out.String(), "4.00") {
		t.Errorf("bufio.Writer not flushed: %q", out.String())
	}
}
