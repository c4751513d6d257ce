// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package perf

import (
	"errors"
	"testing"

	"github.com/aclements/go-cyclebench/events"
)

func openOrSkip(t *testing.T, ev events.Event) *Counter {
	t.Helper()
	c, err := Open(ev)
	if err != nil {
		// Containers and VMs often don't expose hardware counters.
		t.Skipf("cannot open %s: %v", ev, err)
	}
	return c
}

func TestCounter(t *testing.T) {
	c := openOrSkip(t, events.EventTaskClock)
	defer c.Close()

	doRead := func(min Count) Count {
		t.Helper()
		count, err := c.Read()
		if err != nil {
			t.Fatal("read failed:", err)
		}
		t.Logf("read %+v", count)
		checkCount(t, count, min)
		return count
	}

	c1 := doRead(Count{})
	if c1.RawValue != 0 || c1.TimeEnabled != 0 {
		t.Fatal("counter is non-zero before starting")
	}

	t.Log("starting counter")
	c.Start()
	for i := 0; i < 100000; i++ {
		sink += i
	}
	c2 := doRead(c1)

	t.Log("stopping counter")
	c.Stop()
	c3 := doRead(c2)
	c4 := doRead(c2)
	if c3 != c4 {
		t.Fatal("counter changed while stopped")
	}
}

func TestClosed(t *testing.T) {
	c := openOrSkip(t, events.EventTaskClock)
	c.Close()
	if _, err := c.Read(); !errors.Is(err, ErrClosed) {
		t.Errorf("Read after Close: got %v, want ErrClosed", err)
	}
	// Closing twice is harmless.
	c.Close()
}

func TestCycleSource(t *testing.T) {
	src, err := OpenCycleSource(events.EventTaskClock)
	if err != nil {
		t.Skipf("cannot open source: %v", err)
	}
	defer src.Close()

	if got, want := src.Name(), "perf:task-clock"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
	start := src.Start()
	for i := 0; i < 100000; i++ {
		sink += i
	}
	stop := src.Stop()
	if stop < start {
		t.Errorf("stop %d < start %d", stop, start)
	}
	if err := src.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestCountValue(t *testing.T) {
	for _, tc := range []struct {
		c    Count
		want float64
	}{
		{Count{RawValue: 100, TimeEnabled: 10, TimeRunning: 10}, 100},
		{Count{RawValue: 100, TimeEnabled: 20, TimeRunning: 10}, 200},
		{Count{RawValue: 100, TimeEnabled: 20, TimeRunning: 0}, 0},
	} {
		if got := tc.c.Value(); got != tc.want {
			t.Errorf("%+v.Value() = %v, want %v", tc.c, got, tc.want)
		}
	}
	d := Count{30, 20, 10}.Sub(Count{10, 5, 5})
	if d != (Count{20, 15, 5}) {
		t.Errorf("Sub = %+v", d)
	}
}

var sink int

func checkCount(t *testing.T, count Count, min Count) {
	t.Helper()
	if count.TimeRunning > count.TimeEnabled {
		t.Fatal("TimeRunning > TimeEnabled")
	}
	if count.RawValue < min.RawValue {
		t.Fatal("RawValue decreased")
	}
	if count.TimeEnabled < min.TimeEnabled {
		t.Fatal("TimeEnabled decreased")
	}
	if count.TimeRunning < min.TimeRunning {
		t.Fatal("TimeRunning decreased")
	}
}
