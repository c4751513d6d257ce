// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package perf

import (
	"github.com/aclements/go-cyclebench/events"
	"github.com/aclements/go-cyclebench/tsc"
)

// CycleSource is a [tsc.Source] backed by a running Counter. Each Start and
// Stop is a read system call, so the measured region includes a fixed
// kernel-entry overhead.
type CycleSource struct {
	c    *Counter
	last uint64
	err  error
}

var _ tsc.Source = (*CycleSource)(nil)

// OpenCycleSource opens and starts a counter for ev on the calling goroutine.
// If ev is nil, it counts [events.EventCPUCycles].
func OpenCycleSource(ev events.Event) (*CycleSource, error) {
	if ev == nil {
		ev = events.EventCPUCycles
	}
	c, err := Open(ev)
	if err != nil {
		return nil, err
	}
	c.Start()
	return &CycleSource{c: c}, nil
}

func (s *CycleSource) read() uint64 {
	count, err := s.c.Read()
	if err != nil {
		// Keep the last good value so the difference is 0 rather than
		// garbage, and remember why.
		if s.err == nil {
			s.err = err
		}
		return s.last
	}
	s.last = count.RawValue
	return s.last
}

func (s *CycleSource) Start() uint64 { return s.read() }
func (s *CycleSource) Stop() uint64  { return s.read() }

func (s *CycleSource) Name() string {
	return "perf:" + s.c.Event().String()
}

// Err returns the first read error, if any.
func (s *CycleSource) Err() error {
	return s.err
}

// Close stops and closes the underlying counter.
func (s *CycleSource) Close() {
	s.c.Stop()
	s.c.Close()
}
