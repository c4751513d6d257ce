// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

// Package perf counts a single perf event on the calling goroutine.
//
// It exists so that a kernel-managed counter, such as core cycles rather than
// reference cycles, can stand in for the time-stamp counter when measuring a
// snippet. A read costs a system call, so it is far coarser than RDTSC.
package perf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/aclements/go-cyclebench/events"
)

// ErrClosed is returned when reading a closed Counter.
var ErrClosed = errors.New("counter is closed")

// A Counter reports the number of times an [events.Event] occurred on the
// goroutine that opened it.
type Counter struct {
	event   events.Event
	f       *os.File
	running bool
	readBuf [3 * 8]byte
}

// Open returns a new Counter for ev that counts events on the calling
// goroutine. This locks the goroutine to its OS thread until [Counter.Close].
//
// The counter is initially not running. Call [Counter.Start] to start it.
func Open(ev events.Event) (*Counter, error) {
	attr := unix.PerfEventAttr{}
	attr.Size = uint32(unsafe.Sizeof(attr))
	if err := ev.SetAttrs(&attr); err != nil {
		return nil, err
	}
	attr.Read_format = unix.PERF_FORMAT_TOTAL_TIME_ENABLED |
		unix.PERF_FORMAT_TOTAL_TIME_RUNNING
	attr.Bits |= unix.PerfBitDisabled

	runtime.LockOSThread()
	fd, err := unix.PerfEventOpen(&attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		runtime.UnlockOSThread()
		if errors.Is(err, syscall.EACCES) {
			const path = "/proc/sys/kernel/perf_event_paranoid"
			data, err2 := os.ReadFile(path)
			data = bytes.TrimSpace(data)
			if val, err3 := strconv.Atoi(string(data)); err2 != nil || err3 != nil || val > 0 {
				// We can't read it, or it's set to > 0.
				err = fmt.Errorf("%w (consider: echo 0 | sudo tee %s)", err, path)
			}
		}
		return nil, fmt.Errorf("opening %s: %w", ev, err)
	}

	return &Counter{event: ev, f: os.NewFile(uintptr(fd), "<perf-event>")}, nil
}

// Event returns the event c counts.
func (c *Counter) Event() events.Event {
	return c.event
}

// Close closes this counter and unlocks the goroutine from the OS thread.
func (c *Counter) Close() {
	if c == nil || c.f == nil {
		return
	}
	c.f.Close()
	c.f = nil
	runtime.UnlockOSThread()
}

// Start the counter.
func (c *Counter) Start() {
	if c == nil || c.f == nil || c.running {
		return
	}
	c.running = true
	unix.IoctlSetInt(int(c.f.Fd()), unix.PERF_EVENT_IOC_ENABLE, 0)
}

// Stop the counter.
func (c *Counter) Stop() {
	if c == nil || c.f == nil || !c.running {
		return
	}
	unix.IoctlSetInt(int(c.f.Fd()), unix.PERF_EVENT_IOC_DISABLE, 0)
	c.running = false
}

// Count is the value of a Counter.
type Count struct {
	RawValue uint64 // The number of events while this counter was running.

	// Normally, TimeEnabled == TimeRunning. However, if more counters are
	// running than the hardware can support, events will be multiplexed onto
	// the hardware. In that case, TimeRunning < TimeEnabled, and the raw
	// counter value should be scaled under the assumption that the event is
	// happening at a regular rate and the sampled time is representative.

	TimeEnabled uint64 // Total time the Counter was started, in ns.
	TimeRunning uint64 // Total time the Counter was actually counting, in ns.
}

// Value returns the measured value of Count, scaled to account for time the
// counter was not scheduled on the hardware.
func (c Count) Value() float64 {
	raw := float64(c.RawValue)
	if c.TimeEnabled == c.TimeRunning {
		return raw
	}
	if c.TimeRunning == 0 {
		// Avoid divide by zero.
		return 0
	}
	return raw * (float64(c.TimeEnabled) / float64(c.TimeRunning))
}

// Sub returns c - base, field by field. It is used to subtract a baseline.
func (c Count) Sub(base Count) Count {
	return Count{
		RawValue:    c.RawValue - base.RawValue,
		TimeEnabled: c.TimeEnabled - base.TimeEnabled,
		TimeRunning: c.TimeRunning - base.TimeRunning,
	}
}

// Read returns the current value of c.
func (c *Counter) Read() (Count, error) {
	// TODO: Use RDPMC from the mmap'd page to avoid the system call.
	if c == nil {
		return Count{}, nil
	}
	if c.f == nil {
		return Count{}, ErrClosed
	}

	buf := c.readBuf[:]
	if _, err := c.f.Read(buf); err != nil {
		return Count{}, err
	}
	return Count{
		RawValue:    binary.NativeEndian.Uint64(buf[0:]),
		TimeEnabled: binary.NativeEndian.Uint64(buf[8:]),
		TimeRunning: binary.NativeEndian.Uint64(buf[16:]),
	}, nil
}
