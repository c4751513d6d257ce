// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

// Package events names the perf events that can stand in for the hardware
// time-stamp counter, such as core cycles or reference cycles.
package events

import "golang.org/x/sys/unix"

// An Event represents a performance event that perf can count.
type Event interface {
	// String returns the string representation of this event, preferably as the
	// name used by "perf stat -e".
	String() string

	// SetAttrs sets the attributes for this event in the [unix.PerfEventAttr]
	// struct.
	SetAttrs(*unix.PerfEventAttr) error
}

type eventBasic struct {
	name   string
	typ    uint32
	config uint64
}

func (e eventBasic) SetAttrs(a *unix.PerfEventAttr) error {
	a.Type = e.typ
	a.Config = e.config
	return nil
}

func (e eventBasic) String() string {
	return e.name
}

var (
	// Hardware events
	EventCPUCycles      = eventBasic{"cpu-cycles", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_CPU_CYCLES}
	EventRefCycles      = eventBasic{"ref-cycles", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_REF_CPU_CYCLES}
	EventInstructions   = eventBasic{"instructions", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_INSTRUCTIONS}
	EventBranches       = eventBasic{"branches", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_BRANCH_INSTRUCTIONS}
	EventBranchMisses   = eventBasic{"branch-misses", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_BRANCH_MISSES}
	EventCacheMisses    = eventBasic{"cache-misses", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_CACHE_MISSES}
	EventStalledBackend = eventBasic{"stalled-cycles-backend", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_STALLED_CYCLES_BACKEND}

	// Software events
	EventTaskClock       = eventBasic{"task-clock", unix.PERF_TYPE_SOFTWARE, unix.PERF_COUNT_SW_TASK_CLOCK}
	EventContextSwitches = eventBasic{"context-switches", unix.PERF_TYPE_SOFTWARE, unix.PERF_COUNT_SW_CONTEXT_SWITCHES}
	EventCPUMigrations   = eventBasic{"cpu-migrations", unix.PERF_TYPE_SOFTWARE, unix.PERF_COUNT_SW_CPU_MIGRATIONS}
)

// eventNames maps the names "perf stat -e" accepts for builtin events,
// aliases included, to their counters.
var eventNames = map[string]eventBasic{
	"cpu-cycles":              EventCPUCycles,
	"cycles":                  EventCPUCycles,
	"ref-cycles":              EventRefCycles,
	"instructions":            EventInstructions,
	"branches":                EventBranches,
	"branch-instructions":     EventBranches,
	"branch-misses":           EventBranchMisses,
	"cache-misses":            EventCacheMisses,
	"cache-references":        {typ: unix.PERF_TYPE_HARDWARE, config: unix.PERF_COUNT_HW_CACHE_REFERENCES},
	"bus-cycles":              {typ: unix.PERF_TYPE_HARDWARE, config: unix.PERF_COUNT_HW_BUS_CYCLES},
	"stalled-cycles-frontend": {typ: unix.PERF_TYPE_HARDWARE, config: unix.PERF_COUNT_HW_STALLED_CYCLES_FRONTEND},
	"idle-cycles-frontend":    {typ: unix.PERF_TYPE_HARDWARE, config: unix.PERF_COUNT_HW_STALLED_CYCLES_FRONTEND},
	"stalled-cycles-backend":  EventStalledBackend,
	"idle-cycles-backend":     EventStalledBackend,

	"task-clock":       EventTaskClock,
	"cpu-clock":        {typ: unix.PERF_TYPE_SOFTWARE, config: unix.PERF_COUNT_SW_CPU_CLOCK},
	"context-switches": EventContextSwitches,
	"cs":               EventContextSwitches,
	"cpu-migrations":   EventCPUMigrations,
	"migrations":       EventCPUMigrations,
	"page-faults":      {typ: unix.PERF_TYPE_SOFTWARE, config: unix.PERF_COUNT_SW_PAGE_FAULTS},
	"faults":           {typ: unix.PERF_TYPE_SOFTWARE, config: unix.PERF_COUNT_SW_PAGE_FAULTS},
	"minor-faults":     {typ: unix.PERF_TYPE_SOFTWARE, config: unix.PERF_COUNT_SW_PAGE_FAULTS_MIN},
	"major-faults":     {typ: unix.PERF_TYPE_SOFTWARE, config: unix.PERF_COUNT_SW_PAGE_FAULTS_MAJ},
}

// lookupEvent finds a builtin event by name. Hardware events may sit under
// the "cpu" PMU. Software events take no PMU.
func lookupEvent(pmu, name string) (eventBasic, bool) {
	ev, ok := eventNames[name]
	if !ok {
		return eventBasic{}, false
	}
	switch pmu {
	case "":
	case "cpu":
		if ev.typ != unix.PERF_TYPE_HARDWARE {
			return eventBasic{}, false
		}
	default:
		return eventBasic{}, false
	}
	return ev, true
}

// modifiedEvent is an Event with privilege-level modifiers, as in
// "cycles:u".
type modifiedEvent struct {
	Event
	name          string
	excludeUser   bool
	excludeKernel bool
}

func (e modifiedEvent) String() string {
	return e.name
}

func (e modifiedEvent) SetAttrs(a *unix.PerfEventAttr) error {
	if err := e.Event.SetAttrs(a); err != nil {
		return err
	}
	if e.excludeUser {
		a.Bits |= unix.PerfBitExcludeUser
	}
	if e.excludeKernel {
		a.Bits |= unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv
	}
	return nil
}
