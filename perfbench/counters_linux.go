// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfbench

import (
	"fmt"
	"sync"

	"github.com/aclements/go-cyclebench/events"
	"github.com/aclements/go-cyclebench/perf"
)

// Core cycles complement the time-stamp counter, which ticks at a fixed
// reference rate regardless of frequency scaling.
var defaultEvents = []events.Event{
	events.EventCPUCycles,
	events.EventInstructions,
}

type countersOS struct {
	events   []events.Event
	counters []*perf.Counter
	baseline []perf.Count
}

var printUnits = sync.OnceFunc(func() {
	// Print unit metadata. All of these are better=lower.
	fmt.Printf("Unit %s better=lower\n", tscMetric)
	for _, event := range defaultEvents {
		fmt.Printf("Unit %s better=lower\n", event.String())
	}
	fmt.Printf("\n")
})

var openErrors sync.Map

func (cs *Counters) openOS() {
	cs.events = defaultEvents
	cs.counters = make([]*perf.Counter, len(cs.events))
	cs.baseline = make([]perf.Count, len(cs.events))
	for i, event := range cs.events {
		var err error
		cs.counters[i], err = perf.Open(event)
		if err != nil {
			// Only report each error once, to avoid flooding benchmark log.
			msg := fmt.Sprintf("error opening counter %s: %v", event, err)
			if _, prev := openErrors.Swap(msg, true); !prev {
				cs.b.Logf("%s", msg)
			}
		}
	}
}

func (cs *Counters) startOS() {
	for _, c := range cs.counters {
		c.Start()
	}
}

func (cs *Counters) stopOS() {
	for _, c := range cs.counters {
		c.Stop()
	}
}

func (cs *Counters) resetOS() {
	// perf has a concept of resetting a counter, but it doesn't reset the
	// counter's timers, so instead we track our own baseline.
	for i, c := range cs.counters {
		cs.baseline[i], _ = c.Read()
	}
}

func (cs *Counters) totalOS(name string) (float64, bool) {
	for i, ev := range cs.events {
		if ev.String() != name || cs.counters[i] == nil {
			continue
		}
		val, err := cs.counters[i].Read()
		if err != nil {
			return 0, false
		}
		return val.Sub(cs.baseline[i]).Value(), true
	}
	return 0, false
}

func (cs *Counters) closeOS() {
	for i, c := range cs.counters {
		if c == nil {
			continue
		}
		val, err := c.Read()
		if err != nil {
			cs.b.Logf("error reading %s: %v", cs.events[i], err)
		} else if val = val.Sub(cs.baseline[i]); val.TimeRunning > 0 {
			cs.b.ReportMetric(val.Value()/float64(cs.bN), cs.events[i].String()+"/op")
		}
		c.Close()
	}
}
