// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package events

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEvent is returned by ParseEvent for names it can't resolve.
var ErrUnknownEvent = errors.New("unknown event")

// ParseEvent resolves a perf builtin event name such as "cycles",
// "cpu/ref-cycles/", or "instructions:u". The optional ":u" and ":k"
// suffixes restrict counting to user or kernel mode.
func ParseEvent(name string) (Event, error) {
	base, mods, hasMods := strings.Cut(name, ":")

	pmu, eventName := "", base
	if strings.Contains(base, "/") {
		var ok bool
		pmu, eventName, ok = cutPMU(base)
		if !ok {
			return nil, fmt.Errorf("event %q: malformed PMU event", name)
		}
	}

	be, ok := lookupEvent(pmu, eventName)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEvent, name)
	}
	be.name = base
	var ev Event = be
	if !hasMods {
		return ev, nil
	}

	mev := modifiedEvent{Event: ev, name: name}
	if mods == "" {
		return nil, fmt.Errorf("event %q: empty modifier", name)
	}
	user, kernel := false, false
	for _, m := range mods {
		switch m {
		case 'u':
			user = true
		case 'k':
			kernel = true
		default:
			return nil, fmt.Errorf("event %q: unsupported modifier %q", name, m)
		}
	}
	// Like perf, naming one level excludes the other. Naming both is the
	// same as naming neither.
	if user != kernel {
		mev.excludeKernel = user
		mev.excludeUser = kernel
	}
	return mev, nil
}

// cutPMU splits "pmu/event/" into its parts.
func cutPMU(s string) (pmu, event string, ok bool) {
	if strings.Count(s, "/") != 2 || strings.HasPrefix(s, "/") || !strings.HasSuffix(s, "/") {
		return "", "", false
	}
	pmu, rest, _ := strings.Cut(s, "/")
	event = strings.TrimSuffix(rest, "/")
	if event == "" {
		return "", "", false
	}
	return pmu, event, true
}
