// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsc

const counterName = "rdtsc"

// Start serializes with CPUID and then reads the time-stamp counter.
// Implemented in tsc_amd64.s.
func Start() uint64

// Stop reads the time-stamp counter with RDTSCP and then serializes with
// CPUID. Implemented in tsc_amd64.s.
func Stop() uint64

// Fence is an empty assembly function. The compiler can't see into it, so it
// won't move loads or stores across a call to it. It emits no hardware
// barrier.
func Fence()
