// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsc

const counterName = "cntvct_el0"

// Start issues ISB and then reads the virtual counter. Implemented in
// tsc_arm64.s.
func Start() uint64

// Stop reads the virtual counter and then issues ISB. Implemented in
// tsc_arm64.s.
func Stop() uint64

// Fence is an empty assembly function that the compiler can't reorder memory
// accesses across.
func Fence()
