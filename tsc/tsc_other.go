// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !amd64 && !arm64

package tsc

const counterName = "wall"

// Start returns monotonic nanoseconds. There is no cycle counter here.
func Start() uint64 { return wallNow() }

// Stop returns monotonic nanoseconds.
func Stop() uint64 { return wallNow() }

// Fence is a call the compiler won't inline, so it won't move memory
// accesses across it.
//
//go:noinline
func Fence() {}
