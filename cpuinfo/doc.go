// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpuinfo identifies the processor a benchmark is running on.
//
// The identification is deliberately rough: the CPUID signature is mapped to
// a microarchitecture code name by exact table lookup, and the environment
// summary reports only the facts that tend to explain differences between
// cycle counts on two machines (code name, compiler, and whether the binary
// was built to use AVX2).
package cpuinfo
