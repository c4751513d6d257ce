// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64.v3

package cpuinfo

// GOAMD64=v3 and above let the compiler assume AVX2.
const compiledAVX2 = true
