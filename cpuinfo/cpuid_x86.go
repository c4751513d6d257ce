// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build 386 || amd64

package cpuinfo

// cpuidex executes CPUID with the given EAX and ECX inputs. Implemented in
// cpuid_amd64.s and cpuid_386.s.
func cpuidex(eaxArg, ecxArg uint32) (eax, ebx, ecx, edx uint32)
