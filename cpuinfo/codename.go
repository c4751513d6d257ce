// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpuinfo

import (
	"maps"
	"slices"
)

// Unknown is the code name reported for signatures not in the table.
const Unknown = "UNKNOWN"

// codeNames maps a CPUID leaf 1 signature, shifted right by 4 to drop the
// stepping, to a code name. Only exact matches count.
var codeNames = map[uint32]string{
	0x506E: "Skylake",
	0x406C: "CherryTrail",
	0x306D: "Broadwell",
	0x306C: "Haswell",
	0x306A: "IvyBridge",

	0x206A: "SandyBridge",
	0x206D: "SandyBridge",

	0x2065: "Westmere",
	0x206C: "Westmere",
	0x206F: "Westmere",

	0x106E: "Nehalem",
	0x106A: "Nehalem",
	0x206E: "Nehalem",

	0x1067: "Penryn",
	0x106D: "Penryn",

	0x006F: "Merom",
	0x1066: "Merom",

	0x0066: "Presler",

	0x0063: "Prescott",
	0x0064: "Prescott",

	0x006D: "Dothan",
	0x0366: "Cedarview",
	0x0266: "Lincroft",
	0x016C: "Pineview",
}

// Signature returns EAX of CPUID leaf 1, which encodes the processor's
// extended family, extended model, family, model, and stepping. It returns 0
// on architectures without CPUID.
func Signature() uint32 {
	eax, _, _, _ := cpuidex(1, 0)
	return eax
}

// CodeName guesses the microarchitecture code name for signature sig. This is
// quite imperfect: the table only knows a handful of Intel generations, and
// anything else, including every AMD part, is [Unknown].
func CodeName(sig uint32) string {
	if name, ok := codeNames[sig>>4]; ok {
		return name
	}
	return Unknown
}

// CodeNames returns every name CodeName can return, sorted, including
// [Unknown].
func CodeNames() []string {
	names := slices.Sorted(maps.Values(codeNames))
	names = append(names, Unknown)
	slices.Sort(names)
	return slices.Compact(names)
}
