// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpuinfo

import (
	"fmt"
	"runtime"
)

// Arch is the processor family a binary was built for.
type Arch int

const (
	ArchOther Arch = iota
	ArchX86
	ArchARM
)

// HostArch is the family of the build target. It is fixed at build time by
// GOARCH, not probed.
var HostArch = archOf(runtime.GOARCH)

func archOf(goarch string) Arch {
	switch goarch {
	case "386", "amd64":
		return ArchX86
	case "arm", "arm64":
		return ArchARM
	}
	return ArchOther
}

func (a Arch) String() string {
	switch a {
	case ArchX86:
		return "x86"
	case ArchARM:
		return "arm"
	case ArchOther:
		return "other"
	}
	return fmt.Sprintf("Arch(%d)", int(a))
}

// MarshalText implements [encoding.TextMarshaler].
func (a Arch) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
