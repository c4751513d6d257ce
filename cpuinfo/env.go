// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpuinfo

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

// Env describes the machine and build a benchmark ran under.
type Env struct {
	Arch            Arch   `json:"arch"`
	Signature       uint32 `json:"signature"`
	CodeName        string `json:"code_name,omitempty"`
	CompilerVersion string `json:"compiler_version"`

	// AVX2 reports whether the binary was compiled to use AVX2
	// (GOAMD64=v3 or later). AVX2Supported reports whether the CPU
	// actually has it, which is not the same thing.
	AVX2          bool `json:"avx2"`
	AVX2Supported bool `json:"avx2_supported"`

	Vendor    string `json:"vendor,omitempty"`
	BrandName string `json:"brand_name,omitempty"`
}

// Detect gathers the current environment.
func Detect() Env {
	e := Env{
		Arch:            HostArch,
		CompilerVersion: runtime.Version(),
		AVX2:            compiledAVX2,
		AVX2Supported:   cpu.X86.HasAVX2,
		Vendor:          cpuid.CPU.VendorString,
		BrandName:       cpuid.CPU.BrandName,
	}
	if e.Arch != ArchARM {
		e.Signature = Signature()
		e.CodeName = CodeName(e.Signature)
	}
	return e
}

// String returns the one-line summary printed by [Env.Print], without the
// trailing newline.
func (e Env) String() string {
	var b strings.Builder
	if e.Arch == ArchARM {
		b.WriteString("ARM processor detected\t")
	} else {
		fmt.Fprintf(&b, "Intel processor:  %s\t", e.CodeName)
	}
	if e.CompilerVersion != "" {
		fmt.Fprintf(&b, " compiler version: %s\t", e.CompilerVersion)
	}
	if e.AVX2 {
		b.WriteString("AVX2 is available.")
	} else {
		b.WriteString("AVX2 is NOT available.")
	}
	return b.String()
}

// Print writes the summary line to w.
func (e Env) Print(w io.Writer) {
	fmt.Fprintln(w, e.String())
}

// PrintEnv detects the environment and prints the summary line to stdout.
func PrintEnv() {
	Detect().Print(os.Stdout)
}
