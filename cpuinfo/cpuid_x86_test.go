// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build 386 || amd64

package cpuinfo

import "testing"

func TestSignature(t *testing.T) {
	sig := Signature()
	t.Logf("signature %#x (%s)", sig, CodeName(sig))
	// Every x86 part reports a non-zero base family.
	if family := (sig >> 8) & 0xF; family == 0 {
		t.Errorf("signature %#x has family 0", sig)
	}

	// Leaf 0 returns the vendor string in EBX, EDX, ECX.
	_, ebx, ecx, edx := cpuidex(0, 0)
	if ebx == 0 && ecx == 0 && edx == 0 {
		t.Errorf("cpuidex(0) returned an empty vendor string")
	}
}
