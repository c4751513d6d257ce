// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package demo holds competing decoder implementations that cyclebench runs
// out of the box. Each variant decodes the same input and returns the sum of
// the decoded values, which doubles as the correctness check.
package demo

import (
	"encoding/binary"
	"math/rand/v2"
	"strings"

	"github.com/aclements/go-cyclebench/bench"
)

// Input is a stream of n values in two encodings.
type Input struct {
	N      int
	Varint []byte   // Concatenated uvarints
	Codes  []uint32 // Indexes into Dict
	Dict   []uint64 // Dictionary of values

	VarintSum uint64 // Sum of the values in Varint
	DictSum   uint64 // Sum of Dict[c] for c in Codes
}

// NewInput generates n values deterministically from seed. Most values are
// small so that the one-byte fast paths matter.
func NewInput(n int, seed uint64) *Input {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	in := &Input{N: n}

	const dictSize = 256
	in.Dict = make([]uint64, dictSize)
	for i := range in.Dict {
		in.Dict[i] = r.Uint64N(1 << 20)
	}

	in.Codes = make([]uint32, n)
	for i := range in.Codes {
		in.Codes[i] = uint32(r.IntN(dictSize))
		in.DictSum += in.Dict[in.Codes[i]]
	}

	for i := 0; i < n; i++ {
		var v uint64
		if r.IntN(8) == 0 {
			v = r.Uint64N(1 << 28)
		} else {
			v = r.Uint64N(128)
		}
		in.VarintSum += v
		in.Varint = binary.AppendUvarint(in.Varint, v)
	}
	return in
}

// Cases returns the built-in variants over in. If filter is non-empty, only
// labels containing it are returned.
func Cases(in *Input, filter string) []bench.Case {
	all := []bench.Case{
		{Label: "varint/stdlib", Want: in.VarintSum, Func: func() uint64 { return VarintStdlib(in.Varint) }},
		{Label: "varint/loop", Want: in.VarintSum, Func: func() uint64 { return VarintLoop(in.Varint) }},
		{Label: "varint/fastpath", Want: in.VarintSum, Func: func() uint64 { return VarintFastPath(in.Varint) }},
		{Label: "dict/slice", Want: in.DictSum, Func: func() uint64 { return DictSlice(in.Codes, in.Dict) }},
		{Label: "dict/unrolled", Want: in.DictSum, Func: func() uint64 { return DictUnrolled(in.Codes, in.Dict) }},
	}
	var cases []bench.Case
	for _, c := range all {
		if filter != "" && !strings.Contains(c.Label, filter) {
			continue
		}
		c.Size = uint64(in.N)
		cases = append(cases, c)
	}
	return cases
}
