// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demo

import "encoding/binary"

// VarintStdlib decodes buf with binary.Uvarint.
func VarintStdlib(buf []byte) uint64 {
	var sum uint64
	for len(buf) > 0 {
		v, n := binary.Uvarint(buf)
		if n <= 0 {
			break
		}
		sum += v
		buf = buf[n:]
	}
	return sum
}

// VarintLoop decodes buf one byte at a time without a function call per
// value.
func VarintLoop(buf []byte) uint64 {
	var sum, v uint64
	var shift uint
	for _, b := range buf {
		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			sum += v
			v, shift = 0, 0
			continue
		}
		shift += 7
	}
	return sum
}

// VarintFastPath special-cases single-byte values and falls back to
// binary.Uvarint for the rest.
func VarintFastPath(buf []byte) uint64 {
	var sum uint64
	i := 0
	for i < len(buf) {
		if b := buf[i]; b < 0x80 {
			sum += uint64(b)
			i++
			continue
		}
		v, n := binary.Uvarint(buf[i:])
		if n <= 0 {
			break
		}
		sum += v
		i += n
	}
	return sum
}

// DictSlice sums dict[code] over codes.
func DictSlice(codes []uint32, dict []uint64) uint64 {
	var sum uint64
	for _, c := range codes {
		sum += dict[c]
	}
	return sum
}

// DictUnrolled is DictSlice with four independent accumulators.
func DictUnrolled(codes []uint32, dict []uint64) uint64 {
	var s0, s1, s2, s3 uint64
	i := 0
	for ; i+4 <= len(codes); i += 4 {
		s0 += dict[codes[i]]
		s1 += dict[codes[i+1]]
		s2 += dict[codes[i+2]]
		s3 += dict[codes[i+3]]
	}
	for ; i < len(codes); i++ {
		s0 += dict[codes[i]]
	}
	return s0 + s1 + s2 + s3
}
