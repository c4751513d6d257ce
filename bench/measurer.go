// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bench

import (
	"io"
	"os"

	"github.com/aclements/go-cyclebench/internal/logger"
	"github.com/aclements/go-cyclebench/tsc"
)

// DefaultRepeat is the repeat count a Measurer uses if none is set.
const DefaultRepeat = 500

// A Case is one variant to measure.
type Case struct {
	Label string
	Func  func() uint64
	Want  uint64
	Size  uint64 // Operations per call of Func
}

// A Measurer runs Cases with shared settings. The zero value writes to
// stdout using tsc.Default and DefaultRepeat.
type Measurer struct {
	W      io.Writer
	Source tsc.Source
	Repeat int
	Log    logger.Logger
}

// Measure runs c with [Best] and returns its result.
func (m *Measurer) Measure(c Case) Result {
	w, src, repeat, log := m.W, m.Source, m.Repeat, m.Log
	if w == nil {
		w = os.Stdout
	}
	if src == nil {
		src = tsc.Default
	}
	if repeat <= 0 {
		repeat = DefaultRepeat
	}
	if log == nil {
		log = logger.Discard()
	}

	r := Best(w, src, c.Label, c.Func, c.Want, repeat, c.Size)
	log.Debug("measured", "label", r.Label, "source", r.Source, "repeat", r.Repeat,
		"min_cycles", r.MinCycles, "cycles_per_op", r.CyclesPerOp)
	if r.Wrong {
		log.Warn("wrong answer", "label", r.Label, "want", c.Want)
	}
	return r
}

// Run measures each case in order.
func (m *Measurer) Run(cases []Case) []Result {
	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		results = append(results, m.Measure(c))
	}
	return results
}
