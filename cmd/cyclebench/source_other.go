// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package main

import (
	"errors"

	"github.com/aclements/go-cyclebench/tsc"
)

var errLinuxOnly = errors.New("only supported on Linux")

func openPerfSource(name string) (tsc.Source, func(), error) {
	return nil, nil, errLinuxOnly
}

func pinCPU(cpu int) error {
	return errLinuxOnly
}
