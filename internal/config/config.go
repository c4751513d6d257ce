// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads cyclebench run settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config holds the settings for one cyclebench run. Command-line flags
// override whatever a file sets.
type Config struct {
	// Repeat is how many times each case runs; the minimum is kept.
	Repeat int `yaml:"repeat"`
	// Values is the number of values each decode call processes.
	Values int `yaml:"values"`
	// Seed seeds the generated input.
	Seed uint64 `yaml:"seed"`
	// Source selects the counter: "tsc", "wall", or "perf".
	Source string `yaml:"source"`
	// Event is the perf event used when Source is "perf".
	Event string `yaml:"event"`
	// CPU pins the run to one CPU. -1 leaves placement to the OS.
	CPU int `yaml:"cpu"`
	// Filter keeps only cases whose label contains it.
	Filter string `yaml:"filter"`
}

// Sources lists the valid values of Config.Source.
var Sources = []string{"tsc", "wall", "perf"}

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid config")

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Repeat: 500,
		Values: 4096,
		Seed:   1,
		Source: "tsc",
		Event:  "cycles",
		CPU:    -1,
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	switch {
	case c.Repeat < 1:
		return fmt.Errorf("%w: repeat must be at least 1, got %d", ErrInvalid, c.Repeat)
	case c.Values < 1:
		return fmt.Errorf("%w: values must be at least 1, got %d", ErrInvalid, c.Values)
	case !slices.Contains(Sources, c.Source):
		return fmt.Errorf("%w: source must be one of %v, got %q", ErrInvalid, Sources, c.Source)
	case c.Source == "perf" && c.Event == "":
		return fmt.Errorf("%w: source perf needs an event", ErrInvalid)
	case c.CPU < -1:
		return fmt.Errorf("%w: cpu must be -1 or a CPU number, got %d", ErrInvalid, c.CPU)
	}
	return nil
}
