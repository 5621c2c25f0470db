// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the project-scoped .docref.yaml configuration
// file the core treats as immutable input (§6).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jinterlante1206/docref/internal/pipeline"
)

// FileName is the configuration file's fixed name, relative to the
// project root.
const FileName = ".docref.yaml"

// Config is the core's immutable input: include/exclude prefixes and the
// namespace table (§6), plus the ambient logging fields every docref
// command shares.
type Config struct {
	Include    []string          `yaml:"include" validate:"dive,required"`
	Exclude    []string          `yaml:"exclude" validate:"dive,required"`
	Namespaces map[string]string `yaml:"namespaces" validate:"dive,required"`
	LogLevel   string            `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFile    string            `yaml:"log_file"`
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		Include:    []string{},
		Exclude:    []string{},
		Namespaces: map[string]string{},
		LogLevel:   "info",
	}
}

// Load reads the configuration at <root>/.docref.yaml, creating it with
// defaults on first run. A project root varies per invocation, so Load
// has no cached singleton — each call re-reads and re-validates.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		if err := writeDefault(path); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrConfigInvalid, err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrConfigInvalid, err)
	}

	return &cfg, nil
}

func writeDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Save persists cfg back to <root>/.docref.yaml, used by the `namespace`
// subcommands to rewrite the namespace table in place.
func Save(root string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(root, FileName), data, 0644)
}
