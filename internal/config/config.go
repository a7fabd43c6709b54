// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config handles the intcode.toml configuration file.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/db47h/intcode/internal/logs"
)

// Config represents an intcode.toml configuration file.
type Config struct {
	VM  VM  `toml:"vm"`
	Log Log `toml:"log"`
}

// VM configures the instances created by the command line tool.
type VM struct {
	DefaultInput int64 `toml:"default-input"`
	MaxSteps     int64 `toml:"max-steps"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: Log{Level: "warn"},
	}
}

// Load parses the configuration file at path. Settings missing from the file
// keep their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read config")
	}
	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "parse error in %s", path)
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return c, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.VM.MaxSteps < 0 {
		return errors.Errorf("invalid max-steps %d", c.VM.MaxSteps)
	}
	if _, err := logs.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
