// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package config loads the settings of the orgconv command
// from an optional TOML file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
)

const (
	DefaultBackend = "html"
	DefaultWorkers = 4
)

// DefaultInclude returns the patterns used when a config does not name any.
func DefaultInclude() []string {
	return []string{"**/*.org"}
}

func configFilenames() []string {
	return []string{"orgconv.toml", ".orgconv.toml"}
}

// Config is the set of conversion settings.
type Config struct {
	// Backend is the output format: "html" or "org".
	Backend string `koanf:"backend" validate:"oneof=html org"`
	// Output is the output directory for directory conversions.
	Output  string   `koanf:"output"`
	Workers int      `koanf:"workers" validate:"gte=1,lte=64"`
	Include []string `koanf:"include" validate:"dive,required"`
	Exclude []string `koanf:"exclude" validate:"dive,required"`
	HTML    HTML     `koanf:"html"`

	// ConfigDir is the directory of the loaded file, if any.
	ConfigDir string `koanf:"-"`
}

// HTML holds the settings of the HTML backend.
type HTML struct {
	SoftBreak       string `koanf:"soft_break" validate:"omitempty,oneof=preserve space harden"`
	TableOfContents bool   `koanf:"toc"`
	IgnoreRaw       bool   `koanf:"ignore_raw"`
	// Standalone wraps each document in an <html> page.
	Standalone bool `koanf:"standalone"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := new(Config)
	cfg.ApplyDefaults()
	return cfg
}

// Load reads the config at configPath.
// An empty configPath looks for orgconv.toml or .orgconv.toml
// in the working directory and falls back to [Default] if neither exists.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		found, ok, err := findConfigInDirectory(".")
		if err != nil {
			return nil, err
		}
		if !ok {
			return Default(), nil
		}
		configPath = found
	} else if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, oops.
				Code("CONFIG_NOT_FOUND").
				With("path", configPath).
				Hint("Create the file or pass a valid --config path").
				Errorf("config file %q does not exist", configPath)
		}
		return nil, oops.Wrapf(err, "checking config file %q", configPath)
	}

	absConfigPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, oops.Wrapf(err, "resolving absolute config path")
	}

	k := koanf.New(".")
	if loadErr := k.Load(file.Provider(absConfigPath), toml.Parser()); loadErr != nil {
		return nil, oops.
			Code("CONFIG_INVALID").
			With("path", absConfigPath).
			Hint("Fix the TOML syntax of your config").
			Wrapf(loadErr, "loading config from %q", absConfigPath)
	}
	cfg := new(Config)
	if unmarshalErr := k.Unmarshal("", cfg); unmarshalErr != nil {
		return nil, oops.
			Code("CONFIG_INVALID").
			With("path", absConfigPath).
			Hint("Fix config structure to match the orgconv schema").
			Wrapf(unmarshalErr, "decoding config from %q", absConfigPath)
	}

	cfg.ConfigDir = filepath.Dir(absConfigPath)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Output != "" && !filepath.IsAbs(cfg.Output) {
		cfg.Output = filepath.Clean(filepath.Join(cfg.ConfigDir, cfg.Output))
	}
	return cfg, nil
}

// ApplyDefaults fills in every unset field.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	c.Backend = strings.ToLower(c.Backend)
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if len(c.Include) == 0 {
		c.Include = DefaultInclude()
	}
	if c.HTML.SoftBreak == "" {
		c.HTML.SoftBreak = "preserve"
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	valErr := v.Struct(c)
	if valErr == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(valErr, &validationErrors) || len(validationErrors) == 0 {
		return oops.
			Code("CONFIG_INVALID").
			Wrapf(valErr, "validating config")
	}
	return c.mapValidationError(validationErrors[0])
}

func (c *Config) mapValidationError(fe validator.FieldError) error {
	field := strings.ToLower(fe.Field())
	switch {
	case field == "backend":
		return oops.
			Code("UNKNOWN_BACKEND").
			With("backend", c.Backend).
			Hint("Supported backends: html, org").
			Errorf("unknown backend %q", c.Backend)
	case field == "workers":
		return oops.
			Code("CONFIG_INVALID").
			With("workers", c.Workers).
			Hint("Set workers between 1 and 64").
			Errorf("invalid worker count %d", c.Workers)
	case field == "softbreak":
		return oops.
			Code("CONFIG_INVALID").
			With("soft_break", c.HTML.SoftBreak).
			Hint("Supported soft break behaviors: preserve, space, harden").
			Errorf("unknown soft break behavior %q", c.HTML.SoftBreak)
	default:
		return oops.
			Code("CONFIG_INVALID").
			With("field", fe.Namespace()).
			With("tag", fe.Tag()).
			Errorf("validation failed for field %q", fe.Namespace())
	}
}

func findConfigInDirectory(dir string) (string, bool, error) {
	for _, name := range configFilenames() {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, oops.Wrapf(err, "checking for config file at %q", path)
		}
	}
	return "", false, nil
}
