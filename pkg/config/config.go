// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/acipher/pkg/affine"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config holds defaults for a cipher run. Nil keys mean "not set".
type Config struct {
	Key1     *int64 `json:"key1,omitempty" yaml:"key1,omitempty"`
	Key2     *int64 `json:"key2,omitempty" yaml:"key2,omitempty"`
	Decode   bool   `json:"decode,omitempty" yaml:"decode,omitempty"`
	WriteLog bool   `json:"write_log,omitempty" yaml:"write_log,omitempty"`
	LogDir   string `json:"log_dir,omitempty" yaml:"log_dir,omitempty"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if (cfg.Key1 == nil) != (cfg.Key2 == nil) {
		return errors.Errorf("key1 and key2 must be set together")
	}

	if cfg.Key1 != nil {
		if _, err := affine.NewKey(*cfg.Key1, *cfg.Key2); err != nil {
			return err
		}
	}

	if cfg.LogDir != "" {
		cfg.LogDir = filepath.Clean(cfg.LogDir)
	}

	return nil
}

// HasKey reports whether the file supplied a key pair.
func (cfg *Config) HasKey() bool {
	return cfg.Key1 != nil && cfg.Key2 != nil
}

// Key returns the validated key pair from the file.
func (cfg *Config) Key() (affine.Key, error) {
	if !cfg.HasKey() {
		return affine.Key{}, errors.Errorf("no key pair in config")
	}
	return affine.NewKey(*cfg.Key1, *cfg.Key2)
}

// Mode returns the direction requested by the file.
func (cfg *Config) Mode() affine.Mode {
	if cfg.Decode {
		return affine.Decode
	}
	return affine.Encode
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	key := "unset"
	if cfg.HasKey() {
		key = fmt.Sprintf("(%d, %d)", *cfg.Key1, *cfg.Key2)
	}
	return fmt.Sprintf("key=%s mode=%s write_log=%t log_dir=%q", key, cfg.Mode(), cfg.WriteLog, cfg.LogDir)
}
