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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/acipher/pkg/affine"
	"gitlab.com/tozd/go/errors"
)

func int64p(v int64) *int64 { return &v }

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{name: "json_file", filename: "acipher.json", want: &JSONParser{}},
		{name: "yaml_file", filename: ".acipher.yaml", want: &YAMLParser{}},
		{name: "yml_file", filename: "acipher.yml", want: &YAMLParser{}},
		{name: "upper_case_extension", filename: "ACIPHER.YML", want: &YAMLParser{}},
		{name: "hcl_file", filename: "acipher.hcl", want: &HCLParser{}},
		{name: "unknown_extension", filename: "acipher.txt", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "parser should be nil")
				return
			}
			assert.IsType(t, tt.want, got, "parser type should match")
		})
	}
}

// 🧪 TestLoad checks that every format decodes to the same config
func TestLoad(t *testing.T) {
	want := &Config{
		Key1:     int64p(5),
		Key2:     int64p(8),
		Decode:   true,
		WriteLog: true,
		LogDir:   "transcripts",
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "acipher.json",
			content: `{
  "key1": 5,
  "key2": 8,
  "decode": true,
  "write_log": true,
  "log_dir": "./transcripts/"
}`,
		},
		{
			name: "yaml",
			file: "acipher.yaml",
			content: `
key1: 5
key2: 8
decode: true
write_log: true
log_dir: ./transcripts/
`,
		},
		{
			name: "hcl",
			file: "acipher.hcl",
			content: `
key1      = 5
key2      = 8
decode    = true
write_log = true
log_dir   = "./transcripts/"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			cfg, err := Load(context.Background(), path)
			require.NoError(t, err, "loading config")
			assert.Equal(t, want, cfg)

			key, err := cfg.Key()
			require.NoError(t, err)
			assert.Equal(t, affine.MustKey(5, 8), key)
			assert.Equal(t, affine.Decode, cfg.Mode())
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		content     string
		errContains string
		errIs       error
	}{
		{
			name:        "unknown_json_field",
			file:        "a.json",
			content:     `{"key1": 5, "key2": 8, "rounds": 3}`,
			errContains: "unknown field",
		},
		{
			name:        "unknown_yaml_field",
			file:        "a.yaml",
			content:     "key1: 5\nkey2: 8\nrounds: 3\n",
			errContains: "field rounds not found",
		},
		{
			name:        "unknown_hcl_attribute",
			file:        "a.hcl",
			content:     "rounds = 3\n",
			errContains: "Unsupported argument",
		},
		{
			name:        "invalid_hcl",
			file:        "a.hcl",
			content:     "key1 = {\n",
			errContains: "parsing HCL",
		},
		{
			name:        "invalid_multiplier",
			file:        "a.yaml",
			content:     "key1: 13\nkey2: 1\n",
			errContains: "validating config",
			errIs:       affine.ErrInvalidKey,
		},
		{
			name:        "half_a_key",
			file:        "a.json",
			content:     `{"key1": 5}`,
			errContains: "must be set together",
		},
		{
			name:        "unsupported_extension",
			file:        "a.toml",
			content:     "key1 = 5",
			errContains: "unsupported config file extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			if tt.errIs != nil {
				assert.True(t, errors.Is(err, tt.errIs))
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_EmptyYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, cfg.HasKey())
	assert.Equal(t, affine.Encode, cfg.Mode())

	_, err = cfg.Key()
	assert.Error(t, err)
}

func TestLoad_HCLEnvironment(t *testing.T) {
	t.Setenv("ACIPHER_TEST_KEY1", "7")
	t.Setenv("ACIPHER_TEST_KEY2", "-1")

	path := filepath.Join(t.TempDir(), "env.hcl")
	content := `
key1 = env.ACIPHER_TEST_KEY1
key2 = env.ACIPHER_TEST_KEY2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	key, err := cfg.Key()
	require.NoError(t, err)
	assert.Equal(t, 7, key.A())
	assert.Equal(t, 25, key.B())
}

func TestConfigString(t *testing.T) {
	cfg := &Config{Key1: int64p(3), Key2: int64p(4), WriteLog: true}
	assert.Equal(t, `key=(3, 4) mode=encode write_log=true log_dir=""`, cfg.String())
	assert.Equal(t, `key=unset mode=decode write_log=false log_dir=""`, (&Config{Decode: true}).String())
}
