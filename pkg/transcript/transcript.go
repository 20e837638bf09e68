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

// Package transcript manages the message-<epoch>.txt file that mirrors a run's output.
package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📄 Sink is an append-only transcript file
type Sink struct {
	path    string
	file    *os.File
	written int64
}

// FileName returns the transcript name for a run started at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("message-%d.txt", t.Unix())
}

// 🏭 Open creates or appends to the transcript for a run started at now, inside dir.
// An empty dir means the working directory. Runs in the same second share a file.
func Open(ctx context.Context, dir string, now time.Time) (*Sink, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(filepath.Clean(dir), FileName(now))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Errorf("opening log file %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("log file opened")

	return &Sink{path: path, file: f}, nil
}

// Write appends p to the transcript.
func (s *Sink) Write(p []byte) (int, error) {
	n, err := s.file.Write(p)
	s.written += int64(n)
	if err != nil {
		return n, errors.Errorf("writing log file %s: %w", s.path, err)
	}
	return n, nil
}

// Path returns the transcript location.
func (s *Sink) Path() string { return s.path }

// Written returns the number of bytes appended by this sink.
func (s *Sink) Written() int64 { return s.written }

// Close flushes the file to disk and closes it.
func (s *Sink) Close() error {
	if err := s.file.Sync(); err != nil {
		s.file.Close()
		return errors.Errorf("syncing log file %s: %w", s.path, err)
	}
	if err := s.file.Close(); err != nil {
		return errors.Errorf("closing log file %s: %w", s.path, err)
	}
	return nil
}
